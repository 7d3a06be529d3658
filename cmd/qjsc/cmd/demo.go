package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/internal/fixtures"
	"github.com/cwbudde/qjscore/value"
	"github.com/spf13/cobra"
)

var (
	showCode bool
	listOnly bool
)

var demoCmd = &cobra.Command{
	Use:   "demo [name]",
	Short: "Compile and run one of the built-in IR scenarios",
	Long: `Compile and run one of the six end-to-end scenarios of spec.md §8.4
(integer fast paths, prototype lookup, try/catch, escaping closures,
property enumeration, and arguments aliasing), printing the returned
Value.

Examples:
  # List the available scenarios
  qjsc demo --list

  # Run one, with disassembly
  qjsc demo integer-add --show-code`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&showCode, "show-code", false, "disassemble the compiled entry function (same as SHOW_CODE=1)")
	demoCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "list available scenario names and exit")
}

func runDemo(_ *cobra.Command, args []string) error {
	if listOnly || len(args) == 0 {
		names := make([]string, len(fixtures.Demos))
		for i, d := range fixtures.Demos {
			names[i] = d.Name
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		if listOnly {
			return nil
		}
		return fmt.Errorf("specify a scenario name (see qjsc demo --list)")
	}

	name := args[0]
	var demo *fixtures.Demo
	for i := range fixtures.Demos {
		if fixtures.Demos[i].Name == name {
			demo = &fixtures.Demos[i]
			break
		}
	}
	if demo == nil {
		return fmt.Errorf("unknown scenario %q (see qjsc demo --list)", name)
	}

	e := engine.NewWithOptions(engine.WithShowCode(showCode), engine.WithCodeWriter(os.Stderr))
	demo.Setup(e)

	result, err := e.Run(demo.Entry())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Println(formatResult(e, result))
	return nil
}

// formatResult renders a returned Value for demo output; Value itself has
// no String method since String/Object tags are only meaningful relative
// to the Engine's handle tables that produced them (value/value.go).
func formatResult(e *engine.Engine, v value.Value) string {
	switch v.Tag() {
	case value.TagUndefined:
		return "undefined"
	case value.TagNull:
		return "null"
	case value.TagBoolean:
		return fmt.Sprintf("%t", v.ToBool())
	case value.TagInteger:
		return fmt.Sprintf("%d", v.ToInt32())
	case value.TagNumber:
		return fmt.Sprintf("%g", v.ToDouble())
	case value.TagString:
		return e.String(v.StringHandle()).Go()
	default: // TagObject
		return "[object]"
	}
}
