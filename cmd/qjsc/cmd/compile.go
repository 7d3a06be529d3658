package cmd

import (
	"fmt"

	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/internal/fixtures"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <name>",
	Short: "Compile one of the built-in IR scenarios and print its disassembly",
	Long: `Compile one of the spec.md §8.4 scenarios without running it, always
showing disassembly (equivalent to "demo <name> --show-code" but skips
the call into the compiled entry point).`,
	Args: cobra.ExactArgs(1),
	RunE: compileDemo,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func compileDemo(_ *cobra.Command, args []string) error {
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

	e := engine.NewWithOptions(engine.WithShowCode(true))
	demo.Setup(e)

	if _, err := e.Compile(demo.Entry()); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
