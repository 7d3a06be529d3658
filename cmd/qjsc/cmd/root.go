package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "qjsc",
	Short: "ES5 JIT instruction-selection backend demo compiler",
	Long: `qjsc drives the instruction-selection backend directly on its own
IR, without a parser in front of it: "demo" selects one of the built-in
IR scenarios, compiles it with the engine package, and runs it.

There is no source language front end in this module (spec.md §1
Non-goals) — qjsc exists to exercise engine.Compile/engine.Run the same
way an embedder would, against hand-built ir.Function graphs.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
