// Command qjsc is the standalone compiler/runner front end for the
// instruction-selection backend, grounded on cmd/dwscript's Cobra-based
// main.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/qjscore/cmd/qjsc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
