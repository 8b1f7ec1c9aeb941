// Command alphamath solves math problems step by step.
//
// Usage:
//
//	alphamath solve congruence 14 30 100
//	alphamath menu
//	alphamath check ./worksheets
package main

import (
	"fmt"
	"os"

	"github.com/aquaa/alphamath/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
