// Questlogic answers accessibility questions about randomizer worlds: what a
// player can reach with the items they hold, and whether a seed can be won.
// Usage: questlogic <validate|reach|missing|audit|fill|track> [flags]
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/questlogic/cli"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
