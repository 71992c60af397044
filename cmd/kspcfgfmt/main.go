// Command kspcfgfmt formats KSP ModuleManager config files (spec.md
// §6). It is a single cobra.Command with no subcommands — flags only
// — in the SilenceErrors/SilenceUsage style of nihei9-vartan's
// cmd/vartan, whose Execute() prints any returned error to stderr and
// main simply exits nonzero if Execute fails.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
