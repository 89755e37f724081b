// Command traitarrow is the CLI front end for the traitarrow module,
// replacing the teacher's bare main() harness (cmd/main.go) with a proper
// cobra command tree (SPEC_FULL.md AMBIENT STACK: "github.com/spf13/cobra,
// adopted from the opal-lang-opal pack member").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arrowtrait/traitarrow"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:   "traitarrow",
		Short: "Trace and build Arrow-shaped schemas from record streams",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			traitarrow.SetDebugPrintProgram(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "print every event the builder receives")
	root.AddCommand(newInferCmd(), newBuildCmd())
	return root
}
