package app

import (
	"github.com/spf13/cobra"
)

// NewCovcalcCommand creates the root command for the covcalc tool.
func NewCovcalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "covcalc",
		Short:         "Compute method coverage counters from annotated instruction graphs.",
		Long:          `covcalc reads instruction graphs annotated with execution results and filter directives and reports instruction, branch, line and method counters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewAnalyzeCommand())
	cmd.AddCommand(NewBytecodeCommand())

	return cmd
}
