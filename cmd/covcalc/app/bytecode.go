package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covcalc/internal/bytecode"
	"github.com/zjy-dev/covcalc/internal/logger"
)

// NewBytecodeCommand creates the "bytecode" subcommand group.
func NewBytecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bytecode",
		Short: "Inspect or patch class file versions.",
	}

	cmd.AddCommand(newBytecodeVersionCommand())
	cmd.AddCommand(newBytecodeDowngradeCommand())

	return cmd
}

func readClass(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	if err := bytecode.Check(b); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func newBytecodeVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version <class-file>",
		Short: "Print the major version of a class file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readClass(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), bytecode.Get(b))
			return nil
		},
	}
}

func newBytecodeDowngradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "downgrade <class-file> <output>",
		Short: fmt.Sprintf("Write a copy of a class file with its major version capped at %d.", bytecode.MaxVersion),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readClass(args[0])
			if err != nil {
				return err
			}

			version := bytecode.Get(b)
			out := bytecode.DowngradeIfNeeded(version, b)
			if len(out) > 0 && &out[0] == &b[0] {
				logger.Info("%s: version %d is supported, copying unchanged", args[0], version)
			} else {
				logger.Info("%s: downgraded version %d to %d", args[0], version, bytecode.MaxVersion)
			}

			if err := os.WriteFile(args[1], out, 0644); err != nil {
				return fmt.Errorf("failed to write class file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), bytecode.Get(out))
			return nil
		},
	}
}
