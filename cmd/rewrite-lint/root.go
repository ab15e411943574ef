package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rewrite-lint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite-lint",
		Short: "Validate and inspect header-rewrite DSL configuration",
		Long: `rewrite-lint loads a header-rewrite filter configuration and
reports fatal build errors, or dumps the built program, or evaluates it
against a sample request.`,
	}

	cmd.AddCommand(newLintCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
