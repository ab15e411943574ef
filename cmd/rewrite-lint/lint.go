package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	headerrewrite "github.com/ritamzico/headerrewrite"
	"github.com/ritamzico/headerrewrite/internal/rewrite/serialize"
)

type lintConfig struct {
	configPath string
	dump       bool
}

func newLintCmd() *cobra.Command {
	cfg := &lintConfig{}

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Build a configuration and report fatal errors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.configPath, "config", "", "path to the DSL configuration file (required)")
	cmd.Flags().BoolVar(&cfg.dump, "dump", false, "print the built program as JSON on success")
	cmd.MarkFlagRequired("config")

	return cmd
}

func runLint(cmd *cobra.Command, cfg *lintConfig) error {
	raw, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.configPath, err)
	}

	program := headerrewrite.Build(string(raw))
	if !program.Ready() {
		fmt.Fprintf(cmd.OutOrStdout(), "config error: %v\n", program.Err)
		return fmt.Errorf("%s failed to build", cfg.configPath)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d request rule(s), %d response rule(s))\n",
		cfg.configPath, len(program.RequestRules), len(program.ResponseRules))

	if cfg.dump {
		b, err := serialize.MarshalJSON(program)
		if err != nil {
			return fmt.Errorf("marshaling program: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	}
	return nil
}
