package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	headerrewrite "github.com/ritamzico/headerrewrite"
)

type evalConfig struct {
	configPath string
	headers    []string
	path       string
	direction  string
}

func newEvalCmd() *cobra.Command {
	cfg := &evalConfig{}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Apply a configuration to a synthetic request/response and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEval(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.configPath, "config", "", "path to the DSL configuration file (required)")
	cmd.Flags().StringArrayVar(&cfg.headers, "header", nil, "seed header as name=value (repeatable)")
	cmd.Flags().StringVar(&cfg.path, "path", "", "seed the :path pseudo-header (request direction only)")
	cmd.Flags().StringVar(&cfg.direction, "direction", "request", "which side to evaluate: request or response")
	cmd.MarkFlagRequired("config")

	return cmd
}

func runEval(cmd *cobra.Command, cfg *evalConfig) error {
	raw, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.configPath, err)
	}

	program := headerrewrite.Build(string(raw))
	filter := headerrewrite.NewFilter(program, nil)
	if !filter.Ready() {
		return fmt.Errorf("%s failed to build: %v", cfg.configPath, program.Err)
	}

	isRequest := cfg.direction != "response"
	headers := headerrewrite.NewMemoryHeaderMap(isRequest)
	if cfg.path != "" {
		headers.WithPath(cfg.path)
	}
	for _, kv := range cfg.headers {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--header must be name=value, got %q", kv)
		}
		headers.WithHeader(name, value)
	}
	meta := headerrewrite.NewMemoryMetadataStore()

	if isRequest {
		filter.ApplyRequest(headers, meta)
	} else {
		filter.ApplyResponse(headers, meta)
	}

	if p, ok := headers.Path(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), ":path: %s\n", p)
	}
	names := headers.Names()
	sort.Strings(names)
	for _, name := range names {
		if v, ok := headers.GetAllAsCommaString(name); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, v)
		}
	}
	return nil
}
