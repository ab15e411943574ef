package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// serveConfig holds the flags for the (only) serve command.
type serveConfig struct {
	configPath  string
	upstream    string
	listenAddr  string
	metricsAddr string
	logFormat   string
}

func (cfg *serveConfig) Validate() error {
	if cfg.configPath == "" {
		return fmt.Errorf("--config is required")
	}
	if cfg.upstream == "" {
		return fmt.Errorf("--upstream is required")
	}
	if cfg.logFormat != "json" && cfg.logFormat != "console" {
		return fmt.Errorf("--log-format must be \"json\" or \"console\", got %q", cfg.logFormat)
	}
	return nil
}

// NewRootCmd creates the root command for rewrite-proxy.
func NewRootCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "rewrite-proxy",
		Short: "Reverse proxy that applies a header-rewrite filter to every stream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.configPath, "config", "", "path to the DSL configuration file (required)")
	cmd.Flags().StringVar(&cfg.upstream, "upstream", "", "upstream base URL to forward requests to (required)")
	cmd.Flags().StringVar(&cfg.listenAddr, "listen-addr", ":8080", "address the proxy listens on")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", ":9101", "address the /metrics and /healthz endpoints listen on")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", "console", "log format: json or console")

	return cmd
}
