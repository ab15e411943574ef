package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	headerrewrite "github.com/ritamzico/headerrewrite"
	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

type metadataCtxKey struct{}

// metricsRuleLogger forwards every non-fatal rule error to both the
// structured logger and a Prometheus counter, so an operator sees it in
// logs and can alert on a rate.
type metricsRuleLogger struct {
	log     *zap.Logger
	metrics *proxyMetrics
}

func (l *metricsRuleLogger) LogRuleError(dir model.Direction, rule model.Rule, err error) {
	l.log.Warn("rule skipped", zap.String("direction", dir.String()), zap.Error(err))
	l.metrics.rulesSkippedTotal.WithLabelValues(dir.String()).Inc()
}

// buildProxyHandler assembles the reverse proxy's Director/ModifyResponse/
// ErrorHandler hooks around a single shared Filter. Split out from runServe
// so it can be exercised directly against an httptest.Server without
// binding a real listen address.
func buildProxyHandler(upstream *url.URL, filter *headerrewrite.Filter, logger *zap.Logger, metrics *proxyMetrics) http.Handler {
	revProxy := httputil.NewSingleHostReverseProxy(upstream)
	baseDirector := revProxy.Director
	revProxy.Director = func(req *http.Request) {
		baseDirector(req)
		meta := headerrewrite.NewMemoryMetadataStore()
		*req = *req.WithContext(context.WithValue(req.Context(), metadataCtxKey{}, meta))
		filter.ApplyRequest(host.NewRequestHeaderMap(req), meta)
	}
	revProxy.ModifyResponse = func(resp *http.Response) error {
		meta, _ := resp.Request.Context().Value(metadataCtxKey{}).(*host.MemoryMetadataStore)
		filter.ApplyResponse(host.NewResponseHeaderMap(resp.Header), meta)
		statusClass := fmt.Sprintf("%dxx", resp.StatusCode/100)
		metrics.requestsTotal.WithLabelValues(statusClass).Inc()
		return nil
	}
	revProxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("upstream request failed", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}
	return revProxy
}

func runServe(cmd *cobra.Command, cfg *serveConfig) error {
	logger, err := newZapLogger(cfg.logFormat)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	raw, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.configPath, err)
	}
	program := headerrewrite.Build(string(raw))
	if !program.Ready() {
		logger.Error("configuration failed to build; filter will run in bypass mode", zap.Error(program.Err))
	}

	upstream, err := url.Parse(cfg.upstream)
	if err != nil {
		return fmt.Errorf("invalid --upstream %q: %w", cfg.upstream, err)
	}

	registry := newMetricsRegistry()
	metrics := newProxyMetrics(registry)
	filter := headerrewrite.NewFilter(program, &metricsRuleLogger{log: logger, metrics: metrics})

	proxyServer := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           buildProxyHandler(upstream, filter, logger, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	metricsServer := &http.Server{
		Addr:              cfg.metricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 2)
	go func() { errs <- serveOrNil(proxyServer) }()
	go func() { errs <- serveOrNil(metricsServer) }()

	logger.Info("rewrite-proxy listening",
		zap.String("listen_addr", cfg.listenAddr),
		zap.String("metrics_addr", cfg.metricsAddr),
		zap.String("upstream", cfg.upstream),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errs:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	proxyServer.Shutdown(shutdownCtx)
	metricsServer.Shutdown(shutdownCtx)
	return nil
}

func serveOrNil(s *http.Server) error {
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newZapLogger(format string) (*zap.Logger, error) {
	var zcfg zap.Config
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	return zcfg.Build()
}
