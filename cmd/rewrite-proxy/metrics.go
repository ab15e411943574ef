package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// proxyMetrics are the custom Prometheus metrics rewrite-proxy exposes,
// grounded on HoloMUSH's internal/observability.Metrics pattern: a
// dedicated registry, a small set of CounterVecs, registered once at
// startup.
type proxyMetrics struct {
	requestsTotal    *prometheus.CounterVec
	rulesSkippedTotal *prometheus.CounterVec
}

func newProxyMetrics(reg prometheus.Registerer) *proxyMetrics {
	m := &proxyMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewrite_proxy_requests_total",
				Help: "Total number of proxied requests by upstream response status class",
			},
			[]string{"status_class"},
		),
		rulesSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewrite_proxy_rules_skipped_total",
				Help: "Total number of rules skipped due to a runtime error, by direction",
			},
			[]string{"direction"},
		),
	}
	reg.MustRegister(m.requestsTotal)
	reg.MustRegister(m.rulesSkippedTotal)
	return m
}

func newMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}
