// Package prometheus implements the pipeline's metrics collector on the
// Prometheus client library. Metrics are exposed on /metrics by the
// HTTP server.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements ports.MetricsCollector using Prometheus.
type Collector struct {
	snapshotsGenerated *prometheus.CounterVec
	snapshotDuration   *prometheus.HistogramVec

	indicatorFetches *prometheus.CounterVec

	llmCalls   *prometheus.CounterVec
	llmLatency *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector.
func NewCollector() *Collector {
	return &Collector{
		snapshotsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edsg_snapshots_generated_total",
				Help: "Total number of snapshot requests by outcome",
			},
			[]string{"status"},
		),
		snapshotDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edsg_snapshot_duration_seconds",
				Help:    "Snapshot generation duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"status"},
		),
		indicatorFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edsg_indicator_fetches_total",
				Help: "Total number of per-indicator fetch attempts by outcome",
			},
			[]string{"outcome"},
		),
		llmCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edsg_llm_calls_total",
				Help: "Total number of LLM API calls by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		llmLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edsg_llm_latency_seconds",
				Help:    "LLM API call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 60, 120},
			},
			[]string{"provider"},
		),
	}
}

// RecordSnapshot records one completed snapshot request.
func (c *Collector) RecordSnapshot(status string, duration time.Duration) {
	c.snapshotsGenerated.WithLabelValues(status).Inc()
	c.snapshotDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordIndicatorFetch records one per-indicator fetch attempt.
func (c *Collector) RecordIndicatorFetch(outcome string) {
	c.indicatorFetches.WithLabelValues(outcome).Inc()
}

// RecordLLMCall records one narrative generation attempt.
func (c *Collector) RecordLLMCall(provider, outcome string, duration time.Duration) {
	c.llmCalls.WithLabelValues(provider, outcome).Inc()
	c.llmLatency.WithLabelValues(provider).Observe(duration.Seconds())
}
