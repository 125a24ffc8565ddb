// Package metrics exposes Prometheus metrics for research cycles, search
// calls, alerts and reports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is the recording interface used by the search gateway
// and the monitoring service
type MetricsCollector interface {
	RecordSearch(category string, duration time.Duration)
	RecordSearchFallback(category, reason string)
	RecordCycle(duration time.Duration)
	RecordSkippedCycle()
	RecordAlerts(count int)
	RecordReport()
}

// Collector records metrics into a Prometheus registry
type Collector struct {
	searches       *prometheus.CounterVec
	searchFallback *prometheus.CounterVec
	searchLatency  prometheus.Histogram
	cycles         prometheus.Counter
	cycleDuration  prometheus.Histogram
	skippedCycles  prometheus.Counter
	alerts         prometheus.Counter
	reports        prometheus.Counter
}

// Ensure Collector implements MetricsCollector
var _ MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_agent_searches_total",
			Help: "Search gateway calls by category",
		}, []string{"category"}),
		searchFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_agent_search_fallbacks_total",
			Help: "Search calls answered with canned data, by category and reason",
		}, []string{"category", "reason"}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "market_agent_search_latency_seconds",
			Help:    "Search gateway call latency",
			Buckets: prometheus.DefBuckets,
		}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "market_agent_cycles_total",
			Help: "Completed research cycles",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "market_agent_cycle_duration_seconds",
			Help:    "Research cycle duration",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		skippedCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "market_agent_skipped_cycles_total",
			Help: "Timer ticks skipped because a cycle was still running",
		}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "market_agent_alerts_total",
			Help: "Alerts raised",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "market_agent_reports_total",
			Help: "Reports compiled",
		}),
	}

	reg.MustRegister(
		c.searches,
		c.searchFallback,
		c.searchLatency,
		c.cycles,
		c.cycleDuration,
		c.skippedCycles,
		c.alerts,
		c.reports,
	)

	return c
}

// RecordSearch records one search gateway call
func (c *Collector) RecordSearch(category string, duration time.Duration) {
	c.searches.WithLabelValues(category).Inc()
	c.searchLatency.Observe(duration.Seconds())
}

// RecordSearchFallback records a call that was answered with canned data
func (c *Collector) RecordSearchFallback(category, reason string) {
	c.searchFallback.WithLabelValues(category, reason).Inc()
}

// RecordCycle records a completed research cycle
func (c *Collector) RecordCycle(duration time.Duration) {
	c.cycles.Inc()
	c.cycleDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordSkippedCycle() {
	c.skippedCycles.Inc()
}

func (c *Collector) RecordAlerts(count int) {
	c.alerts.Add(float64(count))
}

func (c *Collector) RecordReport() {
	c.reports.Inc()
}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopCollector discards everything
type NopCollector struct{}

var _ MetricsCollector = NopCollector{}

func (NopCollector) RecordSearch(string, time.Duration) {}
func (NopCollector) RecordSearchFallback(string, string) {}
func (NopCollector) RecordCycle(time.Duration) {}
func (NopCollector) RecordSkippedCycle() {}
func (NopCollector) RecordAlerts(int) {}
func (NopCollector) RecordReport() {}
