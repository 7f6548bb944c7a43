// Package metrics exposes Prometheus instrumentation for the analysis
// engine. None of it feeds back into analytical decisions — it exists so a
// collaborator that does run a /metrics endpoint has something to scrape.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics tracks cache and analyzer performance.
type EngineMetrics struct {
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	CacheEvictionsTotal  *prometheus.CounterVec
	AnalyzerDuration     *prometheus.HistogramVec
	InterpretationsTotal *prometheus.CounterVec
	SuggestionsTotal     *prometheus.CounterVec
}

// NewEngineMetrics creates and registers the engine's metric set against
// the default Prometheus registry.
func NewEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		CacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "harmonic_analysis_cache_hits_total",
			Help: "Total number of analysis cache hits.",
		}),
		CacheMissesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "harmonic_analysis_cache_misses_total",
			Help: "Total number of analysis cache misses.",
		}),
		CacheEvictionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "harmonic_analysis_cache_evictions_total",
			Help: "Total number of cache evictions by reason (lru, expired, manual).",
		}, []string{"reason"}),
		AnalyzerDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harmonic_analysis_analyzer_duration_seconds",
			Help:    "Per-analyzer wall-clock duration.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"analyzer"}),
		InterpretationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "harmonic_analysis_interpretations_total",
			Help: "Total interpretations produced, by type and display outcome.",
		}, []string{"type", "outcome"}),
		SuggestionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "harmonic_analysis_suggestions_total",
			Help: "Total key suggestions emitted, by kind (add_key, remove_key, change_key).",
		}, []string{"kind"}),
	}
}

// NewNoop returns an EngineMetrics-shaped value that is safe to use but
// registers nothing. Tests construct many Engines in the same process;
// registering real counters for each would panic on duplicate registration.
func NewNoop() *EngineMetrics {
	return &EngineMetrics{
		CacheHitsTotal:       prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_cache_hits"}),
		CacheMissesTotal:     prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_cache_misses"}),
		CacheEvictionsTotal:  prometheus.NewCounterVec(prometheus.CounterOpts{Name: "noop_cache_evictions"}, []string{"reason"}),
		AnalyzerDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "noop_analyzer_duration"}, []string{"analyzer"}),
		InterpretationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "noop_interpretations"}, []string{"type", "outcome"}),
		SuggestionsTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "noop_suggestions"}, []string{"kind"}),
	}
}
