package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNoopCountersAreUsable(t *testing.T) {
	m := NewNoop()

	m.CacheHitsTotal.Inc()
	m.CacheMissesTotal.Inc()
	m.CacheEvictionsTotal.WithLabelValues("lru").Inc()
	m.InterpretationsTotal.WithLabelValues("functional", "primary").Inc()
	m.SuggestionsTotal.WithLabelValues("add_key").Inc()
	m.AnalyzerDuration.WithLabelValues("functional").Observe(0.001)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMissesTotal))
}

func TestNewNoopReturnsIndependentInstances(t *testing.T) {
	a := NewNoop()
	b := NewNoop()

	a.CacheHitsTotal.Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.CacheHitsTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.CacheHitsTotal))
}
