package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSearch("trends", 200*time.Millisecond)
	c.RecordSearch("trends", 100*time.Millisecond)
	c.RecordSearchFallback("competitors", "missing_api_key")
	c.RecordCycle(3 * time.Second)
	c.RecordSkippedCycle()
	c.RecordAlerts(2)
	c.RecordReport()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.searches.WithLabelValues("trends")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.searchFallback.WithLabelValues("competitors", "missing_api_key")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.cycles))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.skippedCycles))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.alerts))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.reports))
}
