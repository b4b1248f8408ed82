package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveParse(t *testing.T) {
	m := New()
	m.ObserveParse("go", Full, time.Millisecond)
	m.ObserveParse("go", Incremental, time.Millisecond)
	m.ObserveParse("go", Incremental, 2*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", Full)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", Incremental)))
}

func TestParseStats(t *testing.T) {
	m := New()
	m.ObserveParse("go", Incremental, time.Millisecond)
	m.ObserveParse("go", Incremental, 2*time.Millisecond)

	n, total := m.ParseStats("go", Incremental)
	assert.Equal(t, uint64(2), n)
	assert.InDelta(t, float64(3*time.Millisecond), float64(total), float64(time.Microsecond))

	n, total = m.ParseStats("rust", Full)
	assert.Zero(t, n)
	assert.Zero(t, total)
}

func TestCountersSkipZero(t *testing.T) {
	m := New()
	m.AddClassified("rust", 0)
	m.AddClassified("rust", 3)
	m.AddPublished("type", 0)
	m.AddPublished("type", 5)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ClassifiedTotal.WithLabelValues("rust")))
	assert.Equal(t, uint64(3), m.Classified("rust"))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.PublishedRanges.WithLabelValues("type")))
}

func TestNilMetricsIsInert(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveParse("go", Full, time.Second)
		m.AddClassified("go", 1)
		m.AddPublished("type", 1)
	})
	n, total := m.ParseStats("go", Full)
	assert.Zero(t, n)
	assert.Zero(t, total)
	assert.Zero(t, m.Classified("go"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.AddPublished("function", 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `tscolor_decorate_ranges_total{category="function"} 2`))
}
