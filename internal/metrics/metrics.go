// Package metrics instruments parsing, classification and publishing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "tscolor"

// Parse modes.
const (
	Full        = "full"
	Incremental = "incremental"
)

// Metrics holds the collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	ParsesTotal     *prometheus.CounterVec
	ParseSeconds    *prometheus.HistogramVec
	ClassifiedTotal *prometheus.CounterVec
	PublishedRanges *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ParsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "parses_total",
				Help:      "Parses by language and mode (full or incremental)",
			},
			[]string{"language", "mode"},
		),
		ParseSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "parse_duration_seconds",
				Help:      "Time spent in the parser",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"language", "mode"},
		),
		ClassifiedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "classify",
				Name:      "nodes_total",
				Help:      "Nodes assigned a category, by language",
			},
			[]string{"language"},
		),
		PublishedRanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decorate",
				Name:      "ranges_total",
				Help:      "Ranges handed to the renderer, by category",
			},
			[]string{"category"},
		),
	}
	m.Registry.MustRegister(m.ParsesTotal, m.ParseSeconds, m.ClassifiedTotal, m.PublishedRanges)
	return m
}

func (m *Metrics) ObserveParse(language string, mode string, d time.Duration) {
	if m == nil {
		return
	}
	m.ParsesTotal.WithLabelValues(language, mode).Inc()
	m.ParseSeconds.WithLabelValues(language, mode).Observe(d.Seconds())
}

func (m *Metrics) AddClassified(language string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ClassifiedTotal.WithLabelValues(language).Add(float64(n))
}

func (m *Metrics) AddPublished(category string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.PublishedRanges.WithLabelValues(category).Add(float64(n))
}

// ParseStats reads back how many parses of a language and mode were observed
// and the total time they took.
func (m *Metrics) ParseStats(language string, mode string) (uint64, time.Duration) {
	if m == nil {
		return 0, 0
	}
	obs, err := m.ParseSeconds.GetMetricWithLabelValues(language, mode)
	if err != nil {
		return 0, 0
	}
	var out dto.Metric
	if err := obs.(prometheus.Metric).Write(&out); err != nil {
		return 0, 0
	}
	h := out.GetHistogram()
	return h.GetSampleCount(), time.Duration(h.GetSampleSum() * float64(time.Second))
}

// Classified reads back the nodes classified so far for a language.
func (m *Metrics) Classified(language string) uint64 {
	if m == nil {
		return 0
	}
	var out dto.Metric
	if err := m.ClassifiedTotal.WithLabelValues(language).Write(&out); err != nil {
		return 0
	}
	return uint64(out.GetCounter().GetValue())
}

// Handler serves the private registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
