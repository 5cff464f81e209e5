// Package prom reports purefn.MemoCache signals as Prometheus metrics.
package prom

import (
	"time"

	"github.com/on-the-ground/memo_ive_go/purefn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ purefn.Metrics = (*Metrics)(nil)

// Metrics holds the Prometheus instruments of one MemoCache.
type Metrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Evictions     prometheus.Counter
	Invalidations prometheus.Counter
	Computations  *prometheus.CounterVec
	Latency       prometheus.Histogram
	Entries       prometheus.Gauge
}

// New registers the instruments of the cache named cache on reg. A nil reg
// registers on prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace, cache string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	labels := prometheus.Labels{"cache": cache}

	return &Metrics{
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "hits_total",
			Help:        "Lookups answered from the memo table",
			ConstLabels: labels,
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "misses_total",
			Help:        "Lookups that had to produce a value",
			ConstLabels: labels,
		}),
		Evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "evictions_total",
			Help:        "Entries removed by the capacity policy",
			ConstLabels: labels,
		}),
		Invalidations: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "invalidations_total",
			Help:        "Entries removed by invalidation",
			ConstLabels: labels,
		}),
		Computations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "computations_total",
			Help:        "Calls to the computation by result",
			ConstLabels: labels,
		}, []string{"result"}),
		Latency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "computation_seconds",
			Help:        "Computation latency in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		Entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "memo",
			Name:        "entries",
			Help:        "Number of memoized entries",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) Hit()  { m.Hits.Inc() }
func (m *Metrics) Miss() { m.Misses.Inc() }

func (m *Metrics) Computed(elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Computations.WithLabelValues(result).Inc()
	m.Latency.Observe(elapsed.Seconds())
}

func (m *Metrics) Stored() { m.Entries.Inc() }

func (m *Metrics) Evicted() {
	m.Evictions.Inc()
	m.Entries.Dec()
}

func (m *Metrics) Invalidated() {
	m.Invalidations.Inc()
	m.Entries.Dec()
}
