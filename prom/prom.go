// Package prom provides a Prometheus-backed matchgo.MetricsCollector.
//
// Register the collector's metrics on any prometheus.Registerer and pass the
// collector to a bin via the Metrics option:
//
//	collector := prom.NewCollector(prometheus.DefaultRegisterer)
//	bin, err := matchgo.New[tags.BitVector, string](m, sel, func(o *matchgo.Options) {
//	    o.Metrics = collector
//	})
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/matchgo"
)

var _ matchgo.MetricsCollector = (*Collector)(nil)

// Options contains configuration options for the collector.
type Options struct {
	// Namespace is prefixed to every metric name.
	Namespace string

	// DurationBuckets are the histogram buckets for operation durations,
	// in seconds. Queries are exhaustive scans, so the defaults lean
	// toward the microsecond range.
	DurationBuckets []float64
}

// DefaultOptions contains the default configuration options for the
// collector.
var DefaultOptions = Options{
	Namespace:       "matchgo",
	DurationBuckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
}

// Collector implements matchgo.MetricsCollector on Prometheus primitives.
type Collector struct {
	puts          prometheus.Counter
	erases        prometheus.Counter
	eraseMisses   prometheus.Counter
	queries       prometheus.Counter
	queryResults  prometheus.Counter
	putDuration   prometheus.Histogram
	queryDuration prometheus.Histogram
}

// NewCollector creates a Collector registered on reg.
func NewCollector(reg prometheus.Registerer, optFns ...func(o *Options)) *Collector {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	factory := promauto.With(reg)

	return &Collector{
		puts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "puts_total",
			Help:      "Entries stored in the bin",
		}),
		erases: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "erases_total",
			Help:      "Erase operations, hits and misses",
		}),
		eraseMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "erase_misses_total",
			Help:      "Erase operations on absent uids",
		}),
		queries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "queries_total",
			Help:      "Queries serviced",
		}),
		queryResults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "query_results_total",
			Help:      "Uids returned across all queries",
		}),
		putDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "put_duration_seconds",
			Help:      "Time to store an entry",
			Buckets:   opts.DurationBuckets,
		}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "query_duration_seconds",
			Help:      "Time to score and select over the bin",
			Buckets:   opts.DurationBuckets,
		}),
	}
}

func (c *Collector) RecordPut(d time.Duration) {
	c.puts.Inc()
	c.putDuration.Observe(d.Seconds())
}

func (c *Collector) RecordErase(_ time.Duration, found bool) {
	c.erases.Inc()
	if !found {
		c.eraseMisses.Inc()
	}
}

func (c *Collector) RecordQuery(_, results int, d time.Duration) {
	c.queries.Inc()
	c.queryResults.Add(float64(results))
	c.queryDuration.Observe(d.Seconds())
}
