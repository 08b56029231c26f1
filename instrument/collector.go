/*
Package instrument exposes B-tree activity as Prometheus metrics.

A Collector is registered as the observer of a tree and counts structural
events by kind. When tracking a tree, it reports the tree's key count and
height as gauges on every scrape. Scrapes read the tracked tree, so they
must not run concurrently with modifications of it.
*/
package instrument

import (
	"sync"

	"github.com/npillmayer/btreekit/btree"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "btree"

// Sizer is the part of a tree the collector reads gauges from.
type Sizer interface {
	Len() int
	Height() int
}

// Collector counts structural events of a tree and implements
// prometheus.Collector.
type Collector[K any] struct {
	events     *prometheus.CounterVec
	counters   []prometheus.Counter // indexed by btree.EventKind
	keysDesc   *prometheus.Desc
	heightDesc *prometheus.Desc

	mu      sync.Mutex
	tracked Sizer
}

var _ btree.Observer[int] = (*Collector[int])(nil)
var _ prometheus.Collector = (*Collector[int])(nil)

// NewCollector creates a collector with metric names prefixed by namespace.
// constLabels, which may be nil, are attached to all metrics, e.g. to tell
// several trees apart.
func NewCollector[K any](namespace string, constLabels prometheus.Labels) *Collector[K] {
	c := &Collector[K]{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "structural_events_total",
			Help:        "Counter of structural changes by kind.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		keysDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "keys"),
			"Number of keys in the tree.",
			nil, constLabels),
		heightDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "height"),
			"Number of levels of the tree.",
			nil, constLabels),
	}
	for _, kind := range btree.EventKinds() {
		c.counters = append(c.counters, c.events.WithLabelValues(kind.String()))
	}
	return c
}

// Track makes the collector report gauges for s. Passing nil stops gauge
// reporting.
func (c *Collector[K]) Track(s Sizer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracked = s
}

// Notify is part of interface btree.Observer.
func (c *Collector[K]) Notify(e btree.Event[K]) {
	if e.Kind >= 0 && int(e.Kind) < len(c.counters) {
		c.counters[e.Kind].Inc()
		return
	}
	c.events.WithLabelValues(e.Kind.String()).Inc()
}

// Describe is part of interface prometheus.Collector.
func (c *Collector[K]) Describe(ch chan<- *prometheus.Desc) {
	c.events.Describe(ch)
	ch <- c.keysDesc
	ch <- c.heightDesc
}

// Collect is part of interface prometheus.Collector.
func (c *Collector[K]) Collect(ch chan<- prometheus.Metric) {
	c.events.Collect(ch)
	c.mu.Lock()
	s := c.tracked
	c.mu.Unlock()
	if s == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.keysDesc, prometheus.GaugeValue, float64(s.Len()))
	ch <- prometheus.MustNewConstMetric(c.heightDesc, prometheus.GaugeValue, float64(s.Height()))
}
