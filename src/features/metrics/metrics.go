package metrics

import (
	"github.com/contre95/fsbridge/src/fsevent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector holds the prometheus series for classification.
type Collector struct {
	registry *prometheus.Registry
	events   *prometheus.CounterVec
	flags    *prometheus.CounterVec
	batches  prometheus.Counter
	dropped  prometheus.Counter
}

// NewCollector registers the classification series on a fresh registry.
// Go runtime and process collectors are included.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classified_events_total",
			Help:      "File change events classified, by kind.",
		}, []string{"kind"}),
		flags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_flags_total",
			Help:      "Raw flag bits seen on classified events, by flag name.",
		}, []string{"flag"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classify_batches_total",
			Help:      "Classification batches received over HTTP.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_dropped_events_total",
			Help:      "Events dropped by the watcher feed because the channel was full.",
		}),
	}

	c.registry.MustRegister(
		c.events,
		c.flags,
		c.batches,
		c.dropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create the kind series so they export as zero.
	for _, k := range fsevent.Kinds() {
		c.events.WithLabelValues(k.String())
	}
	return c
}

// Registry returns the registry backing the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordEvent counts one classified event.
func (c *Collector) RecordEvent(ev fsevent.FileChangeEvent, kind fsevent.Kind) {
	c.events.WithLabelValues(kind.String()).Inc()
	for _, name := range ev.Flags.Names() {
		c.flags.WithLabelValues(name).Inc()
	}
}

// RecordBatch counts one classification batch.
func (c *Collector) RecordBatch() {
	c.batches.Inc()
}

// RecordDropped counts one event dropped by a feed.
func (c *Collector) RecordDropped() {
	c.dropped.Inc()
}
