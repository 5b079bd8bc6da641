// Package metrics holds the process-wide Prometheus instrumentation for the
// link core: frame counters, retry counts, and point-in-time gauges for
// queue depth and value-table size.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vexlink"

var (
	FramesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_sent_total",
		Help:      "Frames written to the driver.",
	})

	FramesReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_received_total",
		Help:      "Frames successfully decoded from the read buffer.",
	})

	FramesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_dropped_total",
		Help:      "Frames discarded for failing checksum or decode.",
	})

	Retries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retries_total",
		Help:      "Pending-ack retransmissions, including forced GENERIC_NACK resends.",
	})

	PendingDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pending_dropped_total",
		Help:      "Pending-ack entries dropped after exceeding the retry cap.",
	})

	QueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current number of items waiting in the write queue.",
	})

	ValueTableSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "value_table_size",
		Help:      "Current number of distinct value IDs held in the value table.",
	})
)

// Registry is the collector registry this package's metrics are registered
// against. Handler serves it; callers embedding vexlink in a larger process
// can register into their own registry instead of calling Handler.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		FramesSent,
		FramesReceived,
		FramesDropped,
		Retries,
		PendingDropped,
		QueueDepth,
		ValueTableSize,
	)
}

// Handler returns an http.Handler exposing Registry in the Prometheus
// exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
