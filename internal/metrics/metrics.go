// Package metrics exposes the broker's Prometheus collectors. Collectors are
// registered once on the default registry; the HTTP server serves them on
// /metrics via promhttp.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesPushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mq",
			Name:      "messages_pushed_total",
			Help:      "Total number of messages accepted by push, per queue.",
		},
		[]string{"queue"},
	)

	messagesPulled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mq",
			Name:      "messages_pulled_total",
			Help:      "Total number of messages delivered by pull, per queue.",
		},
		[]string{"queue"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "mq",
			Name:      "queue_depth",
			Help:      "Current number of messages held by each queue.",
		},
		[]string{"queue"},
	)

	snapshotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mq",
			Name:      "snapshots_total",
			Help:      "Total number of queue snapshots written to the store.",
		},
	)

	snapshotErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mq",
			Name:      "snapshot_errors_total",
			Help:      "Total number of queue snapshot writes that failed.",
		},
	)

	snapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mq",
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent serializing and writing one queue snapshot.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	storageOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mq",
			Subsystem: "storage",
			Name:      "op_duration_seconds",
			Help:      "Latency of store operations.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"op"},
	)

	storageOpBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mq",
			Subsystem: "storage",
			Name:      "op_bytes_total",
			Help:      "Bytes moved by store operations.",
		},
		[]string{"op"},
	)
)

// IncPushed counts one accepted push for queue.
func IncPushed(queue string) {
	messagesPushed.WithLabelValues(queue).Inc()
}

// IncPulled counts one delivered pull for queue.
func IncPulled(queue string) {
	messagesPulled.WithLabelValues(queue).Inc()
}

// SetQueueDepth records the current message count for queue.
func SetQueueDepth(queue string, depth int) {
	queueDepth.WithLabelValues(queue).Set(float64(depth))
}

// RemoveQueue drops the per-queue series after a queue is deleted.
func RemoveQueue(queue string) {
	messagesPushed.DeleteLabelValues(queue)
	messagesPulled.DeleteLabelValues(queue)
	queueDepth.DeleteLabelValues(queue)
}

// ObserveSnapshot records one snapshot write outcome.
func ObserveSnapshot(elapsed time.Duration, err error) {
	if err != nil {
		snapshotErrors.Inc()
		return
	}
	snapshotsTotal.Inc()
	snapshotDuration.Observe(elapsed.Seconds())
}

// StoreMetrics adapts the collectors to the storage layer's hook surface.
type StoreMetrics struct{}

func (StoreMetrics) ObserveWrite(elapsed time.Duration, bytes int) {
	storageOpDuration.WithLabelValues("write").Observe(elapsed.Seconds())
	storageOpBytes.WithLabelValues("write").Add(float64(bytes))
}

func (StoreMetrics) ObserveRead(elapsed time.Duration, bytes int) {
	storageOpDuration.WithLabelValues("read").Observe(elapsed.Seconds())
	storageOpBytes.WithLabelValues("read").Add(float64(bytes))
}

func (StoreMetrics) ObserveBatchCommit(elapsed time.Duration, numOps int, bytes int) {
	storageOpDuration.WithLabelValues("batch_commit").Observe(elapsed.Seconds())
	storageOpBytes.WithLabelValues("batch_commit").Add(float64(bytes))
}
