package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/veilledger/veilsync/internal/synchronizer"
)

var (
	synchronizerBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veilsync",
		Subsystem: "synchronizer",
		Name:      "batch_total",
		Help:      "Count of block batches reconciled against the pending pool.",
	}, []string{"status"})

	synchronizerBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "veilsync",
		Subsystem: "synchronizer",
		Name:      "batch_duration_seconds",
		Help:      "Duration of reconciling a block batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	synchronizerPrunedTxs = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "veilsync",
		Subsystem: "synchronizer",
		Name:      "pruned_txs",
		Help:      "Number of pending txs pruned per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	synchronizerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "veilsync",
		Subsystem: "synchronizer",
		Name:      "state",
		Help:      "Current synchronizer state (1 for the active state, 0 otherwise).",
	}, []string{"state"})
)

var synchronizerStates = []synchronizer.State{
	synchronizer.StateIdle,
	synchronizer.StateSyncing,
	synchronizer.StateRunning,
	synchronizer.StateStopped,
}

// Synchronizer tracks metrics for the pending-tx synchronizer.
type Synchronizer struct{}

// NewSynchronizer creates a Synchronizer metrics collector.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{}
}

// ObserveBatch records the outcome, size and duration of one batch.
func (m Synchronizer) ObserveBatch(err error, blocks, prunedTxs int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	synchronizerBatchTotal.WithLabelValues(status).Inc()
	synchronizerBatchDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		synchronizerPrunedTxs.Observe(float64(prunedTxs))
	}
}

// ObserveStateChange flips the state gauge to the new state.
func (m Synchronizer) ObserveStateChange(state synchronizer.State) {
	for _, s := range synchronizerStates {
		value := 0.0
		if s == state {
			value = 1.0
		}
		synchronizerState.WithLabelValues(string(s)).Set(value)
	}
}
