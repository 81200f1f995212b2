package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noteProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veilsync",
		Subsystem: "note_processor",
		Name:      "process_batch_total",
		Help:      "Count of block batches processed per account.",
	}, []string{"account", "status"})

	noteProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "veilsync",
		Subsystem: "note_processor",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a block batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"account", "status"})

	noteRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veilsync",
		Subsystem: "note_processor",
		Name:      "records_total",
		Help:      "Count of note records derived, by kind.",
	}, []string{"account", "kind"})

	noteNullifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veilsync",
		Subsystem: "note_processor",
		Name:      "nullified_total",
		Help:      "Count of notes retired by a nullifier.",
	}, []string{"account"})
)

// NoteProcessor tracks metrics for one account's note pipeline.
type NoteProcessor struct {
	account string
}

// NewNoteProcessor creates a NoteProcessor collector labelled with the
// account.
func NewNoteProcessor(account string) *NoteProcessor {
	if account == "" {
		account = "unknown"
	}
	return &NoteProcessor{account: account}
}

// ObserveProcessBatch records the outcome and duration of one batch.
func (m NoteProcessor) ObserveProcessBatch(err error, blocks int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	noteProcessBatchTotal.WithLabelValues(m.account, status).Inc()
	noteProcessBatchDuration.WithLabelValues(m.account, status).Observe(time.Since(started).Seconds())
}

// ObserveNotes records the records derived from one batch.
func (m NoteProcessor) ObserveNotes(incoming, outgoing, deferred int) {
	noteRecordsTotal.WithLabelValues(m.account, "incoming").Add(float64(incoming))
	noteRecordsTotal.WithLabelValues(m.account, "outgoing").Add(float64(outgoing))
	noteRecordsTotal.WithLabelValues(m.account, "deferred").Add(float64(deferred))
}

// ObserveNullified records notes retired by a nullifier.
func (m NoteProcessor) ObserveNullified(count int) {
	noteNullifiedTotal.WithLabelValues(m.account).Add(float64(count))
}
