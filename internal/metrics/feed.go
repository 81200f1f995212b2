// Package metrics holds the Prometheus collectors behind the small metrics
// interfaces the services depend on.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedLatestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veilsync",
		Subsystem: "feed",
		Name:      "latest_total",
		Help:      "Count of remote tip reads.",
	}, []string{"status"})

	feedLatestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "veilsync",
		Subsystem: "feed",
		Name:      "latest_duration_seconds",
		Help:      "Duration of remote tip reads.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	feedFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veilsync",
		Subsystem: "feed",
		Name:      "fetch_total",
		Help:      "Count of block fetch attempts.",
	}, []string{"status"})

	feedFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "veilsync",
		Subsystem: "feed",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of block fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	feedFetchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "veilsync",
		Subsystem: "feed",
		Name:      "fetch_size",
		Help:      "Number of blocks returned per fetch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

// Feed tracks metrics for the polling block feed.
type Feed struct{}

// NewFeed creates a Feed metrics collector.
func NewFeed() *Feed {
	return &Feed{}
}

// ObserveLatest records a remote tip read outcome and duration.
func (m Feed) ObserveLatest(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	feedLatestTotal.WithLabelValues(status).Inc()
	feedLatestDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveFetch records a block fetch outcome, size and duration.
func (m Feed) ObserveFetch(err error, blocks int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	feedFetchTotal.WithLabelValues(status).Inc()
	feedFetchDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		feedFetchSize.Observe(float64(blocks))
	}
}
