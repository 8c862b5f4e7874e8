package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes.
const (
	outcomeSuccess       = "success"
	outcomeEmptyQuery    = "empty_query"
	outcomeRemoteFailed  = "remote_failed"
	outcomeTransport     = "transport_error"
	outcomeNoResults     = "no_results"
	outcomeDeliverFailed = "delivery_failed"
	outcomeError         = "error"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placefetch_runs_total",
			Help: "Total number of pipeline runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placefetch_fetch_duration_seconds",
			Help:    "Duration of remote search requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)
