package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts proxy requests by endpoint and outcome
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exnota",
			Subsystem: "proxy",
			Name:      "requests_total",
			Help:      "Total proxy requests handled",
		},
		[]string{"endpoint", "outcome"}, // outcome: ok or the returned error code
	)

	// NotionRequestDuration tracks calls from the proxy to the Notion API
	NotionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "exnota",
			Subsystem: "proxy",
			Name:      "notion_request_duration_seconds",
			Help:      "Time spent in Notion API calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

const outcomeOK = "ok"
