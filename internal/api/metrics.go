package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parseRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_parse_requests_total",
		Help: "Parse requests by outcome.",
	}, []string{"status"})

	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "statement_parse_duration_seconds",
		Help:    "Time spent extracting and parsing one statement.",
		Buckets: prometheus.DefBuckets,
	})

	parseConfidence = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_parse_confidence_total",
		Help: "Successful parses by extraction confidence.",
	}, []string{"confidence"})
)
