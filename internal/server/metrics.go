package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikipath_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wikipath_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	pathQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikipath_path_queries_total",
		Help: "find-path queries by outcome",
	}, []string{"result"})

	pathDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wikipath_path_distance",
		Help:    "Distance of successfully found paths",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikipath_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)
