package obs

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "campus_http_requests_total",
	Help: "HTTP requests served, by route, method and status",
}, []string{"route", "method", "status"})

var httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "campus_http_request_duration_seconds",
	Help:    "HTTP request latency, by route and method",
	Buckets: prometheus.DefBuckets,
}, []string{"route", "method"})

var opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "campus_operation_duration_seconds",
	Help:    "Latency of timed internal operations",
	Buckets: prometheus.DefBuckets,
}, []string{"op", "outcome"})

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "campus_cache_lookups_total",
	Help: "Cache lookups, by cache name and result",
}, []string{"cache", "result"})

var countdownStreams = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "campus_countdown_streams",
	Help: "Open deadline countdown streams",
})

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, method string, status int, dur time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(dur.Seconds())
}

func CacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}

// StreamOpened increments the open stream gauge and returns the matching decrement.
func StreamOpened() func() {
	countdownStreams.Inc()
	return countdownStreams.Dec
}
