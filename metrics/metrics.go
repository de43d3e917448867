// Package metrics holds the Prometheus collectors shared by the servers and
// the upstream clients.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eudr",
		Name:      "http_requests_total",
		Help:      "Parcel check requests by endpoint and status code.",
	}, []string{"endpoint", "code"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eudr",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of catalog and tile service calls.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"service", "outcome"})

	SceneLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eudr",
		Name:      "scene_lookups_total",
		Help:      "Best-scene lookups by time range and whether a scene qualified.",
	}, []string{"range", "result"})
)

// ObserveUpstream records one upstream call that started at start.
func ObserveUpstream(service string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamDuration.WithLabelValues(service, outcome).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
