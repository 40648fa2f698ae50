package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	UpstreamRequests  *prometheus.CounterVec
	BookingsSubmitted prometheus.Counter
	SessionTeardowns  prometheus.Counter
	UpstreamReachable prometheus.Gauge
	ProbeDuration     prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docbooking_requests_total",
			Help: "Total number of gateway requests by route and status",
		}, []string{"route", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docbooking_request_duration_seconds",
			Help:    "Duration of gateway request handling",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docbooking_upstream_requests_total",
			Help: "Total number of upstream API calls by outcome",
		}, []string{"outcome"}),

		BookingsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docbooking_bookings_submitted_total",
			Help: "Total number of bookings submitted through the gateway",
		}),

		SessionTeardowns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docbooking_session_teardowns_total",
			Help: "Total number of sessions destroyed after an authorization failure",
		}),

		UpstreamReachable: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "docbooking_upstream_reachable",
			Help: "Whether the upstream API answered the last health probe",
		}),

		ProbeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docbooking_upstream_probe_duration_seconds",
			Help:    "Duration of upstream health probes",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
