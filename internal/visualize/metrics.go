package visualize

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

var (
	visualizeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topoviz_visualize_requests_total",
			Help: "Number of topology visualisations by result.",
		},
		[]string{"result"},
	)

	visualizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "topoviz_visualize_duration_seconds",
			Help:    "Time taken to fetch resources and build a topology graph.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		visualizeRequestsTotal,
		visualizeDuration,
	)
}
