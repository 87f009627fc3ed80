package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//*******************************************
// prometheus metrics
//*******************************************

var (
	// origins searched by parallel method
	OriginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routechoice_origins_total",
		Help: "Total origins searched by parallel method",
	}, []string{"method"})

	// batch latency by parallel method
	BatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "routechoice_batch_duration_seconds",
		Help:    "Parallel shortest path batch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
	}, []string{"method"})

	BatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routechoice_batch_errors_total",
		Help: "Total failed parallel shortest path batches",
	}, []string{"method"})

	AlternativeLists = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routechoice_alternative_lists_total",
		Help: "Total generated path alternative lists",
	})

	InsufficientSamples = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routechoice_insufficient_samples_total",
		Help: "Total node pairs that did not reach their target path size",
	})

	// iterations needed per node pair
	GenerationIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "routechoice_generation_iterations",
		Help:    "Search iterations per generated path alternative list",
		Buckets: []float64{1, 2, 3, 5, 10, 15, 20, 30, 50},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routechoice_http_requests_total",
		Help: "Total http requests by route",
	}, []string{"route"})
)

// Records the duration since start for the parallel method.
func ObserveBatch(method string, start time.Time, origins int, err error) {
	BatchDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	OriginsTotal.WithLabelValues(method).Add(float64(origins))
	if err != nil {
		BatchErrors.WithLabelValues(method).Inc()
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
