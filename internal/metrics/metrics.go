package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// TrainSubset labels observations made on the training partition.
	TrainSubset = "train"
	// TestSubset labels observations made on the held-out partition.
	TestSubset = "test"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Epochs,
		Observer.prometheus.Loss,
		Observer.prometheus.Accuracy,
	)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// CountEpoch counts a completed pass over the given subset.
func (m *Metrics) CountEpoch(subset string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Epochs.WithLabelValues(subset).Inc()
}

// Observe records the latest loss and accuracy for the given subset.
func (m *Metrics) Observe(subset string, loss, accuracy float64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Loss.WithLabelValues(subset).Set(loss)
	m.prometheus.Accuracy.WithLabelValues(subset).Set(accuracy)
}

// Serve exposes the collectors on /metrics at the given port.
// It blocks, callers are expected to run it on its own routine.
func Serve(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
}
