package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus bundles the collectors of the training pipeline.
type Prometheus struct {
	Epochs   *prometheus.CounterVec
	Loss     *prometheus.GaugeVec
	Accuracy *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seedling",
				Name:      "epochs",
			}, []string{"subset"}),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "seedling",
				Name:      "loss",
			}, []string{"subset"}),
		Accuracy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "seedling",
				Name:      "accuracy",
			}, []string{"subset"}),
	}
}
