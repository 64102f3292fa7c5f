package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the collectors of a benchmark run.
type Prometheus struct {
	Comparisons *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Comparisons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seismic",
				Name:      "comparisons",
				Help:      "number of cluster comparisons by outcome",
			}, []string{"kind", "outcome"}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "seismic",
				Name:      "comparison_seconds",
				Help:      "time spent loading and comparing a sample",
				Buckets:   prometheus.DefBuckets,
			}, []string{"kind"}),
	}
}

// Collectors returns all collectors for registration.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Comparisons, p.Duration}
}
