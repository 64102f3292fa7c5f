package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Outcome of a single comparison.
type Outcome string

const (
	Compared Outcome = "compared"
	Skipped  Outcome = "skipped"
	Missing  Outcome = "missing"
	Failed   Outcome = "failed"
)

var Observer = NewMetrics(prometheus.DefaultRegisterer)

// Metrics records the progress of the comparisons.
type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
	counts     map[string]map[Outcome]int
}

// NewMetrics creates new metrics registered with the given registerer.
// A nil registerer keeps the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutex:      new(sync.RWMutex),
		prometheus: NewPrometheusMetrics(),
		counts:     make(map[string]map[Outcome]int),
	}
	if reg != nil {
		reg.MustRegister(m.prometheus.Collectors()...)
	}
	return m
}

// Increment counts one comparison of the given kind.
func (m *Metrics) Increment(kind string, outcome Outcome) {
	m.prometheus.Comparisons.WithLabelValues(kind, string(outcome)).Inc()
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.counts[kind]; !ok {
		m.counts[kind] = make(map[Outcome]int)
	}
	m.counts[kind][outcome]++
}

// Observe records the time spent since start.
func (m *Metrics) Observe(kind string, start time.Time) {
	m.prometheus.Duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// Count returns the number of comparisons of the given kind and outcome.
func (m *Metrics) Count(kind string, outcome Outcome) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.counts[kind][outcome]
}

// Serve exposes the default registry on the given port until the context is done.
func Serve(ctx context.Context, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("could not stop metrics server")
		}
	}()
	go func() {
		log.Info().Int("port", port).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Int("port", port).Msg("metrics server failed")
		}
	}()
}
