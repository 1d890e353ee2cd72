// Package telemetry exports Prometheus metrics for calculations, exchange
// rate fetches and HTTP requests.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/models"
)

const namespace = "abacus"

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics holds all Abacus Prometheus metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Calculations        *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	RateFetches         *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// New registers the metrics plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Calculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Calculator runs by calculator, category and outcome",
		}, []string{"calculator", "category", "outcome"}),
		CalculationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent inside calculator handlers",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		}, []string{"category"}),
		RateFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_fetches_total",
			Help:      "Exchange rate fetches by source (live, fallback) and outcome",
		}, []string{"source", "outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case calc.IsInvalidInput(err):
		return OutcomeInvalidInput
	}
	return OutcomeError
}

// ObserveCalculation implements catalog.Observer.
func (m *Metrics) ObserveCalculation(name string, category models.Category, elapsed time.Duration, err error) {
	m.Calculations.WithLabelValues(name, string(category), outcome(err)).Inc()
	m.CalculationDuration.WithLabelValues(string(category)).Observe(elapsed.Seconds())
}

// ObserveRateFetch implements currency.FetchObserver.
func (m *Metrics) ObserveRateFetch(source string, err error) {
	m.RateFetches.WithLabelValues(source, outcome(err)).Inc()
}

// ObserveRequest records one HTTP request. route should be the mux
// pattern, not the raw path.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
