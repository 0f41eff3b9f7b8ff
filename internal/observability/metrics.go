package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	requestsTotal           *prometheus.CounterVec
	latencySeconds          *prometheus.HistogramVec
	errorsTotal             *prometheus.CounterVec
	calculationsTotal       *prometheus.CounterVec
	exportsTotal            *prometheus.CounterVec
	celebrationsTotal       prometheus.Counter
	celebrationClientsGauge prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calculator_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calculator_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calculator_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		calculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calculator_calculations_total",
			Help: "Total number of calculation attempts by outcome.",
		}, []string{"outcome"})

		exportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calculator_exports_total",
			Help: "Total number of PDF export attempts by outcome.",
		}, []string{"outcome"})

		celebrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calculator_celebrations_total",
			Help: "Total number of celebration events emitted.",
		})

		celebrationClientsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "calculator_celebration_clients_active",
			Help: "Number of websocket clients subscribed to celebration events.",
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			calculationsTotal,
			exportsTotal,
			celebrationsTotal,
			celebrationClientsGauge,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// Calculations exposes the counter for calculation outcomes.
func Calculations() *prometheus.CounterVec {
	RegisterMetrics()
	return calculationsTotal
}

// Exports exposes the counter for export outcomes.
func Exports() *prometheus.CounterVec {
	RegisterMetrics()
	return exportsTotal
}

// Celebrations exposes the counter for emitted celebration events.
func Celebrations() prometheus.Counter {
	RegisterMetrics()
	return celebrationsTotal
}

// CelebrationClients exposes the gauge of active celebration subscribers.
func CelebrationClients() prometheus.Gauge {
	RegisterMetrics()
	return celebrationClientsGauge
}
