package services

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector receives operational measurements from the processor.
type MetricsCollector interface {
	RecordOperation(operation, outcome string, duration time.Duration)
	RecordATMCash(atmID, currency string, cash float64)
	RecordFee(currency string, fee float64)
}

type NoopMetrics struct{}

func (NoopMetrics) RecordOperation(string, string, time.Duration) {}
func (NoopMetrics) RecordATMCash(string, string, float64)         {}
func (NoopMetrics) RecordFee(string, float64)                     {}

type PrometheusMetrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	atmCash    *prometheus.GaugeVec
	fees       *prometheus.CounterVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	return &PrometheusMetrics{
		registry: registry,
		operations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "atm_operations_total",
			Help: "Engine operations by outcome code",
		}, []string{"operation", "outcome"}),
		duration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atm_operation_duration_seconds",
			Help:    "Time taken to process an engine operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		atmCash: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "atm_available_cash",
			Help: "Cash left in each ATM after its last mutation",
		}, []string{"atm_id", "currency"}),
		fees: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "atm_conversion_fees_total",
			Help: "Conversion fees charged, in account currency",
		}, []string{"currency"}),
	}
}

func (m *PrometheusMetrics) RecordOperation(operation, outcome string, duration time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordATMCash(atmID, currency string, cash float64) {
	m.atmCash.WithLabelValues(atmID, currency).Set(cash)
}

func (m *PrometheusMetrics) RecordFee(currency string, fee float64) {
	if fee > 0 {
		m.fees.WithLabelValues(currency).Add(fee)
	}
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
