// Package metrics registra las métricas Prometheus del ledger de leads y del API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/DheemanKumar/lead-manager/internal/application/ports"
)

var _ ports.LeadMetrics = (*Metrics)(nil)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics contadores e histogramas del servicio.
type Metrics struct {
	LeadsSubmitted     *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
	RecomputeDuration  prometheus.Histogram
	DependencyFailures *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registra las métricas en reg. Cada registry admite una sola instancia.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LeadsSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_manager_leads_submitted_total",
			Help: "Leads registrados por elegibilidad y duplicado",
		}, []string{"eligible", "duplicate"}),
		StatusTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_manager_status_transitions_total",
			Help: "Transiciones de estado aplicadas",
		}, []string{"from", "to"}),
		RecomputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lead_manager_earning_recompute_duration_seconds",
			Help:    "Duración del recálculo de ganancias de un usuario",
			Buckets: latencyBuckets,
		}),
		DependencyFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_manager_dependency_failures_total",
			Help: "Fallas de colaboradores externos (storage, extractor)",
		}, []string{"dependency"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_manager_http_requests_total",
			Help: "Requests HTTP por ruta, método y status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lead_manager_http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP por ruta",
			Buckets: latencyBuckets,
		}, []string{"route", "method"}),
	}
}

// LeadSubmitted registra un alta de lead.
func (m *Metrics) LeadSubmitted(eligible, duplicate bool) {
	m.LeadsSubmitted.WithLabelValues(strconv.FormatBool(eligible), strconv.FormatBool(duplicate)).Inc()
}

// StatusTransitioned registra una transición aplicada.
func (m *Metrics) StatusTransitioned(from, to string) {
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

// EarningRecomputed registra la duración de un recálculo. Llamar con time.Now() al inicio.
func (m *Metrics) EarningRecomputed(start time.Time) {
	m.RecomputeDuration.Observe(time.Since(start).Seconds())
}

// DependencyFailed registra una falla de storage o extractor.
func (m *Metrics) DependencyFailed(dependency string) {
	m.DependencyFailures.WithLabelValues(dependency).Inc()
}

// ObserveHTTP registra un request terminado.
func (m *Metrics) ObserveHTTP(route, method string, status int, start time.Time) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
}
