package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	scansTotal      prometheus.Counter
	importsTotal    prometheus.Counter
	cardsRendered   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	scansTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_scans_total",
		Help: "Total number of successful QR attendance scans",
	})

	importsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_imports_total",
		Help: "Total number of roster import runs",
	})

	cardsRendered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qr_card_sheets_total",
		Help: "Total number of QR card sheets rendered",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, scansTotal, importsTotal, cardsRendered, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		scansTotal:      scansTotal,
		importsTotal:    importsTotal,
		cardsRendered:   cardsRendered,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordScan counts a successful attendance scan.
func (m *MetricsService) RecordScan() {
	if m == nil {
		return
	}
	m.scansTotal.Inc()
}

// RecordImport counts a roster import run.
func (m *MetricsService) RecordImport() {
	if m == nil {
		return
	}
	m.importsTotal.Inc()
}

// RecordCardSheet counts a rendered QR card sheet.
func (m *MetricsService) RecordCardSheet() {
	if m == nil {
		return
	}
	m.cardsRendered.Inc()
}
