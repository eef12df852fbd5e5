// Package monitoring provides Prometheus metrics for the cellview backend.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	SessionsActive prometheus.Gauge
	SessionsOpened prometheus.Counter

	// Library metrics
	LibraryNotebooks prometheus.Gauge

	// Pass metrics
	PassRuns     *prometheus.CounterVec
	PassDuration *prometheus.HistogramVec

	// Widget metrics
	WidgetsAttached prometheus.Gauge
	WidgetCommands  *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cellview_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cellview_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cellview_sessions_active",
				Help: "Number of active document sessions",
			},
		),
		SessionsOpened: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cellview_sessions_opened_total",
				Help: "Total number of document sessions opened",
			},
		),

		LibraryNotebooks: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cellview_library_notebooks",
				Help: "Number of notebooks indexed in the library",
			},
		),

		PassRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cellview_pass_runs_total",
				Help: "Total number of extension pass runs",
			},
			[]string{"pass"},
		),
		PassDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cellview_pass_duration_seconds",
				Help:    "Extension pass duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"pass"},
		),

		WidgetsAttached: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cellview_widgets_attached",
				Help: "Number of editor widgets attached across sessions",
			},
		),
		WidgetCommands: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cellview_widget_commands_total",
				Help: "Total number of widget commands pushed to the host",
			},
			[]string{"command"},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cellview_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cellview_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cellview_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPassRun records one extension pass run
func (m *Metrics) RecordPassRun(pass string, duration time.Duration) {
	m.PassRuns.WithLabelValues(pass).Inc()
	m.PassDuration.WithLabelValues(pass).Observe(duration.Seconds())
}

// RecordWidgetCommand records a widget command pushed to the host
func (m *Metrics) RecordWidgetCommand(command string) {
	m.WidgetCommands.WithLabelValues(command).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetSessionsActive sets the number of active sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncSessionsOpened increments the sessions opened counter
func (m *Metrics) IncSessionsOpened() {
	m.SessionsOpened.Inc()
}

// SetLibraryNotebooks sets the number of indexed notebooks
func (m *Metrics) SetLibraryNotebooks(count int) {
	m.LibraryNotebooks.Set(float64(count))
}

// SetWidgetsAttached sets the number of attached widgets
func (m *Metrics) SetWidgetsAttached(count int) {
	m.WidgetsAttached.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
