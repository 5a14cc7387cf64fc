// Package metrics - Prometheus-метрики сервиса, отдаются на /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	dashboardDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_report_duration_seconds",
		Help:    "Time to build the admin dashboard report",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	reconciledRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "counter_reconcile_fixed_rows_total",
		Help: "Rows whose denormalized counter was corrected by the reconcile job",
	}, []string{"counter"})

	uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "file_uploads_total",
		Help: "Accepted and rejected uploads by kind",
	}, []string{"kind", "result"})
)

// Handler - http.Handler для /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ObserveDashboard(elapsed time.Duration) {
	dashboardDuration.Observe(elapsed.Seconds())
}

func AddReconciled(counter string, rows int64) {
	reconciledRows.WithLabelValues(counter).Add(float64(rows))
}

// Upload result: "stored" или "rejected".
func Upload(kind, result string) {
	uploads.WithLabelValues(kind, result).Inc()
}
