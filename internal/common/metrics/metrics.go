// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loandesk_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "loandesk_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	SessionMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loandesk_session_mutations_total",
			Help: "Total number of committed loan session mutations",
		},
		[]string{"operation"},
	)

	SnapshotSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loandesk_snapshot_save_failures_total",
			Help: "Total number of best-effort session snapshot saves that failed",
		},
	)

	WidgetStoreFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loandesk_widget_store_fallbacks_total",
			Help: "Total number of widget loads that fell back to the empty default",
		},
		[]string{"widget"},
	)

	ConsultRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loandesk_consult_requests_total",
			Help: "Total number of AI consultation requests",
		},
		[]string{"status"},
	)

	ConsultDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "loandesk_consult_duration_seconds",
			Help: "Duration of AI consultation calls in seconds",
		},
	)

	NewsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loandesk_news_refresh_total",
			Help: "Total number of news summary refreshes",
		},
		[]string{"status"},
	)

	RemindersSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loandesk_reminders_sent_total",
			Help: "Total number of schedule reminder notifications dispatched",
		},
		[]string{"channel", "status"},
	)
)
