package metrics

import (
	"errors"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Commits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnelfy_commits_total",
		Help: "Total number of structural edits applied to a funnel, labelled by operation.",
	}, []string{"op"})

	RejectedConnections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnelfy_connections_rejected_total",
		Help: "Total number of refused connection attempts, labelled by reason.",
	}, []string{"reason"})

	SnapshotFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "funnelfy_history_snapshot_failures_total",
		Help: "Total number of edits that could not be recorded in the undo history.",
	})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnelfy_exports_total",
		Help: "Total number of exports produced, labelled by format.",
	}, []string{"format"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnelfy_http_requests_total",
		Help: "Total number of HTTP requests, labelled by route pattern and status code.",
	}, []string{"route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "funnelfy_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"route"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "funnelfy_sessions_active",
		Help: "Number of live editor sessions.",
	})
)

// RejectReason maps a connection error onto a low-cardinality label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCycle):
		return "cycle"
	case errors.Is(err, domain.ErrSelfLoop):
		return "self_loop"
	case errors.Is(err, domain.ErrDuplicateConnection):
		return "duplicate"
	case errors.Is(err, domain.ErrStepNotFound):
		return "not_found"
	default:
		return "other"
	}
}
