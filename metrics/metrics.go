package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commandcenter"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Served http requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of served http requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	MarketplaceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_requests_total",
		Help:      "Calls to the marketplace fulfillment and metering apis by operation and status.",
	}, []string{"operation", "status"})

	MarketplaceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "marketplace_request_duration_seconds",
		Help:      "Latency of marketplace api calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	WebhookNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_notifications_total",
		Help:      "Webhook notifications by verified action, status and outcome.",
	}, []string{"action", "status", "outcome"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notifications sent to the operations team by handler, event and result.",
	}, []string{"handler", "event", "result"})
)

// Webhook outcomes.
const (
	OutcomeDispatched   = "dispatched"
	OutcomeDuplicate    = "duplicate"
	OutcomeStale        = "stale"
	OutcomeUnverified   = "unverified"
	OutcomeMismatch     = "mismatch"
	OutcomeIgnored      = "ignored"
	OutcomeFailed       = "failed"
	OutcomeUnknownEvent = "unknown_action"
)

// Result reports success or failure as a metrics label.
func Result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
