package webhooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery outcomes recorded in metrics.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeGone      = "gone"
	OutcomeDropped   = "dropped"
)

// Metrics holds the dispatcher's prometheus collectors.
type Metrics struct {
	deliveries *prometheus.CounterVec
	attempts   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewMetrics registers the webhook collectors with reg. A nil reg leaves
// them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter_admin",
			Subsystem: "webhooks",
			Name:      "deliveries_total",
			Help:      "Webhook deliveries by event and final outcome.",
		}, []string{"event", "outcome"}),
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter_admin",
			Subsystem: "webhooks",
			Name:      "attempts_total",
			Help:      "Individual webhook HTTP attempts by event.",
		}, []string{"event"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "newsletter_admin",
			Subsystem: "webhooks",
			Name:      "delivery_duration_seconds",
			Help:      "Time from first attempt to final outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),
	}
}
