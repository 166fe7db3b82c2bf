// Package metrics holds the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncsTotal counts full sync runs by outcome (ok, error).
	SyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsync_syncs_total",
		Help: "Full sync runs by outcome.",
	}, []string{"outcome"})

	// ResourcesSynced counts individual records pulled and saved, by kind.
	ResourcesSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsync_resources_synced_total",
		Help: "Resource records saved by kind.",
	}, []string{"kind"})

	// WebhooksTotal counts webhook deliveries by handling outcome.
	WebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsync_webhooks_total",
		Help: "Webhook deliveries by handling outcome.",
	}, []string{"outcome"})

	// ShopsPaused counts fatal-failure pause transitions.
	ShopsPaused = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopsync_shops_paused_total",
		Help: "Shops paused after fatal sync failures.",
	})
)
