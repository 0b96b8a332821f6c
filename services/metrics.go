package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GiftCardsRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "caviste",
			Subsystem: "fulfillment",
			Name:      "gift_cards_rendered_total",
			Help:      "Gift card documents rendered",
		},
	)

	GiftCardRenderFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "caviste",
			Subsystem: "fulfillment",
			Name:      "gift_card_render_failures_total",
			Help:      "Gift card documents that could not be rendered",
		},
	)

	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "caviste",
			Subsystem: "fulfillment",
			Name:      "orders_created_total",
			Help:      "Orders persisted, by origin",
		},
		[]string{"origin"},
	)

	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "caviste",
			Subsystem: "notification",
			Name:      "emails_total",
			Help:      "Emails attempted, by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	registerOnce sync.Once
)

// RegisterMetrics adds the service collectors to reg. Safe to call more than once.
func RegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(GiftCardsRendered, GiftCardRenderFailures, OrdersCreated, EmailsSent)
	})
}

func recordEmail(category string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	EmailsSent.WithLabelValues(category, outcome).Inc()
}
