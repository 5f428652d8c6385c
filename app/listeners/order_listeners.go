// Package listeners subscribes side effects to order lifecycle events.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/orderservice/app/services"
	"github.com/shashiranjanraj/orderservice/pkg/event"
	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
)

// Register attaches the audit trail to every order event on bus.
func Register(bus *event.Bus) {
	for _, name := range []string{
		services.EventOrderCreated,
		services.EventOrderUpdated,
		services.EventOrderDeleted,
	} {
		bus.Listen(name, audit(name))
	}
}

func audit(name string) event.Handler {
	return func(ctx context.Context, payload interface{}) {
		ev, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		metrics.OrderEvents.WithLabelValues(name).Inc()
		logger.WithCtx(ctx).Info("audit",
			"event", name,
			"order_id", ev.Order.ID,
			"customer", ev.Order.CustomerName,
			"status", string(ev.Order.Status),
			"products", len(ev.Order.Products),
			"actor", ev.Actor.Email,
		)
	}
}
