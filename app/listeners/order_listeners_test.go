package listeners_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderservice/app/listeners"
	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/app/services"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/event"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
)

func TestRegister_CountsEvents(t *testing.T) {
	bus := event.NewBus()
	listeners.Register(bus)

	counter := metrics.OrderEvents.WithLabelValues(services.EventOrderDeleted)
	before := testutil.ToFloat64(counter)

	bus.Fire(context.Background(), services.EventOrderDeleted, services.OrderEvent{
		Actor: auth.Identity{Email: "a@x.com"},
		Order: models.Order{ID: 1, CustomerName: "a@x.com"},
	})
	// Foreign payloads are ignored.
	bus.Fire(context.Background(), services.EventOrderDeleted, "noise")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
