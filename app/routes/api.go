package routes

import (
	"net/http"

	"github.com/shashiranjanraj/orderservice/app/controllers"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
	"github.com/shashiranjanraj/orderservice/pkg/rbac"
	"github.com/shashiranjanraj/orderservice/pkg/response"
	"github.com/shashiranjanraj/orderservice/pkg/router"
)

// Handlers carries what the route table needs. Authenticate resolves the
// bearer token into an identity on the request context.
type Handlers struct {
	Auth         *controllers.AuthController
	Orders       *controllers.OrderController
	Authenticate router.Middleware
}

func RegisterAPI(r *router.Router, h Handlers) {
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", "metrics", metrics.Handler())

	r.Post("/login", "auth.login", h.Auth.Login)

	orders := r.Group("/orders", h.Authenticate, rbac.HasRole(auth.RoleUser, auth.RoleAdmin))
	orders.Get("/", "orders.index", h.Orders.Index)
	orders.Post("/", "orders.store", h.Orders.Store)
	orders.Get("/{id}", "orders.show", h.Orders.Show)
	orders.Put("/{id}", "orders.update", h.Orders.Update)
	orders.Delete("/{id}", "orders.destroy", h.Orders.Destroy)
}
