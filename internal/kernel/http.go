// Package kernel assembles the HTTP handler: repositories, services,
// controllers, the global middleware stack and the route table.
package kernel

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/app/controllers"
	"github.com/shashiranjanraj/orderservice/app/listeners"
	"github.com/shashiranjanraj/orderservice/app/repositories"
	"github.com/shashiranjanraj/orderservice/app/routes"
	"github.com/shashiranjanraj/orderservice/app/services"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/event"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
	"github.com/shashiranjanraj/orderservice/pkg/middleware"
	"github.com/shashiranjanraj/orderservice/pkg/orm"
	"github.com/shashiranjanraj/orderservice/pkg/reqid"
	"github.com/shashiranjanraj/orderservice/pkg/response"
	"github.com/shashiranjanraj/orderservice/pkg/router"
	"github.com/shashiranjanraj/orderservice/pkg/throttle"
)

type Options struct {
	Issuer      *auth.Issuer
	Limiter     throttle.Limiter // nil disables rate limiting
	CORSOrigins []string
	Events      *event.Bus // nil creates a private bus
}

type HTTPKernel struct {
	router *router.Router
	events *event.Bus
}

// NewHTTPKernel wires every layer on top of db.
func NewHTTPKernel(db *gorm.DB, opts Options) *HTTPKernel {
	events := opts.Events
	if events == nil {
		events = event.NewBus()
	}
	listeners.Register(events)

	q := orm.New(db)
	authService := services.NewAuthService(repositories.NewUserRepository(q), opts.Issuer)
	orderService := services.NewOrderService(repositories.NewOrderRepository(q), events)

	r := router.New()

	// Global middleware, outermost first.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(opts.CORSOrigins)))
	if opts.Limiter != nil {
		r.Use(throttle.Middleware(opts.Limiter))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	routes.RegisterAPI(r, routes.Handlers{
		Auth:         controllers.NewAuthController(authService),
		Orders:       controllers.NewOrderController(orderService),
		Authenticate: middleware.Authenticate(opts.Issuer, authService.ResolveIdentity),
	})

	return &HTTPKernel{router: r, events: events}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.Route { return k.router.Routes() }

// Events exposes the bus so callers can attach extra listeners.
func (k *HTTPKernel) Events() *event.Bus { return k.events }
