package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/orderservice/app/requests"
	"github.com/shashiranjanraj/orderservice/app/resources"
	"github.com/shashiranjanraj/orderservice/app/services"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/bind"
	"github.com/shashiranjanraj/orderservice/pkg/response"
	"github.com/shashiranjanraj/orderservice/pkg/router"
)

// OrderController adapts HTTP to the order workflow. The caller comes from
// the request context and is handed to the service explicitly.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Index handles GET /orders?status=&minPrice=&maxPrice=.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	filter, err := requests.ParseOrderFilter(r.URL.Query())
	if err != nil {
		response.BadRequest(w, "Invalid parameter: "+err.Error())
		return
	}

	orders, err := c.service.List(r.Context(), actor(r), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, resources.NewOrders(orders))
}

// Store handles POST /orders.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	body, ok := bindOrder(w, r)
	if !ok {
		return
	}

	order, err := c.service.Create(r.Context(), actor(r), body.ToModel())
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, resources.NewOrder(order))
}

// Show handles GET /orders/{id}.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := c.service.Get(r.Context(), actor(r), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, resources.NewOrder(order))
}

// Update handles PUT /orders/{id}.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	body, ok := bindOrder(w, r)
	if !ok {
		return
	}

	order, err := c.service.Update(r.Context(), actor(r), id, body.ToModel())
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, resources.NewOrder(order))
}

// Destroy handles DELETE /orders/{id}.
func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), actor(r), id); err != nil {
		renderError(w, r, err)
		return
	}
	response.NoContent(w)
}

func actor(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFromCtx(r.Context())
	return id
}

func orderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := router.Param(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(w, "Invalid order ID: "+strconv.Quote(raw))
		return 0, false
	}
	return uint(id), true
}

func bindOrder(w http.ResponseWriter, r *http.Request) (*requests.OrderRequest, bool) {
	var body requests.OrderRequest
	errs, err := bind.JSON(w, r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return nil, false
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return nil, false
	}
	return &body, true
}
