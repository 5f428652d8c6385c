// Package requests holds the decoded and validated shapes of inbound bodies
// and query strings.
package requests

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/pkg/validate"
)

// OrderRequest is the body of POST /orders and PUT /orders/{id}.
type OrderRequest struct {
	CustomerName string           `json:"customerName" validate:"required,email,max=255"`
	Status       string           `json:"status"       validate:"required"`
	TotalPrice   *decimal.Decimal `json:"totalPrice"   validate:"required,gte=0,decimals=2"`
	Products     []ProductRequest `json:"products"     validate:"required"`
}

type ProductRequest struct {
	Name     string           `json:"name"     validate:"required,max=255"`
	Price    *decimal.Decimal `json:"price"    validate:"required,gte=0,decimals=2"`
	Quantity int              `json:"quantity" validate:"gte=1"`
}

// Validate checks the order fields and then every product, keyed as
// products[i].field.
func (r *OrderRequest) Validate() validate.Errors {
	errs := validate.Struct(r)
	if _, ok := errs["status"]; !ok {
		if _, err := models.ParseOrderStatus(r.Status); err != nil {
			errs["status"] = fmt.Sprintf("The status must be one of %s.", statusList())
		}
	}
	for i := range r.Products {
		errs.Merge(fmt.Sprintf("products[%d].", i), validate.Struct(&r.Products[i]))
	}
	return errs
}

// ToModel converts a validated request into an unsaved order.
func (r *OrderRequest) ToModel() *models.Order {
	status, _ := models.ParseOrderStatus(r.Status)
	o := &models.Order{
		CustomerName: strings.TrimSpace(r.CustomerName),
		Status:       status,
		TotalPrice:   deref(r.TotalPrice),
		Products:     make([]models.Product, 0, len(r.Products)),
	}
	for _, p := range r.Products {
		o.Products = append(o.Products, models.Product{
			Name:     strings.TrimSpace(p.Name),
			Price:    deref(p.Price),
			Quantity: p.Quantity,
		})
	}
	return o
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func statusList() string {
	names := make([]string, 0, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
