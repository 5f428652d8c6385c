// Package resources maps models to their public JSON shape.
package resources

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/orderservice/app/models"
)

type Order struct {
	ID           uint        `json:"id"`
	CustomerName string      `json:"customerName"`
	Status       string      `json:"status"`
	TotalPrice   json.Number `json:"totalPrice"`
	IsDeleted    bool        `json:"isDeleted"`
	Products     []Product   `json:"products"`
}

type Product struct {
	ID       uint        `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

func NewOrder(o *models.Order) Order {
	out := Order{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		TotalPrice:   money(o.TotalPrice),
		IsDeleted:    o.IsDeleted,
		Products:     make([]Product, 0, len(o.Products)),
	}
	for _, p := range o.Products {
		out.Products = append(out.Products, Product{
			ID:       p.ID,
			Name:     p.Name,
			Price:    money(p.Price),
			Quantity: p.Quantity,
		})
	}
	return out
}

// NewOrders never returns nil so an empty result encodes as [].
func NewOrders(orders []models.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrder(&orders[i]))
	}
	return out
}

// money renders a two-place JSON number, e.g. 10.00.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
