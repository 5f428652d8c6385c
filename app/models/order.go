package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the caller-supplied business status. It is independent of
// the soft-delete flag.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every accepted status in display order.
var OrderStatuses = []OrderStatus{StatusPending, StatusConfirmed, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseOrderStatus accepts any letter case.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// Order owns its Products. CustomerName holds the owner's email.
// IsDeleted is one-way: once true the order is invisible to every read path.
type Order struct {
	ID           uint            `gorm:"primaryKey"`
	CustomerName string          `gorm:"column:customer_name;size:255;not null;index"`
	Status       OrderStatus     `gorm:"size:20;not null;index"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:decimal(19,2);not null"`
	Products     []Product       `gorm:"foreignKey:OrderID"`
	IsDeleted    bool            `gorm:"column:is_deleted;not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Product is a line item. It has no lifecycle of its own.
type Product struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Quantity  int             `gorm:"not null"`
	OrderID   uint            `gorm:"not null;index"`
	IsDeleted bool            `gorm:"column:is_deleted;not null;default:false"`
}
