package services

import (
	"errors"
	"fmt"
)

// Domain failures. Controllers translate these to HTTP status codes in one
// place; nothing below the controller knows about HTTP.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOrderNotFound      = errors.New("order not found or access denied")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidOrder       = errors.New("invalid order")
)

// OrderNotFoundError is returned whenever an order id does not resolve to an
// active order the caller may see. Missing, deleted and foreign orders are
// indistinguishable.
type OrderNotFoundError struct {
	ID uint
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order with ID %d not found or access denied", e.ID)
}

func (e *OrderNotFoundError) Is(target error) bool { return target == ErrOrderNotFound }

func orderNotFound(id uint) error { return &OrderNotFoundError{ID: id} }

// InvalidOrderError carries per-field messages for a draft that breaks the
// order invariants.
type InvalidOrderError struct {
	Fields map[string]string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order: %d field(s)", len(e.Fields))
}

func (e *InvalidOrderError) Is(target error) bool { return target == ErrInvalidOrder }
