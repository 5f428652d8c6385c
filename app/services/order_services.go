package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/app/repositories"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/event"
	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
	"github.com/shashiranjanraj/orderservice/pkg/rbac"
)

// Lifecycle events fired after the owning transaction commits.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// OrderEvent is the payload of every order lifecycle event.
type OrderEvent struct {
	Actor auth.Identity
	Order models.Order
}

// OrderService runs the order workflow. Every method takes the caller
// explicitly; nothing is read from ambient state.
type OrderService struct {
	orders *repositories.OrderRepository
	events *event.Bus
}

func NewOrderService(orders *repositories.OrderRepository, events *event.Bus) *OrderService {
	if events == nil {
		events = event.NewBus()
	}
	return &OrderService{orders: orders, events: events}
}

// Create persists draft as a new active order owned by draft.CustomerName.
// A non-Admin may only create orders for themselves.
func (s *OrderService) Create(ctx context.Context, actor auth.Identity, draft *models.Order) (_ *models.Order, err error) {
	defer record("create", &err)

	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if err := checkDraft(draft); err != nil {
		return nil, err
	}
	if !rbac.CanAssign(actor, draft.CustomerName) {
		return nil, fmt.Errorf("create order for %q: %w", draft.CustomerName, ErrForbidden)
	}

	o := fresh(draft)
	err = s.orders.Transaction(ctx, func(tx *repositories.OrderRepository) error {
		return tx.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("order created", "order_id", o.ID, "customer", o.CustomerName, "actor", actor.Email)
	s.events.Fire(ctx, EventOrderCreated, OrderEvent{Actor: actor, Order: *o})
	return o, nil
}

// Update replaces every field and line item of an active order the caller
// can see. Only the identifier and creation time survive.
func (s *OrderService) Update(ctx context.Context, actor auth.Identity, id uint, draft *models.Order) (_ *models.Order, err error) {
	defer record("update", &err)

	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if err := checkDraft(draft); err != nil {
		return nil, err
	}

	var updated *models.Order
	err = s.orders.Transaction(ctx, func(tx *repositories.OrderRepository) error {
		existing, err := s.visible(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if !rbac.CanAssign(actor, draft.CustomerName) {
			return fmt.Errorf("reassign order %d to %q: %w", id, draft.CustomerName, ErrForbidden)
		}

		o := fresh(draft)
		o.ID = existing.ID
		o.CreatedAt = existing.CreatedAt
		if err := tx.Replace(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("order updated", "order_id", updated.ID, "actor", actor.Email)
	s.events.Fire(ctx, EventOrderUpdated, OrderEvent{Actor: actor, Order: *updated})
	return updated, nil
}

// List returns active orders matching f. Admins see every customer's
// orders, everyone else only their own.
func (s *OrderService) List(ctx context.Context, actor auth.Identity, f repositories.OrderFilter) (_ []models.Order, err error) {
	defer record("list", &err)

	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if actor.IsAdmin() {
		return s.orders.FindByFilters(ctx, f)
	}
	return s.orders.FindByFiltersForOwner(ctx, actor.Email, f)
}

// Get returns one active order the caller can see.
func (s *OrderService) Get(ctx context.Context, actor auth.Identity, id uint) (_ *models.Order, err error) {
	defer record("get", &err)

	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return s.visible(ctx, s.orders, actor, id)
}

// Delete soft-deletes an active order the caller can see, together with
// all of its line items, in one transaction. Deleting twice fails the
// second time with ErrOrderNotFound.
func (s *OrderService) Delete(ctx context.Context, actor auth.Identity, id uint) (err error) {
	defer record("delete", &err)

	if !actor.Authenticated() {
		return ErrUnauthenticated
	}

	var deleted *models.Order
	err = s.orders.Transaction(ctx, func(tx *repositories.OrderRepository) error {
		o, err := s.visible(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := tx.SoftDelete(ctx, o); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return orderNotFound(id)
			}
			return err
		}
		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("order deleted", "order_id", id, "actor", actor.Email)
	s.events.Fire(ctx, EventOrderDeleted, OrderEvent{Actor: actor, Order: *deleted})
	return nil
}

// visible loads an active order and applies the access policy. Missing and
// foreign orders produce the same error.
func (s *OrderService) visible(ctx context.Context, repo *repositories.OrderRepository, actor auth.Identity, id uint) (*models.Order, error) {
	o, err := repo.FindByIDNotDeleted(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, orderNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	if !rbac.CanAccess(actor, o.CustomerName) {
		return nil, orderNotFound(id)
	}
	return o, nil
}

// fresh copies a draft into a new active order with no identifiers.
func fresh(draft *models.Order) *models.Order {
	o := &models.Order{
		CustomerName: draft.CustomerName,
		Status:       draft.Status,
		TotalPrice:   draft.TotalPrice,
		Products:     make([]models.Product, 0, len(draft.Products)),
	}
	for _, p := range draft.Products {
		o.Products = append(o.Products, models.Product{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}
	return o
}

// checkDraft enforces the order invariants for Create and Update.
func checkDraft(o *models.Order) error {
	if o == nil {
		return &InvalidOrderError{Fields: map[string]string{"order": "is required"}}
	}
	fields := map[string]string{}
	if strings.TrimSpace(o.CustomerName) == "" {
		fields["customerName"] = "is required"
	}
	if !o.Status.Valid() {
		fields["status"] = "must be one of PENDING, CONFIRMED, CANCELLED"
	}
	if o.TotalPrice.IsNegative() {
		fields["totalPrice"] = "must not be negative"
	} else if !cents(o.TotalPrice) {
		fields["totalPrice"] = "must not have more than 2 decimal places"
	}
	if len(o.Products) == 0 {
		fields["products"] = "must contain at least one product"
	}
	for i, p := range o.Products {
		key := fmt.Sprintf("products[%d].", i)
		if strings.TrimSpace(p.Name) == "" {
			fields[key+"name"] = "is required"
		}
		if p.Price.IsNegative() {
			fields[key+"price"] = "must not be negative"
		} else if !cents(p.Price) {
			fields[key+"price"] = "must not have more than 2 decimal places"
		}
		if p.Quantity < 1 {
			fields[key+"quantity"] = "must be at least 1"
		}
	}
	if len(fields) > 0 {
		return &InvalidOrderError{Fields: fields}
	}
	return nil
}

// cents reports whether d fits the two-place money columns unchanged.
func cents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func record(operation string, err *error) {
	metrics.RecordOrderOperation(operation, outcome(*err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrUnauthenticated):
		return "forbidden"
	case errors.Is(err, ErrInvalidOrder):
		return "invalid"
	default:
		return "error"
	}
}
