package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/pkg/orm"
)

// OrderFilter narrows a listing. A nil field does not constrain its column.
type OrderFilter struct {
	Status   *models.OrderStatus
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// OrderRepository is the order store. Every read excludes soft-deleted
// orders unless the method name says otherwise.
type OrderRepository struct {
	q *orm.Query
}

func NewOrderRepository(q *orm.Query) *OrderRepository {
	return &OrderRepository{q: q}
}

// Transaction runs fn with a repository bound to one database transaction.
func (r *OrderRepository) Transaction(ctx context.Context, fn func(tx *OrderRepository) error) error {
	return r.q.WithContext(ctx).Transaction(func(tx *orm.Query) error {
		return fn(&OrderRepository{q: tx})
	})
}

// Create inserts the order and its products.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if err := r.q.WithContext(ctx).Create(o); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// FindByID loads an order and all its products regardless of deletion state.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := r.q.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		First(&o)
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &o, nil
}

// FindByIDNotDeleted loads an active order with its active products and
// locks the row when called inside a transaction on a server database.
func (r *OrderRepository) FindByIDNotDeleted(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := r.active(ctx).
		ForUpdate().
		Where("id = ?", id).
		First(&o)
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &o, nil
}

// FindByFilters lists active orders of every customer.
func (r *OrderRepository) FindByFilters(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	return r.list(ctx, nil, f)
}

// FindByFiltersForOwner lists active orders whose customer is owner.
func (r *OrderRepository) FindByFiltersForOwner(ctx context.Context, owner string, f OrderFilter) ([]models.Order, error) {
	return r.list(ctx, &owner, f)
}

func (r *OrderRepository) list(ctx context.Context, owner *string, f OrderFilter) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.active(ctx).
		WhereIf(owner != nil, "customer_name = ?", deref(owner)).
		WhereIf(f.Status != nil, "status = ?", derefStatus(f.Status)).
		WhereIf(f.MinPrice != nil, "total_price >= ?", derefDecimal(f.MinPrice)).
		WhereIf(f.MaxPrice != nil, "total_price <= ?", derefDecimal(f.MaxPrice)).
		Order("id").
		Get(&orders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Replace overwrites every column of o and swaps its line items for
// o.Products. The old line items are removed. Call inside Transaction.
func (r *OrderRepository) Replace(ctx context.Context, o *models.Order) error {
	q := r.q.WithContext(ctx)

	if _, err := q.Where("order_id = ?", o.ID).Delete(&models.Product{}); err != nil {
		return fmt.Errorf("replace order %d: drop products: %w", o.ID, err)
	}
	if err := q.Save(o); err != nil {
		return fmt.Errorf("replace order %d: %w", o.ID, err)
	}
	for i := range o.Products {
		o.Products[i].ID = 0
		o.Products[i].OrderID = o.ID
	}
	if len(o.Products) > 0 {
		if err := q.Create(&o.Products); err != nil {
			return fmt.Errorf("replace order %d: insert products: %w", o.ID, err)
		}
	}
	return nil
}

// SoftDelete flags the order and every one of its products as deleted.
// Call inside Transaction so both updates commit together.
func (r *OrderRepository) SoftDelete(ctx context.Context, o *models.Order) error {
	q := r.q.WithContext(ctx)
	now := time.Now()

	n, err := q.Model(&models.Order{}).
		Where("id = ? AND is_deleted = ?", o.ID, false).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": now})
	if err != nil {
		return fmt.Errorf("delete order %d: %w", o.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete order %d: %w", o.ID, ErrNotFound)
	}

	if _, err := q.Model(&models.Product{}).
		Where("order_id = ?", o.ID).
		Updates(map[string]interface{}{"is_deleted": true}); err != nil {
		return fmt.Errorf("delete order %d: products: %w", o.ID, err)
	}

	o.IsDeleted = true
	o.UpdatedAt = now
	for i := range o.Products {
		o.Products[i].IsDeleted = true
	}
	return nil
}

func (r *OrderRepository) active(ctx context.Context) *orm.Query {
	return r.q.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("id")
		}).
		Where("is_deleted = ?", false)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefStatus(s *models.OrderStatus) models.OrderStatus {
	if s == nil {
		return ""
	}
	return *s
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
