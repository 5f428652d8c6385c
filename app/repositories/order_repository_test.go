package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/app/repositories"
	"github.com/shashiranjanraj/orderservice/pkg/testkit"
)

func newOrder(customer string, status models.OrderStatus, total string) *models.Order {
	return &models.Order{
		CustomerName: customer,
		Status:       status,
		TotalPrice:   decimal.RequireFromString(total),
		Products: []models.Product{
			{Name: "Pen", Price: decimal.RequireFromString("1.00"), Quantity: 1},
			{Name: "Ink", Price: decimal.RequireFromString("2.00"), Quantity: 2},
		},
	}
}

func TestOrderRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOrderRepository(testkit.Query(testkit.DB(t)))

	o := newOrder("a@x.com", models.StatusPending, "5.00")
	require.NoError(t, repo.Create(ctx, o))
	require.NotZero(t, o.ID)

	require.NoError(t, repo.Transaction(ctx, func(tx *repositories.OrderRepository) error {
		return tx.SoftDelete(ctx, o)
	}))

	_, err := repo.FindByIDNotDeleted(ctx, o.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound), "%v", err)

	stored, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)
	require.Len(t, stored.Products, 2)
	for _, p := range stored.Products {
		assert.True(t, p.IsDeleted, p.Name)
	}

	err = repo.SoftDelete(ctx, o)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderRepository_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOrderRepository(testkit.Query(testkit.DB(t)))

	o := newOrder("a@x.com", models.StatusPending, "5.00")
	require.NoError(t, repo.Create(ctx, o))

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *repositories.OrderRepository) error {
		if err := tx.SoftDelete(ctx, o); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.FindByIDNotDeleted(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
	assert.Len(t, got.Products, 2)
}

func TestOrderRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOrderRepository(testkit.Query(testkit.DB(t)))

	o := newOrder("a@x.com", models.StatusPending, "5.00")
	require.NoError(t, repo.Create(ctx, o))

	next := &models.Order{
		ID:           o.ID,
		CustomerName: "a@x.com",
		Status:       models.StatusCancelled,
		TotalPrice:   decimal.RequireFromString("3.00"),
		CreatedAt:    o.CreatedAt,
		Products:     []models.Product{{Name: "Nib", Price: decimal.RequireFromString("3.00"), Quantity: 1}},
	}
	require.NoError(t, repo.Transaction(ctx, func(tx *repositories.OrderRepository) error {
		return tx.Replace(ctx, next)
	}))

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(3)))
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Nib", got.Products[0].Name)
}

func TestOrderRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOrderRepository(testkit.Query(testkit.DB(t)))

	for _, o := range []*models.Order{
		newOrder("a@x.com", models.StatusPending, "5.00"),
		newOrder("a@x.com", models.StatusConfirmed, "50.00"),
		newOrder("b@x.com", models.StatusPending, "500.00"),
	} {
		require.NoError(t, repo.Create(ctx, o))
	}

	pending := models.StatusPending
	lo := decimal.NewFromInt(10)
	hi := decimal.NewFromInt(100)

	all, err := repo.FindByFilters(ctx, repositories.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.FindByFiltersForOwner(ctx, "a@x.com", repositories.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	got, err := repo.FindByFilters(ctx, repositories.OrderFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByFilters(ctx, repositories.OrderFilter{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].TotalPrice.Equal(decimal.NewFromInt(50)))

	got, err = repo.FindByFiltersForOwner(ctx, "b@x.com", repositories.OrderFilter{MaxPrice: &lo})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
