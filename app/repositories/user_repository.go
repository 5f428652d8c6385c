package repositories

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/pkg/orm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = orm.ErrNotFound

// UserRepository is the credential store.
type UserRepository struct {
	q *orm.Query
}

func NewUserRepository(q *orm.Query) *UserRepository {
	return &UserRepository{q: q}
}

// FindByEmail loads a user with roles, deleted or not.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.q.WithContext(ctx).
		Model(&models.User{}).
		Preload("Roles").
		Where("email = ?", email).
		First(&user)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", email, err)
	}
	return &user, nil
}

// Create persists a new user and links the given roles, creating missing
// role rows on the way.
func (r *UserRepository) Create(ctx context.Context, user *models.User, roles ...string) error {
	return r.q.WithContext(ctx).Transaction(func(tx *orm.Query) error {
		user.Roles = nil
		for _, name := range roles {
			role, err := findOrCreateRole(tx, name)
			if err != nil {
				return err
			}
			user.Roles = append(user.Roles, *role)
		}
		if err := tx.Create(user); err != nil {
			return fmt.Errorf("create user %q: %w", user.Email, err)
		}
		return nil
	})
}

// FindOrCreateRole returns the role row named name, inserting it if needed.
func (r *UserRepository) FindOrCreateRole(ctx context.Context, name string) (*models.Role, error) {
	return findOrCreateRole(r.q.WithContext(ctx), name)
}

func findOrCreateRole(q *orm.Query, name string) (*models.Role, error) {
	role := models.Role{Name: name}
	if err := q.FirstOrCreate(&role); err != nil {
		return nil, fmt.Errorf("role %q: %w", name, err)
	}
	return &role, nil
}
