// Package testkit holds helpers shared by package tests: a migrated
// in-memory database, seeded users and JSON request helpers.
package testkit

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/app/repositories"
	_ "github.com/shashiranjanraj/orderservice/database/migrations"
	"github.com/shashiranjanraj/orderservice/database/seeders"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/database"
	"github.com/shashiranjanraj/orderservice/pkg/migration"
	"github.com/shashiranjanraj/orderservice/pkg/orm"
)

var (
	seq     atomic.Int64
	unsafeC = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// DB opens a private in-memory SQLite database with every migration and
// the role seeder applied. It is closed when the test ends.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("%s_%d", unsafeC.ReplaceAllString(t.Name(), "_"), seq.Add(1))
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.New(db, nil).Run())
	require.NoError(t, seeders.SeedRoles(db))
	return db
}

// Query wraps db for repositories.
func Query(db *gorm.DB) *orm.Query { return orm.New(db) }

// CreateUser inserts a user with a bcrypt hash of password and the given
// roles, returning the identity the auth middleware would resolve.
func CreateUser(t testing.TB, db *gorm.DB, email, password string, roles ...string) auth.Identity {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: hash}
	require.NoError(t, repositories.NewUserRepository(orm.New(db)).Create(context.Background(), user, roles...))

	return auth.Identity{UserID: user.ID, Email: email, Roles: append([]string(nil), roles...)}
}
