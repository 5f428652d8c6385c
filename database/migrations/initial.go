package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_roles_and_users", &CreateRolesAndUsers{})
	migration.Register("20260101000001_create_orders_and_products", &CreateOrdersAndProducts{})
}

// CreateRolesAndUsers creates roles, users and the user_roles join table.
type CreateRolesAndUsers struct{}

func (m *CreateRolesAndUsers) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{})
}

func (m *CreateRolesAndUsers) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("user_roles", &models.User{}, &models.Role{})
}

// CreateOrdersAndProducts creates orders and their line items.
type CreateOrdersAndProducts struct{}

func (m *CreateOrdersAndProducts) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.Product{})
}

func (m *CreateOrdersAndProducts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{}, &models.Order{})
}
