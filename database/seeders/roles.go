package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
)

func init() {
	Register("roles", SeedRoles)
}

// SeedRoles inserts the User and Admin roles if they are missing.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{auth.RoleUser, auth.RoleAdmin} {
		role := models.Role{Name: name}
		if err := db.Where(&role).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
