package models

import "time"

// User is a login identity. Users are created out of band (CLI user:create)
// and never mutated by the order workflow.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	IsDeleted    bool      `gorm:"column:is_deleted;not null;default:false"`
	Roles        []Role    `gorm:"many2many:user_roles;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames flattens Roles for token claims and identity checks.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Role is seeded reference data ("User", "Admin").
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:50;not null"`
}
