package models

import (
	"time"
)

// Role values stored in profiles.role.
const (
	RoleDeveloper = "developer"
	RoleEvaluator = "evaluator"
)

// Profile maps an identity-provider user to a role. The id equals the
// authenticated user id; authorization gating reads only the role.
type Profile struct {
	ID           string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	Role         string     `gorm:"column:role" json:"role"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Profile) TableName() string {
	return "profiles"
}

// ValidRole reports whether role is one of the known profile roles.
func ValidRole(role string) bool {
	return role == RoleDeveloper || role == RoleEvaluator
}
