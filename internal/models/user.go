package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. Kept as a typed string so role
// checks compare constants instead of raw strings.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role value coming from the outside.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User represents a registered account. Complaints may reference a user as
// their submitter; anonymous complaints reference nobody.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role      Role      `gorm:"type:varchar(16);default:student;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a UUID primary key and
// normalizes the email before the row is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = NormalizeEmail(u.Email)
	return
}

// NormalizeEmail lowercases and trims an address so the unique index is
// effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
