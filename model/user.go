package model

import (
	"time"
)

// Roles a user account can hold
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a faculty member or administrator
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never exposed
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	FullName  string    `json:"full_name"`

	// Relationships
	AuditLogs      []AdminAuditLog     `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the account carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
