package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a member of exactly one organization. The numeric ID is the
// storage key and never leaves the server; UserID is the public identifier.
type User struct {
	ID             uint64    `gorm:"primarykey" json:"-"`
	UserID         string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	FirstName      string    `gorm:"type:varchar(50);not null" json:"firstName"`
	LastName       string    `gorm:"type:varchar(50);not null" json:"lastName"`
	EmailAddress   string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"emailAddress"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	OrganizationID string    `gorm:"type:varchar(36);index;not null" json:"organizationId"`
	Role           UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
