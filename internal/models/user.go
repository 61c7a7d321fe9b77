// Package models contains the gorm models of the rental schema.
package models

import (
	"strings"
	"time"
)

// User is an account of the rental application. Any user can host
// listings and book or review the listings of others.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username" validate:"required,max=150"`
	Email     string    `gorm:"size:254;index" json:"email" validate:"omitempty,email"`
	Password  string    `gorm:"not null" json:"-" validate:"required"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	IsAdmin   bool      `gorm:"not null;default:false;index" json:"is_admin"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) String() string {
	return u.Username
}
