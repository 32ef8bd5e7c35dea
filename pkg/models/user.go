package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold in the admin.
const (
	RoleOwner = "Owner"
	RoleAdmin = "Administrator"
)

type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	APIKey    string    `db:"api_key" json:"api_key,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserCreate represents data for registering a user
type UserCreate struct {
	Email string `json:"email" binding:"required,email"`
}
