package models

import (
	"time"

	"github.com/google/uuid"
)

// Member statuses.
const (
	MemberStatusFree = "free"
	MemberStatusPaid = "paid"
)

type Member struct {
	ID          string       `db:"id" json:"id"`
	UUID        uuid.UUID    `db:"uuid" json:"uuid"`
	Email       string       `db:"email" json:"email"`
	Name        string       `db:"name" json:"name"`
	Note        string       `db:"note" json:"note"`
	Status      string       `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
	Newsletters []Newsletter `json:"newsletters"`
}

// MemberCreate represents data for creating a member through the admin API
type MemberCreate struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Note  string `json:"note"`
}
