package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        string    `db:"id" json:"id"`
	UUID      uuid.UUID `db:"uuid" json:"uuid"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type PostCreate struct {
	Title  string `json:"title" binding:"required"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}
