package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NewsletterStatusActive   = "active"
	NewsletterStatusArchived = "archived"
)

type Newsletter struct {
	ID                string    `db:"id" json:"id"`
	UUID              uuid.UUID `db:"uuid" json:"uuid"`
	Name              string    `db:"name" json:"name"`
	Slug              string    `db:"slug" json:"slug"`
	Status            string    `db:"status" json:"status"`
	SubscribeOnSignup bool      `db:"subscribe_on_signup" json:"subscribe_on_signup"`
	SortOrder         int       `db:"sort_order" json:"sort_order"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`

	// Pivot is the members_newsletters row this newsletter was loaded through.
	// It is only set when newsletters are fetched for a member.
	Pivot *MemberNewsletter `json:"-"`
}

// MemberNewsletter is the join row between a member and a newsletter.
type MemberNewsletter struct {
	ID           string `db:"id"`
	MemberID     string `db:"member_id"`
	NewsletterID string `db:"newsletter_id"`
}

type NewsletterCreate struct {
	Name              string `json:"name" binding:"required"`
	Slug              string `json:"slug"`
	SubscribeOnSignup bool   `json:"subscribe_on_signup"`
	SortOrder         int    `json:"sort_order"`
}
