package models

import "time"

// Webhook events emitted for member lifecycle transitions.
const (
	EventMemberAdded   = "member.added"
	EventMemberEdited  = "member.edited"
	EventMemberDeleted = "member.deleted"
)

// KnownEvents lists the event names a webhook may subscribe to.
var KnownEvents = []string{
	EventMemberAdded,
	EventMemberEdited,
	EventMemberDeleted,
}

// IsKnownEvent reports whether name is a subscribable event.
func IsKnownEvent(name string) bool {
	for _, e := range KnownEvents {
		if e == name {
			return true
		}
	}
	return false
}

const (
	WebhookStatusAvailable = "available"
	WebhookStatusError     = "error"
)

type Webhook struct {
	ID                  string     `db:"id" json:"id"`
	Event               string     `db:"event" json:"event"`
	TargetURL           string     `db:"target_url" json:"target_url"`
	Name                string     `db:"name" json:"name,omitempty"`
	Secret              string     `db:"secret" json:"secret,omitempty"`
	APIVersion          string     `db:"api_version" json:"api_version"`
	IntegrationID       string     `db:"integration_id" json:"integration_id,omitempty"`
	Status              string     `db:"status" json:"status"`
	LastTriggeredAt     *time.Time `db:"last_triggered_at" json:"last_triggered_at"`
	LastTriggeredStatus *string    `db:"last_triggered_status" json:"last_triggered_status"`
	LastTriggeredError  *string    `db:"last_triggered_error" json:"last_triggered_error"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// WebhookCreate represents data for registering a webhook
type WebhookCreate struct {
	Event         string `json:"event" binding:"required"`
	TargetURL     string `json:"target_url" binding:"required,url"`
	Name          string `json:"name"`
	Secret        string `json:"secret"`
	APIVersion    string `json:"api_version"`
	IntegrationID string `json:"integration_id"`
}

// WebhookTrigger is the outcome of the most recent delivery attempt.
type WebhookTrigger struct {
	At     time.Time
	Status string
	Error  string
}
