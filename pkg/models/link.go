package models

import "time"

// PostLink is an outbound link found in a post, together with its click count.
// The JSON shape mirrors the admin links table: {post_id, link: {...}, count: {...}}.
type PostLink struct {
	PostID string    `json:"post_id"`
	Link   LinkRef   `json:"link"`
	Count  LinkCount `json:"count"`
}

type LinkRef struct {
	LinkID    string    `db:"id" json:"link_id"`
	From      string    `db:"from_url" json:"from"`
	To        string    `db:"to_url" json:"to"`
	Edited    bool      `db:"edited" json:"edited"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type LinkCount struct {
	Clicks int `db:"clicks" json:"clicks"`
}

// LinkCreate represents data for tracking a new outbound link on a post
type LinkCreate struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// LinkUpdate represents a new redirect target for a link
type LinkUpdate struct {
	To string `json:"to" binding:"required"`
}
