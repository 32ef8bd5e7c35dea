package db

// schema is applied in order on startup. Column types are chosen so the same
// statements run on PostgreSQL and SQLite.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		api_key TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		uuid TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS newsletters (
		id TEXT PRIMARY KEY,
		uuid TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		subscribe_on_signup BOOLEAN NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members_newsletters (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL REFERENCES members(id),
		newsletter_id TEXT NOT NULL REFERENCES newsletters(id),
		UNIQUE (member_id, newsletter_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_members_newsletters_member ON members_newsletters(member_id)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		uuid TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL REFERENCES posts(id),
		from_url TEXT NOT NULL,
		to_url TEXT NOT NULL,
		edited BOOLEAN NOT NULL,
		clicks INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_links_post ON links(post_id)`,
	`CREATE TABLE IF NOT EXISTS webhooks (
		id TEXT PRIMARY KEY,
		event TEXT NOT NULL,
		target_url TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		secret TEXT NOT NULL DEFAULT '',
		api_version TEXT NOT NULL,
		integration_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		last_triggered_at TIMESTAMP NULL,
		last_triggered_status TEXT NULL,
		last_triggered_error TEXT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_webhooks_event ON webhooks(event)`,
}
