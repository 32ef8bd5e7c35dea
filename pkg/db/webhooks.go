package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

const webhookColumns = `id, event, target_url, name, secret, api_version, integration_id, status,
	last_triggered_at, last_triggered_status, last_triggered_error, created_at, updated_at`

// DefaultWebhookAPIVersion is stored when a webhook is created without one.
const DefaultWebhookAPIVersion = "v5.0"

func scanWebhook(row interface{ Scan(...any) error }) (*models.Webhook, error) {
	var (
		w         models.Webhook
		triggered sql.NullTime
		status    sql.NullString
		lastErr   sql.NullString
	)
	err := row.Scan(
		&w.ID,
		&w.Event,
		&w.TargetURL,
		&w.Name,
		&w.Secret,
		&w.APIVersion,
		&w.IntegrationID,
		&w.Status,
		&triggered,
		&status,
		&lastErr,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.LastTriggeredAt = nullTime(triggered)
	w.LastTriggeredStatus = nullString(status)
	w.LastTriggeredError = nullString(lastErr)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return &w, nil
}

// CreateWebhook registers a webhook in the available state
func (db *DB) CreateWebhook(ctx context.Context, create models.WebhookCreate) (*models.Webhook, error) {
	ts := now()
	w := &models.Webhook{
		ID:            utils.NewObjectID(),
		Event:         create.Event,
		TargetURL:     create.TargetURL,
		Name:          create.Name,
		Secret:        create.Secret,
		APIVersion:    create.APIVersion,
		IntegrationID: create.IntegrationID,
		Status:        models.WebhookStatusAvailable,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	if w.APIVersion == "" {
		w.APIVersion = DefaultWebhookAPIVersion
	}

	_, err := db.exec(ctx, db.sql,
		`INSERT INTO webhooks (`+webhookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Event, w.TargetURL, w.Name, w.Secret, w.APIVersion, w.IntegrationID, w.Status,
		sql.NullTime{}, sql.NullString{}, sql.NullString{}, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create webhook")
	}

	return w, nil
}

// GetWebhook retrieves a webhook by id
func (db *DB) GetWebhook(ctx context.Context, id string) (*models.Webhook, error) {
	w, err := scanWebhook(db.queryRow(ctx, db.sql,
		`SELECT `+webhookColumns+` FROM webhooks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "webhook %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get webhook")
	}
	return w, nil
}

// ListWebhooks returns every webhook, oldest first
func (db *DB) ListWebhooks(ctx context.Context) ([]models.Webhook, error) {
	return db.listWebhooks(ctx,
		`SELECT `+webhookColumns+` FROM webhooks ORDER BY created_at ASC, id ASC`)
}

// ListWebhooksByEvent returns the webhooks subscribed to event
func (db *DB) ListWebhooksByEvent(ctx context.Context, event string) ([]models.Webhook, error) {
	return db.listWebhooks(ctx,
		`SELECT `+webhookColumns+` FROM webhooks WHERE event = ? ORDER BY created_at ASC, id ASC`, event)
}

func (db *DB) listWebhooks(ctx context.Context, query string, args ...any) ([]models.Webhook, error) {
	rows, err := db.query(ctx, db.sql, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list webhooks")
	}
	defer rows.Close()

	webhooks := []models.Webhook{}
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan webhook")
		}
		webhooks = append(webhooks, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list webhooks")
	}

	return webhooks, nil
}

// DeleteWebhook removes a webhook
func (db *DB) DeleteWebhook(ctx context.Context, id string) error {
	result, err := db.exec(ctx, db.sql, `DELETE FROM webhooks WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete webhook")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to delete webhook")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "webhook %s", id)
	}
	return nil
}

// RecordWebhookTrigger stores the outcome of the latest delivery. An empty
// trigger error clears the previous one.
func (db *DB) RecordWebhookTrigger(ctx context.Context, id string, trigger models.WebhookTrigger) error {
	lastErr := sql.NullString{String: trigger.Error, Valid: trigger.Error != ""}
	status := models.WebhookStatusAvailable
	if trigger.Error != "" {
		status = models.WebhookStatusError
	}

	result, err := db.exec(ctx, db.sql,
		`UPDATE webhooks
		 SET last_triggered_at = ?, last_triggered_status = ?, last_triggered_error = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		trigger.At.UTC().Truncate(time.Millisecond), trigger.Status, lastErr, status, now(), id,
	)
	if err != nil {
		return errors.Wrap(err, "failed to record webhook trigger")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to record webhook trigger")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "webhook %s", id)
	}
	return nil
}
