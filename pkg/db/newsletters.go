package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

const newsletterColumns = `id, uuid, name, slug, status, subscribe_on_signup, sort_order, created_at, updated_at`

func scanNewsletter(row interface{ Scan(...any) error }, extra ...any) (*models.Newsletter, error) {
	var n models.Newsletter
	dest := []any{
		&n.ID,
		&n.UUID,
		&n.Name,
		&n.Slug,
		&n.Status,
		&n.SubscribeOnSignup,
		&n.SortOrder,
		&n.CreatedAt,
		&n.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}

// CreateNewsletter creates an active newsletter
func (db *DB) CreateNewsletter(ctx context.Context, create models.NewsletterCreate) (*models.Newsletter, error) {
	ts := now()
	slug := create.Slug
	if slug == "" {
		slug = slugify(create.Name)
	}

	n := &models.Newsletter{
		ID:                utils.NewObjectID(),
		UUID:              uuid.New(),
		Name:              create.Name,
		Slug:              slug,
		Status:            models.NewsletterStatusActive,
		SubscribeOnSignup: create.SubscribeOnSignup,
		SortOrder:         create.SortOrder,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}

	_, err := db.exec(ctx, db.sql,
		`INSERT INTO newsletters (`+newsletterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UUID.String(), n.Name, n.Slug, n.Status, n.SubscribeOnSignup, n.SortOrder, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create newsletter")
	}

	return n, nil
}

// ListNewsletters returns every newsletter ordered by sort order
func (db *DB) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	rows, err := db.query(ctx, db.sql,
		`SELECT `+newsletterColumns+` FROM newsletters ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list newsletters")
	}
	defer rows.Close()

	newsletters := []models.Newsletter{}
	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan newsletter")
		}
		newsletters = append(newsletters, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list newsletters")
	}

	return newsletters, nil
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
