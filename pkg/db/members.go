package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

const memberColumns = `id, uuid, email, name, note, status, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.ID,
		&m.UUID,
		&m.Email,
		&m.Name,
		&m.Note,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	m.Newsletters = []models.Newsletter{}
	return &m, nil
}

// CreateMember inserts a free member and subscribes it to newsletterIDs.
func (db *DB) CreateMember(ctx context.Context, create models.MemberCreate, newsletterIDs []string) (*models.Member, error) {
	ts := now()
	id := utils.NewObjectID()

	err := db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := db.exec(ctx, tx,
			`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, uuid.New().String(), strings.TrimSpace(create.Email), create.Name, create.Note,
			models.MemberStatusFree, ts, ts,
		)
		if err != nil {
			return errors.Wrap(err, "failed to create member")
		}

		for _, newsletterID := range newsletterIDs {
			_, err := db.exec(ctx, tx,
				`INSERT INTO members_newsletters (id, member_id, newsletter_id) VALUES (?, ?, ?)`,
				utils.NewObjectID(), id, newsletterID,
			)
			if err != nil {
				return errors.Wrap(err, "failed to subscribe member")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return db.GetMember(ctx, id)
}

// GetMember loads a member with its newsletters. Each newsletter carries the
// pivot row it was joined through.
func (db *DB) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member, err := scanMember(db.queryRow(ctx, db.sql,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "member %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get member")
	}

	if err := db.loadNewsletters(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetMemberByEmail loads a member by email address.
func (db *DB) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	var id string
	err := db.queryRow(ctx, db.sql,
		`SELECT id FROM members WHERE email = ?`, strings.TrimSpace(email)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "member %s", email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get member")
	}
	return db.GetMember(ctx, id)
}

// ListMembers returns one page of members, newest first, and the total count.
func (db *DB) ListMembers(ctx context.Context, limit, offset int) ([]models.Member, int, error) {
	var total int
	if err := db.queryRow(ctx, db.sql, `SELECT COUNT(*) FROM members`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count members")
	}

	rows, err := db.query(ctx, db.sql,
		`SELECT `+memberColumns+` FROM members ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list members")
	}

	members := []models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			rows.Close()
			return nil, 0, errors.Wrap(err, "failed to scan member")
		}
		members = append(members, *m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to list members")
	}

	// Newsletters are loaded after the cursor is closed; SQLite runs with a
	// single connection.
	for i := range members {
		if err := db.loadNewsletters(ctx, &members[i]); err != nil {
			return nil, 0, err
		}
	}

	return members, total, nil
}

// DeleteMember removes a member and its newsletter subscriptions.
func (db *DB) DeleteMember(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := db.exec(ctx, tx,
			`DELETE FROM members_newsletters WHERE member_id = ?`, id); err != nil {
			return errors.Wrap(err, "failed to delete member subscriptions")
		}

		result, err := db.exec(ctx, tx, `DELETE FROM members WHERE id = ?`, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete member")
		}
		n, err := result.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to delete member")
		}
		if n == 0 {
			return errors.Wrapf(ErrNotFound, "member %s", id)
		}
		return nil
	})
}

func (db *DB) loadNewsletters(ctx context.Context, member *models.Member) error {
	rows, err := db.query(ctx, db.sql,
		`SELECT n.id, n.uuid, n.name, n.slug, n.status, n.subscribe_on_signup, n.sort_order,
		        n.created_at, n.updated_at, mn.id, mn.member_id, mn.newsletter_id
		 FROM members_newsletters mn
		 JOIN newsletters n ON n.id = mn.newsletter_id
		 WHERE mn.member_id = ?
		 ORDER BY n.sort_order ASC, n.created_at ASC`,
		member.ID)
	if err != nil {
		return errors.Wrap(err, "failed to load member newsletters")
	}
	defer rows.Close()

	newsletters := []models.Newsletter{}
	for rows.Next() {
		var pivot models.MemberNewsletter
		n, err := scanNewsletter(rows, &pivot.ID, &pivot.MemberID, &pivot.NewsletterID)
		if err != nil {
			return errors.Wrap(err, "failed to scan member newsletter")
		}
		n.Pivot = &pivot
		newsletters = append(newsletters, *n)
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "failed to load member newsletters")
	}

	member.Newsletters = newsletters
	return nil
}
