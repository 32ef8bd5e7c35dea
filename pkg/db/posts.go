package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

const postColumns = `id, uuid, title, slug, status, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID,
		&p.UUID,
		&p.Title,
		&p.Slug,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// CreatePost creates a post; status defaults to "draft".
func (db *DB) CreatePost(ctx context.Context, create models.PostCreate) (*models.Post, error) {
	ts := now()
	p := &models.Post{
		ID:        utils.NewObjectID(),
		UUID:      uuid.New(),
		Title:     create.Title,
		Slug:      create.Slug,
		Status:    create.Status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if p.Slug == "" {
		p.Slug = slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = "draft"
	}

	_, err := db.exec(ctx, db.sql,
		`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UUID.String(), p.Title, p.Slug, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create post")
	}

	return p, nil
}

// GetPost retrieves a post by id
func (db *DB) GetPost(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(db.queryRow(ctx, db.sql,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "post %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get post")
	}
	return p, nil
}

// ListPosts returns every post, newest first
func (db *DB) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := db.query(ctx, db.sql,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan post")
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

const linkColumns = `id, post_id, from_url, to_url, edited, clicks, created_at, updated_at`

func scanPostLink(row interface{ Scan(...any) error }) (*models.PostLink, error) {
	var l models.PostLink
	err := row.Scan(
		&l.Link.LinkID,
		&l.PostID,
		&l.Link.From,
		&l.Link.To,
		&l.Link.Edited,
		&l.Count.Clicks,
		&l.Link.CreatedAt,
		&l.Link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Link.CreatedAt = l.Link.CreatedAt.UTC()
	l.Link.UpdatedAt = l.Link.UpdatedAt.UTC()
	return &l, nil
}

// CreatePostLink starts tracking an outbound link on a post.
func (db *DB) CreatePostLink(ctx context.Context, postID string, create models.LinkCreate) (*models.PostLink, error) {
	ts := now()
	l := &models.PostLink{
		PostID: postID,
		Link: models.LinkRef{
			LinkID:    utils.NewObjectID(),
			From:      create.From,
			To:        create.To,
			CreatedAt: ts,
			UpdatedAt: ts,
		},
	}

	_, err := db.exec(ctx, db.sql,
		`INSERT INTO links (`+linkColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Link.LinkID, l.PostID, l.Link.From, l.Link.To, false, 0, ts, ts,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create link")
	}

	return l, nil
}

// GetPostLink retrieves a single link belonging to a post
func (db *DB) GetPostLink(ctx context.Context, postID, linkID string) (*models.PostLink, error) {
	l, err := scanPostLink(db.queryRow(ctx, db.sql,
		`SELECT `+linkColumns+` FROM links WHERE id = ? AND post_id = ?`, linkID, postID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "link %s", linkID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get link")
	}
	return l, nil
}

// ListPostLinks returns the links of a post in insertion order
func (db *DB) ListPostLinks(ctx context.Context, postID string) ([]models.PostLink, error) {
	rows, err := db.query(ctx, db.sql,
		`SELECT `+linkColumns+` FROM links WHERE post_id = ? ORDER BY created_at ASC, id ASC`, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list links")
	}
	defer rows.Close()

	links := []models.PostLink{}
	for rows.Next() {
		l, err := scanPostLink(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan link")
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list links")
	}

	return links, nil
}

// UpdatePostLink points a link at a new target and marks it edited.
func (db *DB) UpdatePostLink(ctx context.Context, postID, linkID, to string) (*models.PostLink, error) {
	result, err := db.exec(ctx, db.sql,
		`UPDATE links SET to_url = ?, edited = ?, updated_at = ? WHERE id = ? AND post_id = ?`,
		to, true, now(), linkID, postID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update link")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update link")
	}
	if n == 0 {
		return nil, errors.Wrapf(ErrNotFound, "link %s", linkID)
	}

	return db.GetPostLink(ctx, postID, linkID)
}
