package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
)

const userColumns = `id, email, role, api_key, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Role,
		&user.APIKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

// GetUserByAPIKey retrieves a user by their API key
func (db *DB) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	user, err := scanUser(db.queryRow(ctx, db.sql,
		`SELECT `+userColumns+` FROM users WHERE api_key = ?`, apiKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(ErrNotFound, "user")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(db.queryRow(ctx, db.sql,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(ErrNotFound, "user")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return user, nil
}

// CreateUser creates a new user
func (db *DB) CreateUser(ctx context.Context, email, apiKey, role string) (*models.User, error) {
	ts := now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Role:      role,
		APIKey:    apiKey,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := db.exec(ctx, db.sql,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Email, user.Role, user.APIKey, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}
