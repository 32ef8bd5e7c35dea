package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

// UserService registers admin users and resolves API keys
type UserService struct {
	store db.Store
}

// NewUserService creates a new user service
func NewUserService(store db.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a user with a fresh API key. An empty role registers an
// administrator.
func (s *UserService) Register(ctx context.Context, email, role string) (*models.User, error) {
	email, err := utils.ValidateEmail(email)
	if err != nil {
		return nil, invalid("Invalid user email", err)
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, invalid("User already exists", nil)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	apiKey, err := GenerateAPIKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate API key")
	}
	if role == "" {
		role = models.RoleAdmin
	}

	return s.store.CreateUser(ctx, email, apiKey, role)
}

// Authenticate resolves an API key to its user
func (s *UserService) Authenticate(ctx context.Context, apiKey string) (*models.User, error) {
	return s.store.GetUserByAPIKey(ctx, apiKey)
}

// GenerateAPIKey generates a random 32-byte hex string
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
