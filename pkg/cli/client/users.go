package client

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
)

// CreateUser creates a new user and returns the user with API key
func (c *Client) CreateUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	payload := models.UserCreate{Email: email}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/users", payload, &user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	return &user, nil
}

// CurrentUser returns the user owning the API key
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doGetRequest(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
