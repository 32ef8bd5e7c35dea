package cli

import (
	"context"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/cli/client"
)

// RegisterUser creates a new user account and saves the API key
func (a *App) RegisterUser(ctx context.Context, email string) error {
	apiClient, err := a.getClientForRegistration()
	if err != nil {
		return errors.Wrap(err, "failed to create API client")
	}

	user, err := apiClient.CreateUser(ctx, email)
	if err != nil {
		return err
	}

	a.cfg.CLI.APIKey = user.APIKey
	if err := a.save(a.cfg); err != nil {
		return errors.Wrap(err, "failed to save API key")
	}

	a.client = client.NewClient(a.cfg.CLI.BaseURL, user.APIKey, a.cfg.CLI.RequestTimeoutDuration())

	a.printf("✓ User registered successfully!\n")
	a.printf("  Email: %s\n", user.Email)
	a.printf("  User ID: %s\n", user.ID.String())
	a.printf("  Role: %s\n", user.Role)
	a.printf("  API key saved to config automatically\n")
	a.printf("\n⚠️  Save this API key securely (it won't be shown again):\n")
	a.printf("  %s\n", user.APIKey)

	return nil
}

// WhoAmI prints the user the configured API key belongs to.
func (a *App) WhoAmI(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	user, err := apiClient.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.printf("%s (%s)\n", user.Email, user.Role)
	return nil
}
