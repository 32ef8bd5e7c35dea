package services

import (
	"context"
	"fmt"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

// WebhookService manages webhook subscriptions
type WebhookService struct {
	store db.Store
}

// NewWebhookService creates a new webhook service
func NewWebhookService(store db.Store) *WebhookService {
	return &WebhookService{store: store}
}

// Create registers a webhook for a known event
func (s *WebhookService) Create(ctx context.Context, create models.WebhookCreate) (*models.Webhook, error) {
	if !models.IsKnownEvent(create.Event) {
		return nil, invalid(fmt.Sprintf("Unknown webhook event %q", create.Event), nil)
	}

	target, err := utils.ValidateURL(create.TargetURL)
	if err != nil {
		return nil, invalid("Invalid webhook target URL", err)
	}
	create.TargetURL = target

	return s.store.CreateWebhook(ctx, create)
}

// List returns every webhook
func (s *WebhookService) List(ctx context.Context) ([]models.Webhook, error) {
	return s.store.ListWebhooks(ctx)
}

// Delete removes a webhook
func (s *WebhookService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteWebhook(ctx, id)
}
