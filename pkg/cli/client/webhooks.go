package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
)

// ListWebhooks retrieves every webhook
func (c *Client) ListWebhooks(ctx context.Context) ([]models.Webhook, error) {
	var result struct {
		Webhooks []models.Webhook `json:"webhooks"`
	}
	if err := c.doGetRequest(ctx, "/webhooks", &result); err != nil {
		return nil, err
	}
	return result.Webhooks, nil
}

// CreateWebhook registers a webhook
func (c *Client) CreateWebhook(ctx context.Context, hook models.WebhookCreate) (*models.Webhook, error) {
	var result struct {
		Webhooks []models.Webhook `json:"webhooks"`
	}
	payload := struct {
		Webhooks []models.WebhookCreate `json:"webhooks"`
	}{Webhooks: []models.WebhookCreate{hook}}

	if err := c.doJSONRequest(ctx, http.MethodPost, "/webhooks", payload, &result); err != nil {
		return nil, err
	}
	if len(result.Webhooks) == 0 {
		return nil, errors.New("empty webhooks response")
	}
	return &result.Webhooks[0], nil
}

// DeleteWebhook removes a webhook by ID
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.doDeleteRequest(ctx, "/webhooks/"+url.PathEscape(id))
}
