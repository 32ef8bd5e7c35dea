package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"newsletter-admin-go/pkg/cli/links"
	"newsletter-admin-go/pkg/models"
)

// ListWebhooks prints every webhook with its last delivery outcome.
func (a *App) ListWebhooks(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	hooks, err := apiClient.ListWebhooks(ctx)
	if err != nil {
		return err
	}
	if len(hooks) == 0 {
		a.printf("No webhooks found.\n")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tEvent\tTarget\tStatus\tLast triggered")
	fmt.Fprintln(w, "───\t───\t───\t───\t───")
	for _, h := range hooks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			h.ID,
			h.Event,
			links.TruncateURL(h.TargetURL, 50),
			h.Status,
			lastTriggered(h),
		)
	}
	w.Flush()

	a.printf("\nTotal: %d webhook(s)\n", len(hooks))
	return nil
}

// AddWebhook registers a webhook for event.
func (a *App) AddWebhook(ctx context.Context, hook models.WebhookCreate) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	created, err := apiClient.CreateWebhook(ctx, hook)
	if err != nil {
		return err
	}

	a.printf("✓ Webhook created successfully!\n\n")
	a.printf("  ID:     %s\n", created.ID)
	a.printf("  Event:  %s\n", created.Event)
	a.printf("  Target: %s\n", created.TargetURL)
	return nil
}

// DeleteWebhook removes a webhook by ID.
func (a *App) DeleteWebhook(ctx context.Context, id string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	if err := apiClient.DeleteWebhook(ctx, id); err != nil {
		return err
	}
	a.printf("✓ Webhook %s deleted\n", id)
	return nil
}

func lastTriggered(h models.Webhook) string {
	if h.LastTriggeredAt == nil {
		return "never"
	}
	s := links.FormatDate(*h.LastTriggeredAt)
	if h.LastTriggeredStatus != nil {
		s += " (" + *h.LastTriggeredStatus + ")"
	}
	return s
}
