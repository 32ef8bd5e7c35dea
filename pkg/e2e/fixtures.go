package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

// Fixture values seeded by the "integrations" set.
const (
	OwnerEmail        = "owner@example.com"
	DefaultNewsletter = "Default Newsletter"
)

// FixtureManager seeds data straight through the app's services and store.
type FixtureManager struct {
	t     testing.TB
	agent *AdminAPIAgent

	Owner         *models.User
	Newsletter    *models.Newsletter
	Post          *models.Post
	Links         []models.PostLink
	IntegrationID string
}

func NewFixtureManager(t testing.TB, agent *AdminAPIAgent) *FixtureManager {
	return &FixtureManager{t: t, agent: agent}
}

// Init seeds the named fixture sets.
func (f *FixtureManager) Init(sets ...string) *FixtureManager {
	f.t.Helper()
	for _, set := range sets {
		switch set {
		case "integrations":
			f.seedIntegrations(context.Background())
		default:
			f.t.Fatalf("unknown fixture set %q", set)
		}
	}
	return f
}

// seedIntegrations creates the owner, the default newsletter, a published
// post with two links and an integration id for webhooks to hang off.
func (f *FixtureManager) seedIntegrations(ctx context.Context) {
	srv := f.agent.Server()

	owner, err := srv.Services.Users.Register(ctx, OwnerEmail, models.RoleOwner)
	require.NoError(f.t, err)
	f.Owner = owner

	newsletter, err := srv.DB.CreateNewsletter(ctx, models.NewsletterCreate{
		Name:              DefaultNewsletter,
		SubscribeOnSignup: true,
	})
	require.NoError(f.t, err)
	f.Newsletter = newsletter

	post, err := srv.DB.CreatePost(ctx, models.PostCreate{Title: "Welcome to the newsletter", Status: "published"})
	require.NoError(f.t, err)
	f.Post = post

	for _, from := range []string{"https://example.com/welcome", "https://example.com/pricing"} {
		link, err := srv.Services.Links.CreatePostLink(ctx, post.ID, models.LinkCreate{From: from})
		require.NoError(f.t, err)
		f.Links = append(f.Links, *link)
	}

	f.IntegrationID = utils.NewObjectID()
}

// WebhookFixture describes a webhook to insert.
type WebhookFixture struct {
	Event string
	URL   string
}

// InsertWebhook registers a webhook owned by the seeded integration.
func (f *FixtureManager) InsertWebhook(w WebhookFixture) *models.Webhook {
	f.t.Helper()
	hook, err := f.agent.Server().DB.CreateWebhook(context.Background(), models.WebhookCreate{
		Event:         w.Event,
		TargetURL:     w.URL,
		Name:          "Test webhook",
		IntegrationID: f.IntegrationID,
	})
	require.NoError(f.t, err)
	return hook
}
