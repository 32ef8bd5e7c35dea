package db

import (
	"context"

	"newsletter-admin-go/pkg/models"
)

// Store is the persistence surface the services depend on.
type Store interface {
	CreateUser(ctx context.Context, email, apiKey, role string) (*models.User, error)
	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateMember(ctx context.Context, member models.MemberCreate, newsletterIDs []string) (*models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	ListMembers(ctx context.Context, limit, offset int) ([]models.Member, int, error)
	DeleteMember(ctx context.Context, id string) error

	CreateNewsletter(ctx context.Context, newsletter models.NewsletterCreate) (*models.Newsletter, error)
	ListNewsletters(ctx context.Context) ([]models.Newsletter, error)

	CreatePost(ctx context.Context, post models.PostCreate) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)

	CreatePostLink(ctx context.Context, postID string, link models.LinkCreate) (*models.PostLink, error)
	GetPostLink(ctx context.Context, postID, linkID string) (*models.PostLink, error)
	ListPostLinks(ctx context.Context, postID string) ([]models.PostLink, error)
	UpdatePostLink(ctx context.Context, postID, linkID, to string) (*models.PostLink, error)

	CreateWebhook(ctx context.Context, webhook models.WebhookCreate) (*models.Webhook, error)
	GetWebhook(ctx context.Context, id string) (*models.Webhook, error)
	ListWebhooks(ctx context.Context) ([]models.Webhook, error)
	ListWebhooksByEvent(ctx context.Context, event string) ([]models.Webhook, error)
	DeleteWebhook(ctx context.Context, id string) error
	RecordWebhookTrigger(ctx context.Context, id string, trigger models.WebhookTrigger) error
}

var _ Store = (*DB)(nil)
