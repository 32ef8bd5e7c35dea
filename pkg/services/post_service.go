package services

import (
	"context"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/models"
)

// PostService exposes posts and newsletters, which the admin only reads
type PostService struct {
	store db.Store
}

// NewPostService creates a new post service
func NewPostService(store db.Store) *PostService {
	return &PostService{store: store}
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.store.ListPosts(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.store.GetPost(ctx, id)
}

func (s *PostService) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	return s.store.ListNewsletters(ctx)
}
