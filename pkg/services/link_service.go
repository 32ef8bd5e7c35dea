package services

import (
	"context"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/linktable"
	"newsletter-admin-go/pkg/models"
)

// LinkService handles business logic for post link operations
type LinkService struct {
	store db.Store
}

// NewLinkService creates a new link service
func NewLinkService(store db.Store) *LinkService {
	return &LinkService{store: store}
}

// ListPostLinks retrieves the links of a post
func (s *LinkService) ListPostLinks(ctx context.Context, postID string) ([]models.PostLink, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.store.ListPostLinks(ctx, postID)
}

// UpdatePostLink points a link at a new target. The target is normalized
// first; an unchanged target leaves the link untouched.
func (s *LinkService) UpdatePostLink(ctx context.Context, postID, linkID, rawURL string) (*models.PostLink, error) {
	to, err := linktable.NormalizeURL(rawURL)
	if err != nil {
		return nil, invalid("Invalid link URL", err)
	}

	current, err := s.store.GetPostLink(ctx, postID, linkID)
	if err != nil {
		return nil, err
	}
	if current.Link.To == to {
		return current, nil
	}

	return s.store.UpdatePostLink(ctx, postID, linkID, to)
}

// CreatePostLink starts tracking an outbound link on a post
func (s *LinkService) CreatePostLink(ctx context.Context, postID string, create models.LinkCreate) (*models.PostLink, error) {
	from, err := linktable.NormalizeURL(create.From)
	if err != nil {
		return nil, invalid("Invalid link URL", err)
	}
	to := from
	if create.To != "" {
		if to, err = linktable.NormalizeURL(create.To); err != nil {
			return nil, invalid("Invalid link URL", err)
		}
	}

	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.store.CreatePostLink(ctx, postID, models.LinkCreate{From: from, To: to})
}
