package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
)

// ListPosts retrieves every post
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var result struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.doGetRequest(ctx, "/posts", &result); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

// ListPostLinks retrieves the links of a post
func (c *Client) ListPostLinks(ctx context.Context, postID string) ([]models.PostLink, error) {
	var result struct {
		Links []models.PostLink `json:"links"`
	}
	if err := c.doGetRequest(ctx, "/posts/"+url.PathEscape(postID)+"/links", &result); err != nil {
		return nil, err
	}
	return result.Links, nil
}

// UpdatePostLink points a post link at a new URL
func (c *Client) UpdatePostLink(ctx context.Context, postID, linkID, to string) (*models.PostLink, error) {
	var result struct {
		Links []models.PostLink `json:"links"`
	}
	payload := struct {
		Link models.LinkUpdate `json:"link"`
	}{Link: models.LinkUpdate{To: to}}

	path := "/posts/" + url.PathEscape(postID) + "/links/" + url.PathEscape(linkID)
	if err := c.doJSONRequest(ctx, http.MethodPut, path, payload, &result); err != nil {
		return nil, err
	}
	if len(result.Links) == 0 {
		return nil, errors.New("empty links response")
	}
	return &result.Links[0], nil
}
