package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
)

// MemberPage is one page of the members list.
type MemberPage struct {
	Members []models.Member `json:"members"`
	Meta    struct {
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Pages int `json:"pages"`
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

// ListMembers retrieves one page of members
func (c *Client) ListMembers(ctx context.Context, page, limit int) (*MemberPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/members"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result MemberPage
	if err := c.doGetRequest(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateMember creates a member
func (c *Client) CreateMember(ctx context.Context, member models.MemberCreate) (*models.Member, error) {
	var result struct {
		Members []models.Member `json:"members"`
	}
	payload := struct {
		Members []models.MemberCreate `json:"members"`
	}{Members: []models.MemberCreate{member}}

	if err := c.doJSONRequest(ctx, http.MethodPost, "/members", payload, &result); err != nil {
		return nil, err
	}
	if len(result.Members) == 0 {
		return nil, errors.New("empty members response")
	}
	return &result.Members[0], nil
}

// DeleteMember deletes a member by ID
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.doDeleteRequest(ctx, "/members/"+url.PathEscape(id))
}
