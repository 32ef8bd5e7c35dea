package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/config"
	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/server"
)

func newTestServer(t *testing.T) (*server.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewMemory(context.Background())
	require.NoError(t, err)
	srv := server.NewWithDB(database, config.DefaultConfig(), nil)
	t.Cleanup(func() { _ = srv.Close(context.Background()) })

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

func TestClient_RegisterAndMembers(t *testing.T) {
	ctx := context.Background()
	_, baseURL := newTestServer(t)

	user, err := NewClient(baseURL, "", time.Second).CreateUser(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.APIKey)

	c := NewClient(baseURL+"/", user.APIKey, time.Second)

	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", me.Email)

	member, err := c.CreateMember(ctx, models.MemberCreate{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	page, err := c.ListMembers(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Members, 1)
	assert.Equal(t, member.ID, page.Members[0].ID)
	assert.Equal(t, 1, page.Meta.Pagination.Total)

	require.NoError(t, c.DeleteMember(ctx, member.ID))

	err = c.DeleteMember(ctx, member.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NotFoundError", apiErr.Type)
}

func TestClient_PostLinksAndWebhooks(t *testing.T) {
	ctx := context.Background()
	srv, baseURL := newTestServer(t)

	owner, err := srv.Services.Users.Register(ctx, "owner@example.com", models.RoleOwner)
	require.NoError(t, err)
	post, err := srv.DB.CreatePost(ctx, models.PostCreate{Title: "Launch"})
	require.NoError(t, err)
	link, err := srv.Services.Links.CreatePostLink(ctx, post.ID, models.LinkCreate{From: "https://example.com/a"})
	require.NoError(t, err)

	c := NewClient(baseURL, owner.APIKey, time.Second)

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	links, err := c.ListPostLinks(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)

	updated, err := c.UpdatePostLink(ctx, post.ID, link.Link.LinkID, "https://example.com/b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b", updated.Link.To)

	_, err = c.UpdatePostLink(ctx, post.ID, link.Link.LinkID, "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)

	hook, err := c.CreateWebhook(ctx, models.WebhookCreate{Event: models.EventMemberDeleted, TargetURL: "https://hooks.example/d"})
	require.NoError(t, err)
	hooks, err := c.ListWebhooks(ctx)
	require.NoError(t, err)
	assert.Len(t, hooks, 1)
	require.NoError(t, c.DeleteWebhook(ctx, hook.ID))
}

func TestClient_Unauthorized(t *testing.T) {
	_, baseURL := newTestServer(t)

	_, err := NewClient(baseURL, "bad-key", time.Second).ListPosts(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
