package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/config"
	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/server"
)

type testApp struct {
	*App
	out   *bytes.Buffer
	srv   *server.Server
	saved int
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewMemory(context.Background())
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	srv := server.NewWithDB(database, cfg, nil)
	t.Cleanup(func() { _ = srv.Close(context.Background()) })

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	cfg.CLI.BaseURL = ts.URL
	ta := &testApp{App: NewApp(cfg), out: &bytes.Buffer{}, srv: srv}
	ta.SetOutput(ta.out)
	ta.save = func(*config.Config) error {
		ta.saved++
		return nil
	}
	return ta
}

func TestApp_RequiresAPIKey(t *testing.T) {
	app := newTestApp(t)
	err := app.ListMembers(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestApp_RegisterThenManageMembers(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	require.NoError(t, app.RegisterUser(ctx, "admin@example.com"))
	assert.Equal(t, 1, app.saved)
	assert.NotEmpty(t, app.cfg.CLI.APIKey)
	assert.Contains(t, app.out.String(), "User registered successfully")

	app.out.Reset()
	require.NoError(t, app.AddMember(ctx, "reader@example.com", "Reader", ""))
	assert.Contains(t, app.out.String(), "reader@example.com")

	app.out.Reset()
	require.NoError(t, app.ListMembers(ctx, 1, 10))
	assert.Contains(t, app.out.String(), "reader@example.com")
	assert.Contains(t, app.out.String(), "1 member(s) total")

	member, err := app.srv.DB.GetMemberByEmail(ctx, "reader@example.com")
	require.NoError(t, err)

	app.out.Reset()
	require.NoError(t, app.DeleteMember(ctx, member.ID))
	assert.Contains(t, app.out.String(), "deleted")

	app.out.Reset()
	require.NoError(t, app.ListMembers(ctx, 1, 10))
	assert.Contains(t, app.out.String(), "No members found.")
}

func TestApp_PostLinks(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	require.NoError(t, app.RegisterUser(ctx, "admin@example.com"))

	post, err := app.srv.DB.CreatePost(ctx, models.PostCreate{Title: "Launch"})
	require.NoError(t, err)
	link, err := app.srv.Services.Links.CreatePostLink(ctx, post.ID, models.LinkCreate{From: "https://example.com/a", To: "https://example.com/a"})
	require.NoError(t, err)

	app.out.Reset()
	require.NoError(t, app.ListPosts(ctx))
	assert.Contains(t, app.out.String(), "Launch")

	app.out.Reset()
	require.NoError(t, app.UpdatePostLink(ctx, post.ID, link.Link.LinkID, "https://example.com/b"))
	assert.Contains(t, app.out.String(), "Link updated successfully")

	app.out.Reset()
	require.NoError(t, app.ListPostLinks(ctx, post.ID))
	assert.Contains(t, app.out.String(), "https://example.com/b")
	assert.Contains(t, app.out.String(), "Total: 1 link(s)")
}

func TestApp_Webhooks(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	require.NoError(t, app.RegisterUser(ctx, "admin@example.com"))

	app.out.Reset()
	require.NoError(t, app.AddWebhook(ctx, models.WebhookCreate{Event: models.EventMemberAdded, TargetURL: "https://hooks.example.com/added"}))
	assert.Contains(t, app.out.String(), "Webhook created successfully")

	app.out.Reset()
	require.NoError(t, app.ListWebhooks(ctx))
	assert.Contains(t, app.out.String(), models.EventMemberAdded)
	assert.Contains(t, app.out.String(), "never")
}

func TestApp_SetConfig(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.SetConfig("cli.request_timeout=5"))
	assert.Equal(t, 5, app.cfg.CLI.RequestTimeout)
	assert.Equal(t, 1, app.saved)

	require.NoError(t, app.SetConfig("api.host=127.0.0.1"))
	assert.Equal(t, "127.0.0.1", app.cfg.API.Host)

	assert.Error(t, app.SetConfig("cli.request_timeout"))
	assert.Error(t, app.SetConfig("nope.key=1"))
	assert.Error(t, app.SetConfig("cli.request_timeout=soon"))
	assert.Equal(t, 2, app.saved)

	app.out.Reset()
	require.NoError(t, app.ShowConfig())
	assert.Contains(t, app.out.String(), "request_timeout = 5")
}
