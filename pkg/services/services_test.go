package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/events"
	"newsletter-admin-go/pkg/linktable"
	"newsletter-admin-go/pkg/models"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func newTestStore(t *testing.T) *db.DB {
	t.Helper()
	store, err := db.NewMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMemberService_CreateSubscribesAndEmits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	rec := &recorder{}
	svc := NewMemberService(store, rec)

	signup, err := store.CreateNewsletter(ctx, models.NewsletterCreate{Name: "Default", SubscribeOnSignup: true})
	require.NoError(t, err)
	_, err = store.CreateNewsletter(ctx, models.NewsletterCreate{Name: "Opt-in only"})
	require.NoError(t, err)

	member, err := svc.Create(ctx, models.MemberCreate{Name: "Test Member", Email: "test@example.com", Note: "note"})
	require.NoError(t, err)

	require.Len(t, member.Newsletters, 1)
	assert.Equal(t, signup.ID, member.Newsletters[0].ID)

	require.Len(t, rec.events, 1)
	e := rec.events[0]
	assert.Equal(t, models.EventMemberAdded, e.Name)
	assert.Equal(t, MemberModel, e.Model)
	assert.Nil(t, e.Previous)
	assert.Equal(t, member.ID, e.Current.(*models.Member).ID)
}

func TestMemberService_CreateRejectsInvalidAndDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	rec := &recorder{}
	svc := NewMemberService(store, rec)

	_, err := svc.Create(ctx, models.MemberCreate{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, models.MemberCreate{Email: "dup@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.MemberCreate{Email: "dup@example.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Member already exists", verr.Message)

	assert.Len(t, rec.events, 1)
}

func TestMemberService_DeleteEmitsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	rec := &recorder{}
	svc := NewMemberService(store, rec)

	_, err := store.CreateNewsletter(ctx, models.NewsletterCreate{Name: "Default", SubscribeOnSignup: true})
	require.NoError(t, err)
	member, err := svc.Create(ctx, models.MemberCreate{Email: "gone@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, member.ID))

	require.Len(t, rec.events, 2)
	e := rec.events[1]
	assert.Equal(t, models.EventMemberDeleted, e.Name)
	assert.Nil(t, e.Current)

	previous := e.Previous.(*models.Member)
	require.Len(t, previous.Newsletters, 1)
	require.NotNil(t, previous.Newsletters[0].Pivot)
	assert.Equal(t, member.ID, previous.Newsletters[0].Pivot.MemberID)

	_, err = svc.Get(ctx, member.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, member.ID), db.ErrNotFound)
	assert.Len(t, rec.events, 2)
}

func TestLinkService_UpdatePostLink(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewLinkService(store)

	post, err := store.CreatePost(ctx, models.PostCreate{Title: "Launch"})
	require.NoError(t, err)
	link, err := svc.CreatePostLink(ctx, post.ID, models.LinkCreate{From: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", link.Link.To)

	_, err = svc.UpdatePostLink(ctx, post.ID, link.Link.LinkID, "example.com")
	assert.ErrorIs(t, err, ErrValidation)
	var invalidURL *linktable.InvalidURLError
	assert.ErrorAs(t, err, &invalidURL)

	same, err := svc.UpdatePostLink(ctx, post.ID, link.Link.LinkID, "HTTPS://EXAMPLE.COM")
	require.NoError(t, err)
	assert.False(t, same.Link.Edited)

	updated, err := svc.UpdatePostLink(ctx, post.ID, link.Link.LinkID, "https://example.com/pricing")
	require.NoError(t, err)
	assert.True(t, updated.Link.Edited)
	assert.Equal(t, "https://example.com/pricing", updated.Link.To)

	_, err = svc.ListPostLinks(ctx, "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestWebhookService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewWebhookService(newTestStore(t))

	_, err := svc.Create(ctx, models.WebhookCreate{Event: "member.exploded", TargetURL: "https://hooks.example/"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, models.WebhookCreate{Event: models.EventMemberAdded, TargetURL: "ftp://hooks.example/"})
	assert.ErrorIs(t, err, ErrValidation)

	hook, err := svc.Create(ctx, models.WebhookCreate{Event: models.EventMemberAdded, TargetURL: " https://hooks.example/added "})
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example/added", hook.TargetURL)

	hooks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, hooks, 1)

	require.NoError(t, svc.Delete(ctx, hook.ID))
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestStore(t))

	user, err := svc.Register(ctx, "admin@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Len(t, user.APIKey, 64)

	got, err := svc.Authenticate(ctx, user.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Register(ctx, "admin@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}
