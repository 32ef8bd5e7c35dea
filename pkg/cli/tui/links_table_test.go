package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/cli/client"
	"newsletter-admin-go/pkg/models"
)

type fakeAPI struct {
	mu        sync.Mutex
	links     []models.PostLink
	members   []models.Member
	updateErr error
	updates   []string
	deleted   []string
}

func newFakeAPI(n int) *fakeAPI {
	f := &fakeAPI{}
	for i := 0; i < n; i++ {
		f.links = append(f.links, models.PostLink{
			PostID: "post-1",
			Link: models.LinkRef{
				LinkID: fmt.Sprintf("link-%d", i),
				From:   fmt.Sprintf("https://example.com/%d", i),
				To:     fmt.Sprintf("https://example.com/%d", i),
			},
		})
	}
	return f
}

func (f *fakeAPI) ListPosts(context.Context) ([]models.Post, error) {
	return []models.Post{{ID: "post-1", Title: "Weekly digest", Status: "published"}}, nil
}

func (f *fakeAPI) ListPostLinks(context.Context, string) ([]models.PostLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PostLink(nil), f.links...), nil
}

func (f *fakeAPI) UpdatePostLink(_ context.Context, postID, linkID, to string) (*models.PostLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, linkID+"="+to)
	for i := range f.links {
		if f.links[i].Link.LinkID == linkID {
			f.links[i].Link.To = to
			f.links[i].Link.Edited = true
			return &f.links[i], nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "link not found"}
}

func (f *fakeAPI) ListMembers(context.Context, int, int) (*client.MemberPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page := &client.MemberPage{Members: append([]models.Member(nil), f.members...)}
	page.Meta.Pagination.Total = len(f.members)
	return page, nil
}

func (f *fakeAPI) CreateMember(_ context.Context, in models.MemberCreate) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := models.Member{ID: fmt.Sprintf("m%d", len(f.members)+1), Email: in.Email, Name: in.Name, Note: in.Note, Status: models.MemberStatusFree}
	f.members = append(f.members, m)
	return &m, nil
}

func (f *fakeAPI) DeleteMember(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.members {
		if m.ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return &client.APIError{StatusCode: http.StatusNotFound, Message: "member not found"}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func loadedLinksModel(t *testing.T, api *fakeAPI) *postLinksModel {
	t.Helper()
	m := newPostLinksModel(context.Background(), api, "post-1", "Weekly digest", false)
	run(t, m, m.Init())
	require.True(t, m.ready)
	return m
}

func TestPostLinks_LoadAndPage(t *testing.T) {
	m := loadedLinksModel(t, newFakeAPI(12))

	assert.Equal(t, 3, m.paginator.TotalPages())
	assert.Contains(t, m.View(), "Showing 1-5 of 12 link(s)")
	assert.Contains(t, m.View(), "page 1 of 3")

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(keyRunes("l"))
	assert.Equal(t, 3, m.paginator.Page())
	assert.Contains(t, m.View(), "Showing 11-12 of 12 link(s)")

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.paginator.Page(), "next is a no-op on the last page")

	m.Update(keyRunes("h"))
	assert.Equal(t, 2, m.paginator.Page())
}

func TestPostLinks_SinglePageHidesPager(t *testing.T) {
	m := loadedLinksModel(t, newFakeAPI(3))
	assert.NotContains(t, m.View(), "page 1 of 1")
}

func TestPostLinks_EmptyPost(t *testing.T) {
	m := loadedLinksModel(t, newFakeAPI(0))
	assert.Contains(t, m.View(), "This post has no links.")

	_, cmd := m.Update(keyRunes("e"))
	assert.Nil(t, cmd)
	assert.False(t, m.CapturingInput())
}

func TestPostLinks_EditAndSave(t *testing.T) {
	api := newFakeAPI(7)
	m := loadedLinksModel(t, api)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(keyRunes("e"))
	require.True(t, m.CapturingInput())
	assert.Equal(t, "link-1", m.paginator.EditingLinkID())
	assert.Equal(t, "https://example.com/1", m.input.Value())

	m.input.SetValue("https://example.org/new")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.saving)

	_, cmd = m.Update(cmd())
	assert.False(t, m.saving)
	assert.False(t, m.CapturingInput())
	assert.Equal(t, []string{"link-1=https://example.org/new"}, api.updates)

	// The reload picks up the persisted target.
	run(t, m, cmd)
	assert.Equal(t, "https://example.org/new", m.paginator.Links()[1].Link.To)
	assert.Contains(t, m.View(), "Link saved.")
	assert.Contains(t, m.View(), "(edited)")
}

func TestPostLinks_InvalidURLKeepsEditorOpen(t *testing.T) {
	api := newFakeAPI(2)
	m := loadedLinksModel(t, api)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("not a url")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())

	assert.True(t, m.CapturingInput())
	assert.Equal(t, "link-0", m.paginator.ErrorLinkID())
	assert.Empty(t, api.updates)
	assert.Contains(t, m.View(), "enter an absolute URL")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.CapturingInput())
	assert.Empty(t, m.paginator.ErrorLinkID())
	assert.NotContains(t, m.View(), "enter an absolute URL")
}

func TestPostLinks_UpdateFailureIsSeparateFromValidation(t *testing.T) {
	api := newFakeAPI(2)
	api.updateErr = errors.New("connection refused")
	m := loadedLinksModel(t, api)

	m.Update(keyRunes("e"))
	m.input.SetValue("https://example.org/x")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())

	assert.True(t, m.CapturingInput())
	assert.Equal(t, "link-0", m.paginator.UpdateErrorLinkID())
	assert.Empty(t, m.paginator.ErrorLinkID())
	assert.Contains(t, m.View(), "connection refused")

	// Retrying after the API recovers succeeds.
	api.mu.Lock()
	api.updateErr = nil
	api.mu.Unlock()
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	assert.False(t, m.CapturingInput())
	assert.Len(t, api.updates, 1)
}

func TestPostLinks_UnchangedURLSkipsUpdate(t *testing.T) {
	api := newFakeAPI(1)
	m := loadedLinksModel(t, api)

	m.Update(keyRunes("e"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())

	assert.False(t, m.CapturingInput())
	assert.Empty(t, api.updates)
}

func TestPostLinks_TypingWhileEditingDoesNotPage(t *testing.T) {
	m := loadedLinksModel(t, newFakeAPI(12))

	m.Update(keyRunes("e"))
	m.input.SetValue("")
	m.Update(keyRunes("l"))

	assert.Equal(t, 1, m.paginator.Page())
	assert.Equal(t, "l", m.input.Value())
}

func TestViewportWrapper_LeavesKeysToCapturingModel(t *testing.T) {
	m := newPostLinksModel(context.Background(), newFakeAPI(3), "post-1", "", true)
	w := wrapPostLinks(m)
	run(t, w, w.Init())

	w.Update(keyRunes("e"))
	require.True(t, m.CapturingInput())

	m.input.SetValue("")
	w.Update(keyRunes("q"))
	assert.Equal(t, "q", m.input.Value(), "q is typed, not quit")

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.CapturingInput())

	_, cmd := w.Update(keyRunes("m"))
	require.NotNil(t, cmd)
	assert.Equal(t, MenuNavigationMsg{}, cmd())
}
