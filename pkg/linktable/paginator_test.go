package linktable

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/models"
)

func makeLinks(n int) []models.PostLink {
	links := make([]models.PostLink, n)
	for i := range links {
		links[i] = models.PostLink{
			PostID: "post",
			Link: models.LinkRef{
				LinkID: fmt.Sprintf("link-%d", i),
				From:   fmt.Sprintf("https://example.com/%d", i),
				To:     fmt.Sprintf("https://example.com/%d", i),
			},
		}
	}
	return links
}

func TestPaginator_PagingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("total pages is ceil(len/5)", prop.ForAll(
		func(n int) bool {
			p := New(makeLinks(n))
			want := n / PageSize
			if n%PageSize != 0 {
				want++
			}
			return p.TotalPages() == want
		},
		gen.IntRange(0, 60),
	))

	properties.Property("pages concatenate back to the original list", prop.ForAll(
		func(n int) bool {
			links := makeLinks(n)
			p := New(links)

			var got []models.PostLink
			for page := 1; page <= p.TotalPages(); page++ {
				p.SetPage(page)
				got = append(got, p.VisibleLinks()...)
			}
			if len(got) != len(links) {
				return false
			}
			for i := range links {
				if got[i].Link.LinkID != links[i].Link.LinkID {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 60),
	))

	properties.Property("navigation never leaves [1, total]", prop.ForAll(
		func(n int, moves []bool) bool {
			p := New(makeLinks(n))
			for _, forward := range moves {
				if forward {
					p.NextPage()
				} else {
					p.PreviousPage()
				}
				page := p.Page()
				if page < 1 {
					return false
				}
				if p.TotalPages() >= 1 && page > p.TotalPages() {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestPaginator_Boundaries(t *testing.T) {
	p := New(makeLinks(12))

	assert.Equal(t, 3, p.TotalPages())
	assert.True(t, p.ShowPagination())
	assert.True(t, p.DisablePreviousPage())
	assert.False(t, p.DisableNextPage())

	p.PreviousPage()
	assert.Equal(t, 1, p.Page())

	p.NextPage()
	p.NextPage()
	assert.Equal(t, 3, p.Page())
	assert.True(t, p.DisableNextPage())
	assert.Equal(t, 11, p.StartOffset())
	assert.Equal(t, 12, p.EndOffset())
	assert.Len(t, p.VisibleLinks(), 2)

	p.NextPage()
	assert.Equal(t, 3, p.Page())

	p.SetPage(99)
	assert.Equal(t, 3, p.Page())
	p.SetPage(-4)
	assert.Equal(t, 1, p.Page())
}

func TestPaginator_EmptyList(t *testing.T) {
	p := New(nil)

	assert.Equal(t, 0, p.TotalPages())
	assert.Equal(t, 1, p.Page())
	assert.False(t, p.ShowPagination())
	assert.True(t, p.DisablePreviousPage())
	assert.True(t, p.DisableNextPage())
	assert.Empty(t, p.VisibleLinks())

	p.NextPage()
	assert.Equal(t, 1, p.Page())
}

func TestPaginator_SetLinksReclampsPage(t *testing.T) {
	p := New(makeLinks(20))
	p.SetPage(4)
	require.Equal(t, 4, p.Page())

	p.SetLinks(makeLinks(7))
	assert.Equal(t, 2, p.Page())

	p.SetLinks(nil)
	assert.Equal(t, 1, p.Page())
}

func TestPaginator_SinglePageHidesPagination(t *testing.T) {
	p := New(makeLinks(5))
	assert.Equal(t, 1, p.TotalPages())
	assert.False(t, p.ShowPagination())
	assert.True(t, p.DisableNextPage())
}

func TestPaginator_CommitEditInvalidURL(t *testing.T) {
	links := makeLinks(3)
	calls := 0
	p := New(links, WithUpdateLink(func(string, string) { calls++ }))

	p.BeginEdit("link-1")
	err := p.CommitEdit("not a url")

	var invalid *InvalidURLError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "link-1", p.ErrorLinkID())
	assert.Equal(t, "link-1", p.EditingLinkID())
	assert.Equal(t, 0, calls)
	assert.Equal(t, "https://example.com/1", links[1].Link.To)

	// The user can retry after a failed validation.
	require.NoError(t, p.CommitEdit("https://example.org/new"))
	assert.Equal(t, 1, calls)
	assert.Empty(t, p.EditingLinkID())
	assert.Empty(t, p.ErrorLinkID())
}

func TestPaginator_CommitEditUnchangedSkipsUpdate(t *testing.T) {
	calls := 0
	p := New(makeLinks(2), WithUpdateLink(func(string, string) { calls++ }))

	p.BeginEdit("link-0")
	require.NoError(t, p.CommitEdit("  https://example.com/0  "))

	assert.Equal(t, 0, calls)
	assert.Empty(t, p.EditingLinkID())
}

func TestPaginator_CommitEditNormalizesBeforeDiffing(t *testing.T) {
	links := makeLinks(1)
	links[0].Link.To = "https://example.com/"

	var gotID, gotURL string
	p := New(links, WithUpdateLink(func(id, u string) { gotID, gotURL = id, u }))

	p.BeginEdit("link-0")
	require.NoError(t, p.CommitEdit("HTTPS://Example.com"))
	assert.Empty(t, gotID, "normalized URL equals the current target")

	p.BeginEdit("link-0")
	require.NoError(t, p.CommitEdit("https://example.com/pricing?ref=newsletter"))
	assert.Equal(t, "link-0", gotID)
	assert.Equal(t, "https://example.com/pricing?ref=newsletter", gotURL)
}

func TestPaginator_CommitEditCallbackCanUpdateLinks(t *testing.T) {
	var p *Paginator
	p = New(makeLinks(3), WithUpdateLink(func(id, u string) {
		updated := append([]models.PostLink(nil), p.Links()...)
		for i := range updated {
			if updated[i].Link.LinkID == id {
				updated[i].Link.To = u
				updated[i].Link.Edited = true
			}
		}
		p.SetLinks(updated)
	}))

	p.BeginEdit("link-1")
	done := make(chan error, 1)
	go func() { done <- p.CommitEdit("https://example.org/moved") }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("CommitEdit did not return while its callback used the paginator")
	}

	assert.Empty(t, p.EditingLinkID())
	assert.Equal(t, "https://example.org/moved", p.Links()[1].Link.To)
	assert.True(t, p.Links()[1].Link.Edited)
}

func TestPaginator_CommitEditWithoutEditor(t *testing.T) {
	p := New(makeLinks(2))
	assert.ErrorIs(t, p.CommitEdit("https://example.com"), ErrNotEditing)
}

func TestPaginator_CommitEditUnknownLink(t *testing.T) {
	p := New(makeLinks(2))
	p.BeginEdit("gone")
	assert.ErrorIs(t, p.CommitEdit("https://example.com"), ErrLinkNotFound)
	assert.Equal(t, "gone", p.ErrorLinkID())
}

func TestPaginator_CancelEditClearsState(t *testing.T) {
	p := New(makeLinks(2))

	p.BeginEdit("link-0")
	_ = p.CommitEdit("::::")
	require.Equal(t, "link-0", p.ErrorLinkID())

	p.CancelEdit()
	assert.Empty(t, p.EditingLinkID())
	assert.Empty(t, p.ErrorLinkID())
	assert.Empty(t, p.UpdateErrorLinkID())

	// Cancelling with nothing open is harmless.
	p.CancelEdit()
	assert.Empty(t, p.EditingLinkID())
}

func TestPaginator_CommitEditAsyncSuccess(t *testing.T) {
	var gotID, gotURL string
	p := New(makeLinks(3), WithUpdateLinkTask(func(_ context.Context, id, u string) error {
		gotID, gotURL = id, u
		return nil
	}))

	p.BeginEdit("link-2")
	ok, err := p.CommitEditAsync(context.Background(), "https://example.net/x")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "link-2", gotID)
	assert.Equal(t, "https://example.net/x", gotURL)
	assert.Empty(t, p.EditingLinkID())
	assert.False(t, p.Pending())
}

func TestPaginator_CommitEditAsyncTaskFailure(t *testing.T) {
	boom := errors.New("boom")
	p := New(makeLinks(3), WithUpdateLinkTask(func(context.Context, string, string) error {
		return boom
	}))

	p.BeginEdit("link-1")
	ok, err := p.CommitEditAsync(context.Background(), "https://example.net/x")

	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "link-1", p.EditingLinkID())
	assert.Equal(t, "link-1", p.UpdateErrorLinkID())
	assert.Empty(t, p.ErrorLinkID(), "update failure is not a validation failure")
	assert.False(t, p.Pending())
}

func TestPaginator_CancelDuringFailingTaskLeavesNoError(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := New(makeLinks(2), WithUpdateLinkTask(func(context.Context, string, string) error {
		close(started)
		<-release
		return errors.New("boom")
	}))

	p.BeginEdit("link-0")
	done := make(chan error, 1)
	go func() {
		_, err := p.CommitEditAsync(context.Background(), "https://example.org/a")
		done <- err
	}()

	<-started
	p.CancelEdit()
	close(release)

	assert.Error(t, <-done)
	assert.Empty(t, p.EditingLinkID())
	assert.Empty(t, p.UpdateErrorLinkID())
	assert.Empty(t, p.ErrorLinkID())
	assert.False(t, p.Pending())
}

func TestPaginator_CommitEditAsyncInvalidURL(t *testing.T) {
	called := false
	p := New(makeLinks(1), WithUpdateLinkTask(func(context.Context, string, string) error {
		called = true
		return nil
	}))

	p.BeginEdit("link-0")
	ok, err := p.CommitEditAsync(context.Background(), "example.com")

	assert.False(t, ok)
	var invalid *InvalidURLError
	assert.ErrorAs(t, err, &invalid)
	assert.False(t, called)
	assert.Equal(t, "link-0", p.ErrorLinkID())
}

func TestPaginator_CommitEditAsyncRejectsConcurrentCommit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	p := New(makeLinks(2), WithUpdateLinkTask(func(context.Context, string, string) error {
		close(started)
		<-release
		return nil
	}))

	p.BeginEdit("link-0")
	done := make(chan bool)
	go func() {
		ok, _ := p.CommitEditAsync(context.Background(), "https://example.org/a")
		done <- ok
	}()

	<-started
	assert.True(t, p.Pending())

	_, err := p.CommitEditAsync(context.Background(), "https://example.org/b")
	assert.ErrorIs(t, err, ErrCommitPending)
	assert.ErrorIs(t, p.CommitEdit("https://example.org/b"), ErrCommitPending)

	close(release)
	assert.True(t, <-done)
	assert.False(t, p.Pending())
}

func TestPaginator_CommitEditAsyncWithoutTask(t *testing.T) {
	p := New(makeLinks(1))
	p.BeginEdit("link-0")

	_, err := p.CommitEditAsync(context.Background(), "https://example.org/new")
	assert.ErrorIs(t, err, ErrNoUpdateTask)
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare host gets a slash", raw: "https://example.com", want: "https://example.com/"},
		{name: "case is normalized", raw: "HTTPS://EXAMPLE.com/Path", want: "https://example.com/Path"},
		{name: "whitespace trimmed", raw: "  http://a.b/c?d=e  ", want: "http://a.b/c?d=e"},
		{name: "mailto is absolute", raw: "mailto:hello@example.com", want: "mailto:hello@example.com"},
		{name: "relative path", raw: "/pricing", wantErr: true},
		{name: "no scheme", raw: "example.com", wantErr: true},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "missing host", raw: "https://", wantErr: true},
		{name: "bad host", raw: "https://exa mple.com", wantErr: true},
		{name: "port out of range", raw: "https://example.com:99999", wantErr: true},
		{name: "default port dropped", raw: "https://example.com:443/a", want: "https://example.com/a"},
		{name: "explicit port kept", raw: "http://example.com:8080", want: "http://example.com:8080/"},
		{name: "leading zeros trimmed", raw: "http://example.com:0080/", want: "http://example.com/"},
		{name: "empty port", raw: "http://example.com:/x", want: "http://example.com/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.raw)
			if tt.wantErr {
				var invalid *InvalidURLError
				assert.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
