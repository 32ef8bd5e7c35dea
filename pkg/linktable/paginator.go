// Package linktable holds the paging and inline-edit state of a post's links
// table. It never mutates the links it is given; persisting an edit is the
// job of the update callbacks supplied by the caller.
package linktable

import (
	"context"
	"errors"
	"sync"

	"newsletter-admin-go/pkg/models"
)

// PageSize is the number of links shown per page.
const PageSize = 5

var (
	// ErrNotEditing is returned when a commit is attempted with no link open for editing.
	ErrNotEditing = errors.New("no link is being edited")
	// ErrLinkNotFound is returned when the edited link is no longer in the list.
	ErrLinkNotFound = errors.New("edited link not found")
	// ErrCommitPending is returned when a commit starts while another is awaiting its update task.
	ErrCommitPending = errors.New("a link update is already in progress")
	// ErrNoUpdateTask is returned by CommitEditAsync when no update task was configured.
	ErrNoUpdateTask = errors.New("no update task configured")
)

// UpdateFunc persists a new target for a link without reporting back.
type UpdateFunc func(linkID, newURL string)

// UpdateTaskFunc persists a new target for a link and reports the outcome.
type UpdateTaskFunc func(ctx context.Context, linkID, newURL string) error

// Paginator is the state behind a links table: the current page and the
// single link being edited, if any.
type Paginator struct {
	mu sync.Mutex

	links []models.PostLink
	page  int

	editingLinkID     string
	errorLinkID       string
	updateErrorLinkID string
	pending           bool

	updateLink     UpdateFunc
	updateLinkTask UpdateTaskFunc
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithUpdateLink sets the collaborator used by CommitEdit.
func WithUpdateLink(fn UpdateFunc) Option {
	return func(p *Paginator) { p.updateLink = fn }
}

// WithUpdateLinkTask sets the collaborator awaited by CommitEditAsync.
func WithUpdateLinkTask(fn UpdateTaskFunc) Option {
	return func(p *Paginator) { p.updateLinkTask = fn }
}

// New returns a Paginator over links, starting on page 1.
func New(links []models.PostLink, opts ...Option) *Paginator {
	p := &Paginator{links: links, page: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetLinks replaces the source list, keeping the current page when it is
// still in range.
func (p *Paginator) SetLinks(links []models.PostLink) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.links = links
	p.page = p.clamp(p.page)
}

// SetPage moves to page n, clamped to [1, TotalPages].
func (p *Paginator) SetPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.page = p.clamp(n)
}

// NextPage advances one page; it is a no-op on the last page.
func (p *Paginator) NextPage() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disableNextPage() {
		return
	}
	p.page++
}

// PreviousPage goes back one page; it is a no-op on the first page.
func (p *Paginator) PreviousPage() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disablePreviousPage() {
		return
	}
	p.page--
}

// BeginEdit opens linkID for editing. Nothing is validated until commit.
func (p *Paginator) BeginEdit(linkID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.editingLinkID = linkID
}

// CancelEdit closes the editor and clears every error flag.
func (p *Paginator) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.editingLinkID = ""
	p.errorLinkID = ""
	p.updateErrorLinkID = ""
}

// CommitEdit validates raw and, when it differs from the link's current
// target, hands the normalized URL to the update callback. On a validation
// failure the editor stays open with the error flag set on the edited link.
// On success the editor is closed; the callback's own outcome is not observed.
//
// The callback runs after the lock is released, so it may call back into
// the Paginator (for example SetLinks with the updated list).
func (p *Paginator) CommitEdit(raw string) error {
	p.mu.Lock()
	if p.pending {
		p.mu.Unlock()
		return ErrCommitPending
	}

	linkID, newURL, changed, err := p.prepareCommit(raw)
	if err != nil {
		p.mu.Unlock()
		return err
	}

	update := p.updateLink
	p.closeEditor()
	p.mu.Unlock()

	if changed && update != nil {
		update(linkID, newURL)
	}
	return nil
}

// CommitEditAsync validates raw like CommitEdit but awaits the update task.
// It reports true once the edit has been persisted (or needed no change).
// A task failure keeps the editor open and marks the link with an update
// error, distinct from the validation error flag.
func (p *Paginator) CommitEditAsync(ctx context.Context, raw string) (bool, error) {
	p.mu.Lock()
	if p.pending {
		p.mu.Unlock()
		return false, ErrCommitPending
	}

	linkID, newURL, changed, err := p.prepareCommit(raw)
	if err != nil {
		p.mu.Unlock()
		return false, err
	}

	if !changed {
		p.closeEditor()
		p.mu.Unlock()
		return true, nil
	}

	task := p.updateLinkTask
	if task == nil {
		p.mu.Unlock()
		return false, ErrNoUpdateTask
	}

	p.pending = true
	p.updateErrorLinkID = ""
	p.mu.Unlock()

	taskErr := task(ctx, linkID, newURL)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = false
	if taskErr != nil {
		// A cancel while the task ran already cleared the flags.
		if p.editingLinkID == linkID {
			p.updateErrorLinkID = linkID
		}
		return false, taskErr
	}

	// Only close the editor if the user did not move on to another link.
	if p.editingLinkID == linkID {
		p.closeEditor()
	}
	return true, nil
}

// prepareCommit runs the shared validation and diffing. Callers hold p.mu.
func (p *Paginator) prepareCommit(raw string) (linkID, newURL string, changed bool, err error) {
	if p.editingLinkID == "" {
		return "", "", false, ErrNotEditing
	}
	linkID = p.editingLinkID

	u, err := ParseURL(raw)
	if err != nil {
		p.errorLinkID = linkID
		return "", "", false, err
	}

	current, ok := p.find(linkID)
	if !ok {
		p.errorLinkID = linkID
		return "", "", false, ErrLinkNotFound
	}

	newURL = u.String()
	return linkID, newURL, current.Link.To != newURL, nil
}

func (p *Paginator) closeEditor() {
	p.editingLinkID = ""
	p.errorLinkID = ""
	p.updateErrorLinkID = ""
}

func (p *Paginator) find(linkID string) (models.PostLink, bool) {
	for _, l := range p.links {
		if l.Link.LinkID == linkID {
			return l, true
		}
	}
	return models.PostLink{}, false
}

// Links returns the source list as given.
func (p *Paginator) Links() []models.PostLink {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.links
}

// Page returns the current 1-based page.
func (p *Paginator) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// VisibleLinks returns the links on the current page.
func (p *Paginator) VisibleLinks() []models.PostLink {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.links) == 0 {
		return nil
	}
	return p.links[p.startOffset()-1 : p.endOffset()]
}

// StartOffset is the 1-based position of the first visible link.
func (p *Paginator) StartOffset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startOffset()
}

// EndOffset is the 1-based position of the last visible link.
func (p *Paginator) EndOffset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.endOffset()
}

// TotalPages is ceil(TotalLinks / PageSize); 0 for an empty list.
func (p *Paginator) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages()
}

// TotalLinks is the number of links across all pages.
func (p *Paginator) TotalLinks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.links)
}

// ShowPagination reports whether paging controls should be displayed.
func (p *Paginator) ShowPagination() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages() > 1
}

// DisablePreviousPage reports whether the current page is the first.
func (p *Paginator) DisablePreviousPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disablePreviousPage()
}

// DisableNextPage reports whether the current page is the last, or there are no links.
func (p *Paginator) DisableNextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disableNextPage()
}

// EditingLinkID is the link open for editing, or "".
func (p *Paginator) EditingLinkID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editingLinkID
}

// ErrorLinkID is the link whose last commit failed validation, or "".
func (p *Paginator) ErrorLinkID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errorLinkID
}

// UpdateErrorLinkID is the link whose last update task failed, or "".
func (p *Paginator) UpdateErrorLinkID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updateErrorLinkID
}

// Pending reports whether an update task is in flight.
func (p *Paginator) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

func (p *Paginator) startOffset() int {
	return (p.page-1)*PageSize + 1
}

func (p *Paginator) endOffset() int {
	return min(p.page*PageSize, len(p.links))
}

func (p *Paginator) totalPages() int {
	return (len(p.links) + PageSize - 1) / PageSize
}

func (p *Paginator) disablePreviousPage() bool {
	return p.page <= 1
}

func (p *Paginator) disableNextPage() bool {
	return p.page >= p.totalPages()
}

func (p *Paginator) clamp(n int) int {
	total := p.totalPages()
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	return n
}
