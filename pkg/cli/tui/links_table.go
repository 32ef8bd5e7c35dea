package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsletter-admin-go/pkg/cli/logger"
	"newsletter-admin-go/pkg/linktable"
	"newsletter-admin-go/pkg/models"
)

type postLinksLoadedMsg struct {
	links []models.PostLink
	err   error
}

// linkCommitMsg reports how a CommitEditAsync call settled.
type linkCommitMsg struct {
	linkID string
	ok     bool
	err    error
}

// postLinksModel is the links table of one post: five links per page, with
// a single link at a time open for inline editing of its target URL.
type postLinksModel struct {
	ctx      context.Context
	api      API
	postID   string
	title    string
	embedded bool

	paginator *linktable.Paginator
	input     textinput.Model
	selected  int // index into the visible page

	ready   bool
	loadErr error
	editErr error
	saving  bool
	status  string
	width   int
}

// NewPostLinksModel opens the links table for postID as a standalone program.
func NewPostLinksModel(ctx context.Context, api API, postID string) tea.Model {
	return wrapPostLinks(newPostLinksModel(ctx, api, postID, "", false))
}

func newPostLinksModel(ctx context.Context, api API, postID, title string, embedded bool) *postLinksModel {
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "https://example.com/page"
	input.CharLimit = 2048
	input.Width = 60

	m := &postLinksModel{
		ctx:      ctx,
		api:      api,
		postID:   postID,
		title:    title,
		embedded: embedded,
		input:    input,
	}
	m.paginator = linktable.New(nil, linktable.WithUpdateLinkTask(m.updateLink))
	return m
}

func wrapPostLinks(m *postLinksModel) tea.Model {
	return NewViewportWrapper(m, ViewportConfig{
		Title:       "Post Links",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		EnableMenu:  m.embedded,
		HelpContent: LinksTableHelpContent,
		MinWidth:    60,
		MinHeight:   12,
	})
}

// updateLink is the paginator's update task. It runs inside a tea.Cmd, so it
// only touches fields that never change after construction.
func (m *postLinksModel) updateLink(ctx context.Context, linkID, newURL string) error {
	_, err := m.api.UpdatePostLink(ctx, m.postID, linkID, newURL)
	return err
}

func (m *postLinksModel) Init() tea.Cmd {
	return m.load()
}

func (m *postLinksModel) load() tea.Cmd {
	return func() tea.Msg {
		links, err := m.api.ListPostLinks(m.ctx, m.postID)
		return postLinksLoadedMsg{links: links, err: err}
	}
}

// commit validates and persists raw for the link being edited.
func (m *postLinksModel) commit(raw string) tea.Cmd {
	linkID := m.paginator.EditingLinkID()
	return func() tea.Msg {
		ok, err := m.paginator.CommitEditAsync(m.ctx, raw)
		return linkCommitMsg{linkID: linkID, ok: ok, err: err}
	}
}

// CapturingInput reports whether the URL field owns the keyboard.
func (m *postLinksModel) CapturingInput() bool {
	return m.paginator.EditingLinkID() != ""
}

func (m *postLinksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(m.width-20, 20)
		return m, nil

	case postLinksLoadedMsg:
		m.ready = true
		if msg.err != nil {
			logger.LogError(msg.err, "failed to load links for post %s", m.postID)
			m.loadErr = userFacingError(msg.err)
			return m, nil
		}
		m.loadErr = nil
		m.paginator.SetLinks(msg.links)
		m.clampSelection()
		return m, nil

	case linkCommitMsg:
		m.saving = false
		if msg.err != nil {
			logger.LogError(msg.err, "commit failed for link %s", msg.linkID)
			m.editErr = userFacingError(msg.err)
			return m, nil
		}
		m.editErr = nil
		if m.paginator.EditingLinkID() == "" {
			m.input.Blur()
		}
		m.status = "Link saved."
		return m, m.load()

	case tea.KeyMsg:
		if m.CapturingInput() {
			return m.handleEditKeys(msg)
		}
		return m.handleTableKeys(msg)
	}

	return m, nil
}

func (m *postLinksModel) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.paginator.CancelEdit()
		m.input.Blur()
		m.editErr = nil
		return m, nil
	case "enter":
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.editErr = nil
		return m, m.commit(m.input.Value())
	}

	if m.saving {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *postLinksModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		if m.embedded {
			return m, backToMenu
		}
		return m, tea.Quit
	}
	if key == "r" {
		m.status = "Reloading..."
		return m, m.load()
	}
	if !m.ready || m.loadErr != nil {
		return m, nil
	}

	visible := m.paginator.VisibleLinks()
	if newSelected, handled := handleListNavigation(key, m.selected, len(visible)); handled {
		m.selected = newSelected
		return m, nil
	}

	switch key {
	case "left", "h":
		m.paginator.PreviousPage()
		m.selected = 0
		m.status = ""
	case "right", "l":
		m.paginator.NextPage()
		m.selected = 0
		m.status = ""
	case "e", "enter":
		if len(visible) == 0 {
			return m, nil
		}
		link := visible[m.selected]
		m.paginator.BeginEdit(link.Link.LinkID)
		m.input.SetValue(link.Link.To)
		m.input.CursorEnd()
		m.editErr = nil
		m.status = ""
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	}
	return m, nil
}

func (m *postLinksModel) clampSelection() {
	n := len(m.paginator.VisibleLinks())
	if m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

func (m *postLinksModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading links...")
	}
	if m.loadErr != nil {
		return "\n" + renderInlineError(m.loadErr) + "\n\n" +
			helpStyle.Render("(Press r to retry, q to quit)") + "\n"
	}

	var b strings.Builder

	heading := m.title
	if heading == "" {
		heading = m.postID
	}
	b.WriteString(boldStyle.Render(heading) + "\n")

	total := m.paginator.TotalLinks()
	if total == 0 {
		b.WriteString("\n" + mutedStyle.Render("This post has no links.") + "\n")
		return b.String()
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d link(s)",
		m.paginator.StartOffset(), m.paginator.EndOffset(), total)) + "\n\n")

	maxWidth := m.width
	if maxWidth <= 0 {
		maxWidth = 80
	}

	editing := m.paginator.EditingLinkID()
	errorID := m.paginator.ErrorLinkID()
	updateErrorID := m.paginator.UpdateErrorLinkID()

	for i, link := range m.paginator.VisibleLinks() {
		b.WriteString(m.renderRow(i, link, maxWidth, editing))

		if link.Link.LinkID == editing {
			b.WriteString("    " + fieldLabelStyle.Render("From:") + " " + urlStyle.Render(truncate(link.Link.From, maxWidth-14)) + "\n")
			b.WriteString("    " + m.input.View() + "\n")
			if m.saving {
				b.WriteString("    " + infoStyle.Render("Saving...") + "\n")
			}
			if m.editErr != nil && (link.Link.LinkID == errorID || link.Link.LinkID == updateErrorID) {
				b.WriteString("    " + renderInlineError(m.editErr) + "\n")
			}
		}
	}

	if m.paginator.ShowPagination() {
		b.WriteString("\n" + renderPager(m.paginator) + "\n")
	}

	if m.editErr != nil && editing != "" && errorID == "" && updateErrorID == "" {
		b.WriteString("\n" + renderInlineError(m.editErr) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + successStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n")
	if editing != "" {
		b.WriteString(helpStyle.Render("(Enter to save, Esc to cancel)") + "\n")
	} else {
		b.WriteString(helpStyle.Render("(↑/↓ select, ←/→ page, e edit, r reload, q quit)") + "\n")
	}

	return b.String()
}

func (m *postLinksModel) renderRow(i int, link models.PostLink, maxWidth int, editing string) string {
	marker := " "
	style := itemTitleStyle
	switch {
	case link.Link.LinkID == editing:
		marker = selectedMarkerStyle.Render("✎")
		style = editingRowStyle
	case i == m.selected && editing == "":
		marker = selectedMarkerStyle.Render("→")
		style = selectedStyle
	}

	position := m.paginator.StartOffset() + i
	clicks := fmt.Sprintf("%d click(s)", link.Count.Clicks)
	edited := ""
	if link.Link.Edited {
		edited = " " + editedStyle.Render("(edited)")
	}

	target := truncate(link.Link.To, maxWidth-len(clicks)-14)
	return fmt.Sprintf("%s %s %s  %s%s\n",
		marker,
		idStyle.Render(fmt.Sprintf("%2d.", position)),
		style.Render(target),
		mutedStyle.Render(clicks),
		edited,
	)
}
