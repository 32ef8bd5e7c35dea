package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"newsletter-admin-go/pkg/models"
)

type postsLoadedMsg struct {
	posts []models.Post
	err   error
}

// postPickerModel lists posts and swaps itself for the links table of the
// chosen one.
type postPickerModel struct {
	ctx      context.Context
	api      API
	posts    []models.Post
	selected int
	ready    bool
	err      error

	// links is set once a post has been picked.
	links tea.Model
}

// NewPostPicker creates the "edit post links" flow.
func NewPostPicker(ctx context.Context, api API) tea.Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return &postPickerModel{ctx: ctx, api: api}
}

func (m *postPickerModel) Init() tea.Cmd {
	return func() tea.Msg {
		posts, err := m.api.ListPosts(m.ctx)
		return postsLoadedMsg{posts: posts, err: err}
	}
}

func (m *postPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.links != nil {
		var cmd tea.Cmd
		m.links, cmd = m.links.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case postsLoadedMsg:
		m.ready = true
		m.posts, m.err = msg.posts, userFacingError(msg.err)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if !m.ready || m.err != nil || len(m.posts) == 0 {
			if key == "m" || key == "esc" {
				return m, backToMenu
			}
			return m, tea.Quit
		}
		if handleQuitKeys(key) {
			if key == "esc" {
				return m, backToMenu
			}
			return m, tea.Quit
		}
		if key == "m" {
			return m, backToMenu
		}
		if newSelected, handled := handleListNavigation(key, m.selected, len(m.posts)); handled {
			m.selected = newSelected
			return m, nil
		}
		if key == "enter" {
			post := m.posts[m.selected]
			m.links = wrapPostLinks(newPostLinksModel(m.ctx, m.api, post.ID, post.Title, true))
			return m, m.links.Init()
		}
	}
	return m, nil
}

func (m *postPickerModel) View() string {
	if m.links != nil {
		return m.links.View()
	}
	if !m.ready {
		return renderLoadingState("Loading posts...")
	}
	if m.err != nil {
		return renderErrorView(m.err)
	}
	if len(m.posts) == 0 {
		return renderEmptyState("No posts found.")
	}

	var b strings.Builder
	b.WriteString(renderTitle("Edit Post Links"))
	b.WriteString(boldStyle.Render("Select a post:") + "\n\n")
	for i, post := range m.posts {
		marker := " "
		style := itemTitleStyle
		if i == m.selected {
			marker = selectedMarkerStyle.Render("→")
			style = selectedStyle
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, style.Render(post.Title), mutedStyle.Render("["+post.Status+"]")))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Use ↑/↓ or j/k to navigate, Enter to select, m for menu, q to quit)") + "\n")
	return b.String()
}
