package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// rootModel is the Bubble Tea model that acts as an app shell for multiple flows.
// It presents a simple menu and then hands control to a specific flow model.
type rootModel struct {
	ctx context.Context
	api API

	// Current active flow (when nil, we are in the main menu)
	current tea.Model

	width, height int
}

// NewRootModel constructs the root app-shell model that can launch multiple flows.
func NewRootModel(api API) tea.Model {
	return &rootModel{ctx: context.Background(), api: api}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

// IsDelegating reports whether a flow is active.
func (m *rootModel) IsDelegating() bool {
	return m.current != nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuNavigationMsg:
		m.current = nil
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}

	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "1":
			return m.start(NewAddMemberForm(m.ctx, m.api))
		case "2":
			return m.start(NewManageMembersModel(m.ctx, m.api))
		case "3":
			return m.start(NewPostPicker(m.ctx, m.api))
		}
	}

	return m, nil
}

// start activates flow and replays the last known window size to it.
func (m *rootModel) start(flow tea.Model) (tea.Model, tea.Cmd) {
	m.current = flow
	cmds := []tea.Cmd{flow.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return m, tea.Batch(cmds...)
}

func (m *rootModel) View() string {
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderTitle("Newsletter Admin"))
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Select an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " Add member\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Manage members (list, view, delete)\n")
	b.WriteString("  " + selectedMarkerStyle.Render("3)") + " Edit post links\n")
	b.WriteString("\n")
	b.WriteString(RootMenuHelpContent())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Press the number of an option, or 'q' / Esc to quit.") + "\n")

	return b.String()
}
