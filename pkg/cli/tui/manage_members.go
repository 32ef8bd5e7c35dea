package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsletter-admin-go/pkg/cli/logger"
	"newsletter-admin-go/pkg/cli/tui/managemembers"
	"newsletter-admin-go/pkg/models"
)

// manageMembersModel lists members and lets the user view or delete one.
type manageMembersModel struct {
	ctx context.Context
	api API

	members  []models.Member
	total    int
	selected int
	step     int
	err      error
	ready    bool

	confirm textinput.Model
	deleted *models.Member

	width int
}

// NewManageMembersModel creates the manage members flow.
func NewManageMembersModel(ctx context.Context, api API) tea.Model {
	return NewViewportWrapper(newManageMembersModel(ctx, api), ViewportConfig{
		Title:       "Manage Members",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: ManageMembersHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func newManageMembersModel(ctx context.Context, api API) *manageMembersModel {
	if ctx == nil {
		ctx = context.Background()
	}

	confirm := textinput.New()
	confirm.Placeholder = "y/N"
	confirm.CharLimit = 3
	confirm.Width = 10

	return &manageMembersModel{
		ctx:     ctx,
		api:     api,
		step:    managemembers.StepListMembers,
		confirm: confirm,
	}
}

func (m *manageMembersModel) Init() tea.Cmd {
	return m.load()
}

func (m *manageMembersModel) load() tea.Cmd {
	return func() tea.Msg {
		page, err := m.api.ListMembers(m.ctx, 1, managemembers.PageLimit)
		if err != nil {
			return managemembers.MembersLoadedMsg{Err: err}
		}
		return managemembers.MembersLoadedMsg{Members: page.Members, Total: page.Meta.Pagination.Total}
	}
}

// CapturingInput keeps 'q' and 'm' typeable in the confirmation field.
func (m *manageMembersModel) CapturingInput() bool {
	return m.step == managemembers.StepDeleteConfirm
}

func (m *manageMembersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case managemembers.MembersLoadedMsg:
		m.ready = true
		if msg.Err != nil {
			m.err = userFacingError(msg.Err)
			return m, nil
		}
		m.err = nil
		m.members, m.total = msg.Members, msg.Total
		if m.selected >= len(m.members) {
			m.selected = max(len(m.members)-1, 0)
		}
		return m, nil

	case managemembers.DeleteErrorMsg:
		logger.LogError(msg.Err, "failed to delete member")
		m.err = userFacingError(msg.Err)
		m.step = managemembers.StepActionMenu
		return m, nil

	case managemembers.DeleteSuccessMsg:
		m.deleted = &msg.Member
		m.step = managemembers.StepDone
		return m, m.load()

	case tea.KeyMsg:
		switch m.step {
		case managemembers.StepListMembers:
			return m.handleListKeys(msg)
		case managemembers.StepActionMenu:
			return m.handleActionMenuKeys(msg)
		case managemembers.StepViewDetails:
			return m.handleViewDetailsKeys(msg)
		case managemembers.StepDeleteConfirm:
			return m.handleDeleteConfirmKeys(msg)
		case managemembers.StepDone:
			m.step = managemembers.StepListMembers
			m.deleted = nil
			return m, nil
		}
	}

	return m, nil
}

func (m *manageMembersModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return m, backToMenu
	}
	if handleQuitKeys(key) {
		return m, tea.Quit
	}
	if key == "r" {
		return m, m.load()
	}
	if newSelected, handled := handleListNavigation(key, m.selected, len(m.members)); handled {
		m.selected = newSelected
		return m, nil
	}
	if key == "enter" && m.selected < len(m.members) {
		m.err = nil
		m.step = managemembers.StepActionMenu
	}
	return m, nil
}

func (m *manageMembersModel) handleActionMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.err = nil
		m.step = managemembers.StepListMembers
	case "1", "v":
		m.step = managemembers.StepViewDetails
	case "2", "d":
		m.err = nil
		m.step = managemembers.StepDeleteConfirm
		m.confirm.SetValue("")
		return m, m.confirm.Focus()
	}
	return m, nil
}

func (m *manageMembersModel) handleViewDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "enter":
		m.step = managemembers.StepActionMenu
	}
	return m, nil
}

func (m *manageMembersModel) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.confirm.Blur()
		m.step = managemembers.StepActionMenu
		return m, nil
	case "enter":
		m.confirm.Blur()
		answer := strings.ToLower(strings.TrimSpace(m.confirm.Value()))
		if answer == "y" || answer == "yes" {
			m.step = managemembers.StepDeleting
			return m, m.deleteMember()
		}
		m.step = managemembers.StepActionMenu
		return m, nil
	}

	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	return m, cmd
}

func (m *manageMembersModel) deleteMember() tea.Cmd {
	if m.selected >= len(m.members) {
		return func() tea.Msg {
			return managemembers.DeleteErrorMsg{Err: fmt.Errorf("invalid selection")}
		}
	}
	member := m.members[m.selected]
	return func() tea.Msg {
		if err := m.api.DeleteMember(m.ctx, member.ID); err != nil {
			return managemembers.DeleteErrorMsg{Err: err}
		}
		return managemembers.DeleteSuccessMsg{Member: member}
	}
}

func (m *manageMembersModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading members...")
	}
	if m.err != nil && m.step == managemembers.StepListMembers {
		return renderErrorView(m.err)
	}

	switch m.step {
	case managemembers.StepListMembers:
		return m.renderList()
	case managemembers.StepActionMenu:
		return m.renderActionMenu()
	case managemembers.StepViewDetails:
		return m.renderViewDetails()
	case managemembers.StepDeleteConfirm:
		return m.renderDeleteConfirm()
	case managemembers.StepDeleting:
		return renderLoadingState("Deleting member...")
	case managemembers.StepDone:
		return renderSuccessView(fmt.Sprintf("Member %s deleted.", m.deleted.Email))
	}
	return ""
}

// getMaxWidth returns the maximum width for rendering, using DefaultWidth as fallback
func (m *manageMembersModel) getMaxWidth() int {
	if m.width > 0 {
		return m.width
	}
	return managemembers.DefaultWidth
}

func (m *manageMembersModel) current() (models.Member, bool) {
	if m.selected < 0 || m.selected >= len(m.members) {
		return models.Member{}, false
	}
	return m.members[m.selected], true
}

func (m *manageMembersModel) renderList() string {
	if len(m.members) == 0 {
		return renderEmptyState("No members found.")
	}

	subtitle := "Select a member:"
	if m.total > len(m.members) {
		subtitle = fmt.Sprintf("Select a member (showing %d of %d):", len(m.members), m.total)
	}
	s := renderMemberList(m.members, m.selected, subtitle, m.getMaxWidth())
	s += helpStyle.Render("(Use ↑/↓ or j/k to navigate, Enter to select, r to reload, Esc for menu)") + "\n"
	return s
}

func (m *manageMembersModel) renderActionMenu() string {
	member, ok := m.current()
	if !ok {
		return renderErrorView(fmt.Errorf("invalid selection"))
	}

	var b strings.Builder
	b.WriteString(renderTitle("Member Actions"))
	b.WriteString(renderDivider(m.getMaxWidth()))
	b.WriteString("\n\n")

	b.WriteString(boldStyle.Render("Selected Member:") + "\n")
	b.WriteString(fmt.Sprintf("  %s\n", itemTitleStyle.Render(memberTitle(member))))
	b.WriteString(fmt.Sprintf("  %s\n\n", urlStyle.Render(member.Email)))

	if m.err != nil {
		b.WriteString(renderInlineError(m.err) + "\n\n")
	}

	b.WriteString(boldStyle.Render("Choose an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " View details\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Delete member\n")
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Press 1/v to view, 2/d to delete, Esc/b to go back, q to quit)") + "\n")

	return b.String()
}

func (m *manageMembersModel) renderViewDetails() string {
	member, ok := m.current()
	if !ok {
		return renderErrorView(fmt.Errorf("invalid selection"))
	}

	var b strings.Builder
	b.WriteString(renderTitle("Member Details"))
	b.WriteString(renderDivider(m.getMaxWidth()))
	b.WriteString("\n\n")
	b.WriteString(renderMemberDetails(&member))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Press Enter, 'b' or Esc to go back)") + "\n")
	return b.String()
}

func (m *manageMembersModel) renderDeleteConfirm() string {
	member, ok := m.current()
	if !ok {
		return renderErrorView(fmt.Errorf("invalid selection"))
	}

	var b strings.Builder
	b.WriteString(renderTitle("Delete Member"))
	b.WriteString(warningStyle.Render("⚠️  Confirm Deletion") + "\n\n")

	b.WriteString(boldStyle.Render("Are you sure you want to delete:") + "\n")
	b.WriteString(fmt.Sprintf("  %s\n", itemTitleStyle.Render(memberTitle(member))))
	b.WriteString(fieldLabelStyle.Render("Email:"))
	b.WriteString(fmt.Sprintf(" %s\n\n", member.Email))

	b.WriteString(boldStyle.Render("Confirm (y/N):"))
	b.WriteString(" ")
	b.WriteString(m.confirm.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("(Press Enter to confirm, Esc to cancel)") + "\n")

	return b.String()
}
