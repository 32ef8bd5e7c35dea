package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

const (
	addStepEmail = iota
	addStepName
	addStepNote
	addStepDone
)

type memberSubmitErrorMsg struct {
	err error
}

type memberSubmitSuccessMsg struct {
	member *models.Member
}

// addMemberForm walks through email, name and note, then creates the member.
type addMemberForm struct {
	ctx        context.Context
	api        API
	emailInput textinput.Model
	nameInput  textinput.Model
	noteInput  textinput.Model
	step       int
	submitting bool
	err        error
	created    *models.Member
}

// NewAddMemberForm creates a new add member form.
func NewAddMemberForm(ctx context.Context, api API) tea.Model {
	if ctx == nil {
		ctx = context.Background()
	}

	emailInput := textinput.New()
	emailInput.Placeholder = "member@example.com"
	emailInput.Focus()
	emailInput.CharLimit = 191
	emailInput.Width = 60

	nameInput := textinput.New()
	nameInput.Placeholder = "Optional name"
	nameInput.CharLimit = 191
	nameInput.Width = 60

	noteInput := textinput.New()
	noteInput.Placeholder = "Optional private note"
	noteInput.CharLimit = 2000
	noteInput.Width = 60

	return &addMemberForm{
		ctx:        ctx,
		api:        api,
		emailInput: emailInput,
		nameInput:  nameInput,
		noteInput:  noteInput,
	}
}

func (m *addMemberForm) Init() tea.Cmd {
	return textinput.Blink
}

func (m *addMemberForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step == addStepDone {
			return m, backToMenu
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, backToMenu
		case "enter":
			switch m.step {
			case addStepEmail:
				if _, err := utils.ValidateEmail(m.emailInput.Value()); err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				m.step = addStepName
				m.emailInput.Blur()
				return m, m.nameInput.Focus()
			case addStepName:
				m.step = addStepNote
				m.nameInput.Blur()
				return m, m.noteInput.Focus()
			case addStepNote:
				if m.submitting {
					return m, nil
				}
				m.submitting = true
				return m, m.submit()
			}
		}

	case memberSubmitErrorMsg:
		m.submitting = false
		m.err = userFacingError(msg.err)
		return m, nil
	case memberSubmitSuccessMsg:
		m.submitting = false
		m.created = msg.member
		m.step = addStepDone
		return m, nil
	}

	var cmd tea.Cmd
	switch m.step {
	case addStepEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case addStepName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case addStepNote:
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

func (m *addMemberForm) View() string {
	if m.step == addStepDone {
		var b strings.Builder
		b.WriteString("\n" + renderSuccess("Member created successfully!") + "\n\n")
		b.WriteString(renderMemberDetails(m.created))
		b.WriteString("\n" + helpStyle.Render("Press any key to return to the menu...") + "\n")
		return b.String()
	}

	var s strings.Builder
	s.WriteString(renderTitle("Add Member"))

	if m.step > addStepEmail {
		s.WriteString(successStyle.Render("✓") + " Email: " + m.emailInput.Value() + "\n")
	}
	if m.step > addStepName && m.nameInput.Value() != "" {
		s.WriteString(successStyle.Render("✓") + " Name: " + m.nameInput.Value() + "\n")
	}
	if m.step > addStepEmail {
		s.WriteString("\n")
	}

	switch m.step {
	case addStepEmail:
		s.WriteString("Email (required):\n")
		s.WriteString(m.emailInput.View())
	case addStepName:
		s.WriteString("Name (optional, press Enter to skip):\n")
		s.WriteString(m.nameInput.View())
	case addStepNote:
		s.WriteString("Note (optional, press Enter to save):\n")
		s.WriteString(m.noteInput.View())
	}

	if m.err != nil {
		s.WriteString("\n\n" + renderInlineError(m.err))
	}
	if m.submitting {
		s.WriteString("\n\n" + infoStyle.Render("Saving..."))
	}
	s.WriteString("\n\n" + helpStyle.Render("(Press Enter to continue, Esc to cancel)") + "\n")
	return s.String()
}

func (m *addMemberForm) submit() tea.Cmd {
	email, name, note := m.emailInput.Value(), strings.TrimSpace(m.nameInput.Value()), strings.TrimSpace(m.noteInput.Value())
	return func() tea.Msg {
		email, err := utils.ValidateEmail(email)
		if err != nil {
			return memberSubmitErrorMsg{err: err}
		}

		created, err := m.api.CreateMember(m.ctx, models.MemberCreate{Email: email, Name: name, Note: note})
		if err != nil {
			return memberSubmitErrorMsg{err: fmt.Errorf("failed to create member: %w", err)}
		}
		return memberSubmitSuccessMsg{member: created}
	}
}
