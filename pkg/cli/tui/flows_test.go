package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/cli/tui/managemembers"
	"newsletter-admin-go/pkg/models"
)

func TestAddMemberForm(t *testing.T) {
	api := newFakeAPI(0)
	m := NewAddMemberForm(context.Background(), api).(*addMemberForm)

	m.emailInput.SetValue("not-an-email")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, m.err)
	assert.Equal(t, addStepEmail, m.step)

	m.emailInput.SetValue("reader@example.com")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, addStepName, m.step)

	m.nameInput.SetValue("Avid Reader")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, addStepNote, m.step)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	assert.Equal(t, addStepDone, m.step)
	require.Len(t, api.members, 1)
	assert.Equal(t, "reader@example.com", api.members[0].Email)
	assert.Equal(t, "Avid Reader", api.members[0].Name)
	assert.Contains(t, m.View(), "Member created successfully!")

	_, cmd = m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, MenuNavigationMsg{}, cmd())
}

func TestManageMembers_DeleteFlow(t *testing.T) {
	api := newFakeAPI(0)
	api.members = []models.Member{
		{ID: "m1", Email: "one@example.com", Status: models.MemberStatusFree},
		{ID: "m2", Email: "two@example.com", Name: "Two", Status: models.MemberStatusFree},
	}

	m := newManageMembersModel(context.Background(), api)
	run(t, m, m.Init())
	assert.Contains(t, m.View(), "one@example.com")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, managemembers.StepActionMenu, m.step)

	m.Update(keyRunes("d"))
	require.True(t, m.CapturingInput())

	// Anything but y/yes cancels.
	m.confirm.SetValue("n")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, managemembers.StepActionMenu, m.step)
	assert.Empty(t, api.deleted)

	m.Update(keyRunes("d"))
	m.confirm.SetValue("y")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = m.Update(cmd())

	assert.Equal(t, managemembers.StepDone, m.step)
	assert.Equal(t, []string{"m2"}, api.deleted)

	run(t, m, cmd)
	assert.Len(t, m.members, 1)
	assert.Equal(t, 0, m.selected)
}

func TestRootModel_MenuNavigation(t *testing.T) {
	root := NewRootModel(newFakeAPI(2)).(*rootModel)
	assert.Contains(t, root.View(), "Edit post links")

	root.Update(keyRunes("3"))
	require.True(t, root.IsDelegating())

	root.Update(MenuNavigationMsg{})
	assert.False(t, root.IsDelegating())

	_, cmd := root.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPostPicker_OpensLinksTable(t *testing.T) {
	api := newFakeAPI(6)
	picker := NewPostPicker(context.Background(), api).(*postPickerModel)
	run(t, picker, picker.Init())
	assert.Contains(t, picker.View(), "Weekly digest")

	_, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, picker.links)
	run(t, picker, cmd)

	assert.Contains(t, picker.View(), "Showing 1-5 of 6 link(s)")
}
