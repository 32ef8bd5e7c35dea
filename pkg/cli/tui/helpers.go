package tui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"newsletter-admin-go/pkg/cli/client"
	"newsletter-admin-go/pkg/linktable"
	"newsletter-admin-go/pkg/models"
)

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// renderSuccessView renders a standard success view with exit message
func renderSuccessView(message string) string {
	return "\n" + renderSuccess(message) + "\n\n" +
		helpStyle.Render("Press any key to continue...") + "\n"
}

// renderMemberList renders a selectable list of members with navigation markers
func renderMemberList(members []models.Member, selected int, subtitle string, maxWidth int) string {
	if len(members) == 0 {
		return renderEmptyState("No members found.")
	}

	var b strings.Builder
	if subtitle != "" {
		b.WriteString(boldStyle.Render(subtitle) + "\n\n")
	}

	for i, member := range members {
		marker := " "
		style := itemTitleStyle
		if i == selected {
			marker = selectedMarkerStyle.Render("→")
			style = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s %s\n", marker, style.Render(memberTitle(member))))
		b.WriteString(fmt.Sprintf("  %s\n", urlStyle.Render(truncate(member.Email, maxWidth-4))))
	}

	b.WriteString("\n")
	return b.String()
}

// renderMemberDetails renders the fields of a member
func renderMemberDetails(member *models.Member) string {
	if member == nil {
		return ""
	}

	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fieldLabelStyle.Render(label))
		b.WriteString(" " + value + "\n")
	}

	field("ID:", idStyle.Render(member.ID))
	field("Email:", member.Email)
	field("Name:", orMuted(member.Name))
	field("Status:", member.Status)
	field("Note:", orMuted(member.Note))

	names := make([]string, len(member.Newsletters))
	for i, n := range member.Newsletters {
		names[i] = n.Name
	}
	field("Newsletters:", orMuted(strings.Join(names, ", ")))
	field("Created:", member.CreatedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// memberTitle returns the display name of a member, falling back to the email
func memberTitle(member models.Member) string {
	if member.Name != "" {
		return member.Name
	}
	return member.Email
}

func orMuted(s string) string {
	if s == "" {
		return mutedStyle.Render("(not set)")
	}
	return s
}

// truncate shortens s to maxLen runes, ending in "..."
func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// handleQuitKeys checks if a key should quit the current view
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}

// renderInlineError renders an error message inline (without full error view formatting)
func renderInlineError(err error) string {
	if err == nil {
		return ""
	}
	return renderError(err.Error())
}

// renderPager renders "‹ prev  page x of y  next ›" with disabled ends dimmed
func renderPager(p *linktable.Paginator) string {
	prev := pagerStyle.Render("‹ prev")
	if p.DisablePreviousPage() {
		prev = pagerDisabledStyle.Render("‹ prev")
	}
	next := pagerStyle.Render("next ›")
	if p.DisableNextPage() {
		next = pagerDisabledStyle.Render("next ›")
	}
	middle := fmt.Sprintf("page %d of %d", p.Page(), p.TotalPages())
	return lipgloss.JoinHorizontal(lipgloss.Left, prev, "   ", middle, "   ", next)
}

// userFacingError turns API and validation errors into short messages,
// leaving other error types unchanged.
func userFacingError(err error) error {
	if err == nil {
		return nil
	}

	var invalid *linktable.InvalidURLError
	if errors.As(err, &invalid) {
		return errors.New("enter an absolute URL, e.g. https://example.com/page")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("the API key was rejected; run 'register' or set cli.api_key")
		case http.StatusNotFound:
			return errors.New("not found; it may have been deleted")
		}
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
	}

	return err
}
