package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for root menu
func RootMenuHelpContent() string {
	items := []HelpItem{
		{"1-3", "Select menu option"},
		{"q / Esc", "Quit"},
	}
	return renderHelpItems(items)
}

// ManageMembersHelpContent returns help for the manage members flow
func ManageMembersHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate member list"},
		{"Enter", "Select member"},
		{"Esc / b", "Go back"},
		{"1 / v", "View details"},
		{"2 / d", "Delete member"},
		{"m", "Return to menu"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// AddMemberHelpContent returns help for the add member form
func AddMemberHelpContent() string {
	items := []HelpItem{
		{"Enter", "Next field / Save member"},
		{"Esc", "Cancel"},
	}
	return renderHelpItems(items)
}

// PostPickerHelpContent returns help for the post picker
func PostPickerHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate posts"},
		{"Enter", "Edit the links of the post"},
		{"m", "Return to menu"},
		{"q / Esc", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// LinksTableHelpContent returns help for the post links table
func LinksTableHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Select link on this page"},
		{"← / → / h / l", "Previous / next page"},
		{"e / Enter", "Edit link target"},
		{"Enter (editing)", "Save new target"},
		{"Esc (editing)", "Cancel edit"},
		{"r", "Reload links"},
		{"m", "Return to menu"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	keyStyle := boldStyle.Foreground(colorAccent)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
