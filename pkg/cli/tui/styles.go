package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette (ANSI 256).
var (
	colorAccent = lipgloss.Color("99")
	colorText   = lipgloss.Color("252")
	colorDim    = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("238")
	colorGood   = lipgloss.Color("78")
	colorBad    = lipgloss.Color("203")
	colorNotice = lipgloss.Color("179")
	colorLink   = lipgloss.Color("74")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle  = lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorNotice)
	infoStyle    = lipgloss.NewStyle().Foreground(colorLink)

	fieldLabelStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).MarginRight(2)
	selectedStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedMarkerStyle = selectedStyle
	dividerStyle        = lipgloss.NewStyle().Foreground(colorFaint)
)

// Member and link rows.
var (
	idStyle        = lipgloss.NewStyle().Foreground(colorDim).Bold(true)
	itemTitleStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	urlStyle       = lipgloss.NewStyle().Foreground(colorLink).Italic(true)

	// An edited link keeps its original "from" URL but redirects elsewhere.
	editedStyle        = lipgloss.NewStyle().Foreground(colorNotice)
	editingRowStyle    = lipgloss.NewStyle().Foreground(colorLink).Bold(true).Underline(true)
	pagerStyle         = lipgloss.NewStyle().Foreground(colorText)
	pagerDisabledStyle = lipgloss.NewStyle().Foreground(colorFaint)
)

func renderTitle(title string) string {
	return "\n" + titleStyle.Render(title) + "\n"
}

func renderSuccess(msg string) string {
	return successStyle.Render("✓ " + msg)
}

func renderError(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

func renderDivider(length int) string {
	return dividerStyle.Render(strings.Repeat("─", length))
}
