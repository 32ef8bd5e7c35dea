package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsletter-admin-go/pkg/cli/logger"
)

// inputCapturer is implemented by flows that own the keyboard while a text
// field is focused. The wrapper then only intercepts ctrl+c. Esc is always
// left to the wrapped model.
type inputCapturer interface {
	CapturingInput() bool
}

// ViewportWrapper wraps a model with viewport and common command support
type ViewportWrapper struct {
	model    tea.Model
	viewport viewport.Model
	width    int
	height   int
	config   ViewportConfig

	showHelp    bool
	helpContent string
}

// ViewportConfig configures the wrapper behavior
type ViewportConfig struct {
	Title        string
	ShowHeader   bool
	ShowFooter   bool
	HeaderHeight int            // Fixed header height (0 = auto)
	FooterHeight int            // Fixed footer height (0 = auto)
	UseViewport  bool           // Enable scrolling (false = simple responsive)
	MinWidth     int            // Minimum terminal width
	MinHeight    int            // Minimum terminal height
	EnableHelp   bool           // '?' toggles help
	EnableMenu   bool           // 'm' returns to the root menu
	HelpContent  func() string  // Function to generate help text
	OnMenu       func() tea.Cmd // Callback for menu command
}

// NewViewportWrapper creates a new wrapper around a model
func NewViewportWrapper(model tea.Model, config ViewportConfig) *ViewportWrapper {
	return &ViewportWrapper{
		model:    model,
		viewport: viewport.New(0, 0),
		config:   config,
		width:    80,
		height:   24,
	}
}

// Model returns the wrapped model.
func (w *ViewportWrapper) Model() tea.Model {
	return w.model
}

func (w *ViewportWrapper) Init() tea.Cmd {
	if w.model == nil {
		return nil
	}
	return w.model.Init()
}

func (w *ViewportWrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = max(msg.Width, w.config.MinWidth)
		w.height = max(msg.Height, w.config.MinHeight)
		w.calculateLayout()
		logger.Log("ViewportWrapper: resized to %dx%d, viewport=%dx%d", w.width, w.height, w.viewport.Width, w.viewport.Height)
		return w, w.forward(msg)

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return w, tea.Quit
		}

		if w.showHelp {
			switch key {
			case "?", "esc", "q":
				w.showHelp = false
			}
			return w, nil
		}

		if c, ok := w.model.(inputCapturer); ok && c.CapturingInput() {
			return w, w.forward(msg)
		}

		switch key {
		case "?":
			if w.config.EnableHelp {
				w.showHelp = true
				if w.config.HelpContent != nil {
					w.helpContent = w.config.HelpContent()
				}
				return w, nil
			}
		case "m":
			if w.config.EnableMenu {
				if w.config.OnMenu != nil {
					return w, w.config.OnMenu()
				}
				return w, backToMenu
			}
		case "q":
			return w, tea.Quit
		}
	}

	return w, w.forward(msg)
}

// forward hands msg to the wrapped model and, for scrolling keys, the viewport.
func (w *ViewportWrapper) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if w.model != nil {
		w.model, cmd = w.model.Update(msg)
	}

	if !w.config.UseViewport {
		return cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		default:
			return cmd
		}
	}

	var vpCmd tea.Cmd
	w.viewport, vpCmd = w.viewport.Update(msg)
	return tea.Batch(cmd, vpCmd)
}

func (w *ViewportWrapper) View() string {
	if w.showHelp {
		return w.renderHelpOverlay()
	}

	content := ""
	if w.model != nil {
		content = w.model.View()
	}

	if w.config.UseViewport {
		w.calculateLayout()
		w.viewport.SetContent(content)
		content = w.viewport.View()
	}

	var parts []string
	if w.config.ShowHeader {
		parts = append(parts, w.renderHeader())
	}
	parts = append(parts, content)
	if w.config.ShowFooter {
		parts = append(parts, w.renderFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (w *ViewportWrapper) calculateLayout() {
	if w.width <= 0 {
		w.width = 80
	}
	if w.height <= 0 {
		w.height = 24
	}

	headerH := w.config.HeaderHeight
	if headerH == 0 && w.config.ShowHeader {
		headerH = 3
	}
	footerH := w.config.FooterHeight
	if footerH == 0 && w.config.ShowFooter {
		footerH = 1
	}

	w.viewport.Width = w.width
	w.viewport.Height = max(w.height-headerH-footerH, 1)
}

func (w *ViewportWrapper) renderHeader() string {
	var b strings.Builder

	if w.config.Title != "" {
		b.WriteString(renderTitle(w.config.Title))
	}

	switch {
	case w.config.EnableMenu && w.config.EnableHelp:
		b.WriteString(helpStyle.Render("Press 'm' for menu, '?' for help") + "\n")
	case w.config.EnableHelp:
		b.WriteString(helpStyle.Render("Press '?' for help") + "\n")
	case w.config.EnableMenu:
		b.WriteString(helpStyle.Render("Press 'm' for menu") + "\n")
	}

	return b.String()
}

func (w *ViewportWrapper) renderFooter() string {
	shortcuts := []string{}
	if w.config.EnableHelp {
		shortcuts = append(shortcuts, "? help")
	}
	if w.config.EnableMenu {
		shortcuts = append(shortcuts, "m menu")
	}
	shortcuts = append(shortcuts, "q quit")

	return helpStyle.Render(strings.Join(shortcuts, " • "))
}

func (w *ViewportWrapper) renderHelpOverlay() string {
	helpText := w.helpContent
	if helpText == "" {
		helpText = "No help available"
	}

	overlayStyle := lipgloss.NewStyle().
		Width(w.width-4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Foreground(lipgloss.Color("252"))

	title := titleStyle.Render("Keyboard Shortcuts")
	closeHint := helpStyle.Render("Press '?' or Esc to close")

	return overlayStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", helpText, "", closeHint),
	)
}
