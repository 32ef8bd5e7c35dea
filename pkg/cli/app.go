// Package cli implements the newsletter-admin command line: plain table
// commands for scripting and a Bubble Tea TUI for interactive editing.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/cli/client"
	"newsletter-admin-go/pkg/cli/logger"
	"newsletter-admin-go/pkg/cli/tui"
	"newsletter-admin-go/pkg/config"
)

type App struct {
	cfg    *config.Config
	client *client.Client

	out  io.Writer
	save func(*config.Config) error
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:  cfg,
		out:  os.Stdout,
		save: config.Save,
	}
}

// SetOutput redirects command output, mostly for tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, errors.New("API base URL not configured (set cli.base_url)")
	}
	if a.cfg.CLI.APIKey == "" {
		return nil, errors.New("API key not configured (run 'register' or set cli.api_key)")
	}

	a.client = client.NewClient(a.cfg.CLI.BaseURL, a.cfg.CLI.APIKey, a.cfg.CLI.RequestTimeoutDuration())
	return a.client, nil
}

// getClientForRegistration returns an HTTP client without API key (for registration)
func (a *App) getClientForRegistration() (*client.Client, error) {
	if a.cfg.CLI.BaseURL == "" {
		return nil, errors.New("API base URL not configured (set cli.base_url)")
	}
	return client.NewClient(a.cfg.CLI.BaseURL, "", a.cfg.CLI.RequestTimeoutDuration()), nil
}

// Run starts the interactive TUI.
func (a *App) Run() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	return a.runProgram(tui.NewRootModel(apiClient))
}

// EditPostLinks opens the links table for one post directly.
func (a *App) EditPostLinks(ctx context.Context, postID string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	return a.runProgram(tui.NewPostLinksModel(ctx, apiClient, postID))
}

func (a *App) runProgram(model tea.Model) error {
	logger.Log("starting TUI program %T", model)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError(err, "TUI program exited")
		return errors.Wrap(err, "error running TUI")
	}
	return nil
}

func (a *App) printf(format string, v ...any) {
	fmt.Fprintf(a.out, format, v...)
}
