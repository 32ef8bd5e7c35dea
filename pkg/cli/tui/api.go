package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"newsletter-admin-go/pkg/cli/client"
	"newsletter-admin-go/pkg/models"
)

// API is the part of the admin client the TUI flows call.
type API interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostLinks(ctx context.Context, postID string) ([]models.PostLink, error)
	UpdatePostLink(ctx context.Context, postID, linkID, to string) (*models.PostLink, error)

	ListMembers(ctx context.Context, page, limit int) (*client.MemberPage, error)
	CreateMember(ctx context.Context, member models.MemberCreate) (*models.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

var _ API = (*client.Client)(nil)

// MenuNavigationMsg asks the root model to close the active flow.
type MenuNavigationMsg struct{}

func backToMenu() tea.Msg {
	return MenuNavigationMsg{}
}
