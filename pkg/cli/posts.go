package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"newsletter-admin-go/pkg/cli/links"
)

// ListPosts prints every post as a table.
func (a *App) ListPosts(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	posts, err := apiClient.ListPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		a.printf("No posts found.\n")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tStatus\tCreated")
	fmt.Fprintln(w, "───\t───\t───\t───")
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, links.FormatDate(p.CreatedAt))
	}
	w.Flush()

	a.printf("\nTotal: %d post(s)\n", len(posts))
	return nil
}

// ListPostLinks prints the links of one post.
func (a *App) ListPostLinks(ctx context.Context, postID string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	postLinks, err := apiClient.ListPostLinks(ctx, postID)
	if err != nil {
		return err
	}

	links.Write(a.out, links.FormatTableOutput(postID, postLinks))
	return nil
}

// UpdatePostLink retargets one link without opening the TUI.
func (a *App) UpdatePostLink(ctx context.Context, postID, linkID, to string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	link, err := apiClient.UpdatePostLink(ctx, postID, linkID, to)
	if err != nil {
		return err
	}

	links.Write(a.out, links.FormatUpdateMessage(link))
	return nil
}
