package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"newsletter-admin-go/pkg/cli/links"
	"newsletter-admin-go/pkg/models"
)

// ListMembers prints one page of members as a table.
func (a *App) ListMembers(ctx context.Context, page, limit int) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	result, err := apiClient.ListMembers(ctx, page, limit)
	if err != nil {
		return err
	}

	if len(result.Members) == 0 {
		a.printf("No members found.\n")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tEmail\tName\tStatus\tNewsletters\tCreated")
	fmt.Fprintln(w, "───\t───\t───\t───\t───\t───")

	for _, m := range result.Members {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID,
			m.Email,
			orDash(m.Name),
			m.Status,
			newsletterNames(m.Newsletters),
			links.FormatDate(m.CreatedAt),
		)
	}
	w.Flush()

	p := result.Meta.Pagination
	a.printf("\nPage %d of %d, %d member(s) total\n", p.Page, max(p.Pages, 1), p.Total)
	return nil
}

// AddMember creates a member and prints it.
func (a *App) AddMember(ctx context.Context, email, name, note string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	member, err := apiClient.CreateMember(ctx, models.MemberCreate{Email: email, Name: name, Note: note})
	if err != nil {
		return err
	}

	a.printf("✓ Member created successfully!\n\n")
	a.printf("  ID:          %s\n", member.ID)
	a.printf("  Email:       %s\n", member.Email)
	a.printf("  Name:        %s\n", orDash(member.Name))
	a.printf("  Newsletters: %s\n", newsletterNames(member.Newsletters))
	return nil
}

// DeleteMember removes a member by ID.
func (a *App) DeleteMember(ctx context.Context, id string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	if err := apiClient.DeleteMember(ctx, id); err != nil {
		return err
	}
	a.printf("✓ Member %s deleted\n", id)
	return nil
}

func newsletterNames(newsletters []models.Newsletter) string {
	if len(newsletters) == 0 {
		return "-"
	}
	names := make([]string, len(newsletters))
	for i, n := range newsletters {
		names[i] = n.Name
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
