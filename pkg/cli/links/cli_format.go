// Package links formats a post's outbound links for plain CLI output.
package links

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"newsletter-admin-go/pkg/models"
)

// FormatTableOutput formats post links as a table for CLI output
func FormatTableOutput(post string, links []models.PostLink) string {
	if len(links) == 0 {
		return FormatEmptyState("No links found.")
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderHeader(post))
	b.WriteString("\n")

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTo\tClicks\tEdited\tUpdated")
	fmt.Fprintln(w, strings.Repeat("─", 11)+"\t"+strings.Repeat("─", 50)+"\t"+strings.Repeat("─", 6)+"\t"+strings.Repeat("─", 6)+"\t"+strings.Repeat("─", 16))

	for _, link := range links {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			ShortenID(link.Link.LinkID),
			TruncateURL(link.Link.To, 50),
			link.Count.Clicks,
			EditedMarker(link),
			FormatDate(link.Link.UpdatedAt),
		)
	}

	w.Flush()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d link(s)\n", len(links)))

	return b.String()
}

// FormatUpdateMessage formats the result of retargeting a link
func FormatUpdateMessage(link *models.PostLink) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("✓ Link updated successfully!\n")
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  ID:      %s\n", link.Link.LinkID))
	b.WriteString(fmt.Sprintf("  From:    %s\n", link.Link.From))
	b.WriteString(fmt.Sprintf("  To:      %s\n", link.Link.To))
	b.WriteString(fmt.Sprintf("  Updated: %s\n", FormatDate(link.Link.UpdatedAt)))
	b.WriteString("\n")

	return b.String()
}

// FormatErrorMessage formats an error message consistently
func FormatErrorMessage(err error) string {
	return fmt.Sprintf("❌ Error: %v\n", err)
}

func renderHeader(post string) string {
	if post == "" {
		return "Post links"
	}
	return "Links in " + post
}

// FormatEmptyState formats an empty state message
func FormatEmptyState(message string) string {
	return fmt.Sprintf("\n%s\n", message)
}

// Write writes formatted output to w, ignoring short writes
func Write(w io.Writer, content string) {
	fmt.Fprint(w, content)
}
