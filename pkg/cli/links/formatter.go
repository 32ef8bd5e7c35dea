package links

import (
	"time"

	"newsletter-admin-go/pkg/models"
)

// EditedMarker returns "*" for links whose target was changed after publishing.
func EditedMarker(link models.PostLink) string {
	if link.Link.Edited {
		return "*"
	}
	return ""
}

// TruncateURL truncates a URL to the specified max length
func TruncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}

// ShortenID returns the first 8 characters of an ID followed by "..."
func ShortenID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// FormatDate formats a time as a readable date string
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
