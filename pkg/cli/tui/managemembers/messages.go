package managemembers

import "newsletter-admin-go/pkg/models"

// MembersLoadedMsg is emitted when members have been fetched
type MembersLoadedMsg struct {
	Members []models.Member
	Total   int
	Err     error
}

// DeleteErrorMsg is emitted when member deletion fails
type DeleteErrorMsg struct {
	Err error
}

// DeleteSuccessMsg is emitted when member deletion succeeds
type DeleteSuccessMsg struct {
	Member models.Member
}
