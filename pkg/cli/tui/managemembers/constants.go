package managemembers

// Step constants for the manage members state machine
const (
	StepListMembers = iota
	StepActionMenu
	StepViewDetails
	StepDeleteConfirm
	StepDeleting
	StepDone
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80

// PageLimit is how many members one load fetches.
const PageLimit = 50
