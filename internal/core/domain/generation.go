package domain

const unknownDescription = "Unknown"

// OrganizationMode controls where created documents are placed within
// the target container's hierarchy.
type OrganizationMode string

// Available organization modes.
const (
	// ModeTopLevel creates documents with no parent.
	ModeTopLevel OrganizationMode = "top-level"

	// ModeAttachExisting attaches documents to a caller-supplied parent.
	ModeAttachExisting OrganizationMode = "attach-existing"

	// ModeNewParent first creates a fresh parent document, then attaches
	// all generated documents to it.
	ModeNewParent OrganizationMode = "new-parent"
)

// IsValid returns true if the organization mode is recognised.
func (m OrganizationMode) IsValid() bool {
	switch m {
	case ModeTopLevel, ModeAttachExisting, ModeNewParent:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m OrganizationMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m OrganizationMode) Description() string {
	switch m {
	case ModeTopLevel:
		return "Top level (no parent)"
	case ModeAttachExisting:
		return "Attach to existing parent"
	case ModeNewParent:
		return "Create new parent, then children"
	default:
		return unknownDescription
	}
}

// TitleMode selects how a title sequence is generated.
type TitleMode string

// Available title modes.
const (
	// TitleSingle produces exactly one title, the base verbatim.
	TitleSingle TitleMode = "single"

	// TitleNumbered produces "base (1)", "base (2)", ...
	TitleNumbered TitleMode = "numbered"

	// TitleWeekly produces "base - Week of <Month> <Day>, <Year>" stepping
	// seven calendar days per entry.
	TitleWeekly TitleMode = "weekly"

	// TitleMonthly produces "base - <Month> <Year>" stepping one month
	// per entry.
	TitleMonthly TitleMode = "monthly"

	// TitleQuarterly produces "base - Q<n> <Year>" stepping one quarter
	// per entry.
	TitleQuarterly TitleMode = "quarterly"
)

// IsValid returns true if the title mode is recognised.
func (m TitleMode) IsValid() bool {
	switch m {
	case TitleSingle, TitleNumbered, TitleWeekly, TitleMonthly, TitleQuarterly:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m TitleMode) String() string {
	return string(m)
}

// TitleSpec holds a title mode and its mode-specific parameters, to be
// expanded into an ordered title sequence.
type TitleSpec struct {
	Mode      TitleMode
	BaseTitle string

	// Count is the number of titles to generate. Ignored for single mode.
	Count int

	// StartMonth is the full English month name ("January".."December").
	// Used by weekly and monthly modes.
	StartMonth string

	// StartDay is the day of month for weekly mode.
	StartDay int

	// StartYear is used by weekly, monthly and quarterly modes.
	StartYear int

	// StartQuarter is "Q1".."Q4" for quarterly mode.
	StartQuarter string
}

// GenerationRequest is the ephemeral input to one bulk run. It is
// constructed by the caller per run, consumed once, and not persisted.
type GenerationRequest struct {
	TemplateID   string
	ContainerKey string
	Mode         OrganizationMode

	// ParentDocumentID is required for ModeAttachExisting.
	ParentDocumentID string

	// NewParentTitle is required for ModeNewParent.
	NewParentTitle string

	// Titles is an explicit ordered title list. When empty, TitleSpec is
	// expanded instead.
	Titles []string

	// TitleSpec generates the title sequence when Titles is empty.
	TitleSpec *TitleSpec
}

// CreatedPage records one successful document creation.
type CreatedPage struct {
	ID    string
	Title string
	URL   string

	// Index is the position in the original title sequence.
	Index int
}

// PageError records one failed document creation.
type PageError struct {
	Title string
	Err   string

	// Index is the position in the original title sequence.
	Index int
}

// GenerationReport is the output of one bulk run.
// Invariant: CreatedCount + len(Errors) == TotalRequested; every requested
// title yields exactly one outcome.
type GenerationReport struct {
	TotalRequested int
	CreatedCount   int

	// Pages holds successes in original index order.
	Pages []CreatedPage

	// Errors holds failures in original index order.
	Errors []PageError

	// ParentID is the id of the parent the documents were attached to,
	// if any. For ModeNewParent this is the freshly created parent.
	ParentID string
}
