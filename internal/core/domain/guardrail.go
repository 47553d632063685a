package domain

// Severity grades a post-response violation report
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Exceeds reports whether s outranks other
func (s Severity) Exceeds(other Severity) bool {
	return s.rank() > other.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// GuardrailRule maps a forbidden-topic category to its match terms
// and the canned refusal shown when a query hits it.
// Rules are configuration: built at process start, read-only afterwards.
type GuardrailRule struct {
	Category    string   `json:"category"`
	Terms       []string `json:"terms"`
	Refusal     string   `json:"refusal"`
	Suggestions []string `json:"suggestions"` // Allowed alternative questions
}

// ScreenResult is the outcome of the pre-query screen
type ScreenResult struct {
	Forbidden   bool     `json:"forbidden"`
	Category    string   `json:"category,omitempty"`
	MatchedTerm string   `json:"matched_term,omitempty"`
	Refusal     string   `json:"refusal,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Violation is one pattern hit found during the post-response scan
type Violation struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

// ViolationReport aggregates the post-response scan.
// Severity is the maximum tier among the violations found.
type ViolationReport struct {
	Violated   bool        `json:"violated"`
	Violations []Violation `json:"violations,omitempty"`
	Severity   Severity    `json:"severity"`
}
