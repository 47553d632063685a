package domain

// Confidence is the categorical confidence label attached to an answer
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Numeric confidence thresholds for the label mapping
const (
	highConfidenceFloor   = 0.8
	mediumConfidenceFloor = 0.5
)

// ConfidenceFromScore maps a numeric confidence (typically the top retrieval
// similarity) to a categorical label: >=0.8 high, >=0.5 medium, else low.
func ConfidenceFromScore(score float64) Confidence {
	switch {
	case score >= highConfidenceFloor:
		return ConfidenceHigh
	case score >= mediumConfidenceFloor:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// AskRequest is a caller's question plus per-request tuning
type AskRequest struct {
	Query              string   `json:"query"`
	TopK               int      `json:"top_k,omitempty"`      // 0 means service default
	Categories         []string `json:"categories,omitempty"` // Restrict retrieval to these document categories
	IncludeDiagnostics bool     `json:"include_diagnostics,omitempty"`
}

// Source describes one knowledge-base chunk that grounded an answer
type Source struct {
	Title             string `json:"title"`
	Category          string `json:"category"`
	Excerpt           string `json:"excerpt"`
	SimilarityPercent int    `json:"similarity_percent"`
}

// Answer is the caller-facing result of the ask pipeline
type Answer struct {
	Answer             string            `json:"answer"`
	Sources            []Source          `json:"sources"`
	Confidence         Confidence        `json:"confidence"`
	Suggestions        []string          `json:"suggestions"`
	GuardrailTriggered bool              `json:"guardrail_triggered"`
	Diagnostics        *AnswerDiagnostic `json:"diagnostics,omitempty"`
}

// AnswerDiagnostic carries the post-response scan outcome.
// Only attached when the caller explicitly requests diagnostics.
type AnswerDiagnostic struct {
	Sanitized bool             `json:"sanitized"`
	Report    *ViolationReport `json:"report,omitempty"`
}
