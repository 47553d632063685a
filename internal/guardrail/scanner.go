package guardrail

import (
	"regexp"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// scanRule is one compiled post-response check. Rules with a
// replacement are rewritten by Sanitize; flag-only rules are reported
// by Scan but left in the text.
type scanRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
	description string
	severity    domain.Severity
	flagOnly    bool
}

// Scanner runs the post-response checks. The rule list is fixed and
// ordered; replacements never produce text that matches a later rule,
// which is what makes Sanitize idempotent.
type Scanner struct {
	rules []scanRule
}

// NewScanner builds the scanner with its built-in rule set.
func NewScanner() *Scanner {
	amount := `\d+(?:[, ]\d{3})*(?:\.\d+)?`

	return &Scanner{rules: []scanRule{
		{
			name:        "currency_amount",
			pattern:     regexp.MustCompile(`\bR\s?` + amount),
			replacement: "[amount]",
			description: "explicit rand amount",
			severity:    domain.SeverityHigh,
		},
		{
			name:        "currency_amount_zar",
			pattern:     regexp.MustCompile(`\bZAR\s?` + amount),
			replacement: "[amount]",
			description: "explicit ZAR amount",
			severity:    domain.SeverityHigh,
		},
		{
			name:        "currency_amount_suffix",
			pattern:     regexp.MustCompile(`(?i)` + amount + `\s*rands?\b`),
			replacement: "[amount]",
			description: "amount followed by rand",
			severity:    domain.SeverityHigh,
		},
		{
			name:        "percentage",
			pattern:     regexp.MustCompile(`\d+(?:\.\d+)?\s*%`),
			replacement: "[percentage]",
			description: "bare percentage",
			severity:    domain.SeverityHigh,
		},
		{
			name:        "tax_advice_phrase",
			pattern:     regexp.MustCompile(`(?i)\byou (?:will|can|could) save\b`),
			description: "savings promise phrasing",
			severity:    domain.SeverityMedium,
			flagOnly:    true,
		},
		{
			name:        "tax_advice_deduction",
			pattern:     regexp.MustCompile(`(?i)\byou can deduct\b`),
			description: "deduction advice phrasing",
			severity:    domain.SeverityMedium,
			flagOnly:    true,
		},
		{
			name:        "tax_advice_claim_back",
			pattern:     regexp.MustCompile(`(?i)\bclaim back\b`),
			description: "claim-back advice phrasing",
			severity:    domain.SeverityMedium,
			flagOnly:    true,
		},
		{
			name:        "tax_advice_deductible",
			pattern:     regexp.MustCompile(`(?i)\btax[- ]deductible\b`),
			description: "deductibility advice phrasing",
			severity:    domain.SeverityMedium,
			flagOnly:    true,
		},
		{
			name:        "guarantee_approved",
			pattern:     regexp.MustCompile(`(?i)\bguaranteed to be approved\b`),
			replacement: "may be approved",
			description: "approval guarantee",
			severity:    domain.SeverityMedium,
		},
		{
			name:        "guarantee_approval",
			pattern:     regexp.MustCompile(`(?i)\bguaranteed approval\b`),
			replacement: "possible approval",
			description: "approval guarantee",
			severity:    domain.SeverityMedium,
		},
		{
			name:        "guarantee_accepted",
			pattern:     regexp.MustCompile(`(?i)\bwill be accepted\b`),
			replacement: "may be accepted",
			description: "acceptance guarantee",
			severity:    domain.SeverityMedium,
		},
		{
			name:        "guarantee_approved_future",
			pattern:     regexp.MustCompile(`(?i)\bwill be approved\b`),
			replacement: "may be approved",
			description: "approval guarantee",
			severity:    domain.SeverityMedium,
		},
		{
			name:        "guarantee_qualify",
			pattern:     regexp.MustCompile(`(?i)\bdefinitely qualify\b`),
			replacement: "may qualify",
			description: "qualification guarantee",
			severity:    domain.SeverityMedium,
		},
	}}
}

// Scan reports every rule the text trips. Overall severity is the
// highest severity among the matches; no matches means Violated=false
// and SeverityNone.
func (s *Scanner) Scan(text string) *domain.ViolationReport {
	report := &domain.ViolationReport{Severity: domain.SeverityNone}

	for _, rule := range s.rules {
		if !rule.pattern.MatchString(text) {
			continue
		}
		report.Violated = true
		report.Violations = append(report.Violations, domain.Violation{
			Pattern:     rule.name,
			Description: rule.description,
		})
		if rule.severity.Exceeds(report.Severity) {
			report.Severity = rule.severity
		}
	}

	return report
}

// Sanitize rewrites the text by applying each rule's replacement in
// order. Flag-only rules are skipped. Running Sanitize on its own
// output is a no-op.
func (s *Scanner) Sanitize(text string) string {
	for _, rule := range s.rules {
		if rule.flagOnly {
			continue
		}
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
