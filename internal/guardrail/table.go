package guardrail

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// Table is the immutable forbidden-topic rule table. It is built once
// at process start; request handling only reads it.
type Table struct {
	rules []domain.GuardrailRule
}

// NewTable validates and normalizes a rule set. Match terms are
// lowercased so screening can compare case-insensitively.
func NewTable(rules []domain.GuardrailRule) (*Table, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", domain.ErrGuardrailUnavailable)
	}

	normalized := make([]domain.GuardrailRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Category == "" {
			return nil, fmt.Errorf("%w: rule without category", domain.ErrGuardrailUnavailable)
		}
		if len(rule.Terms) == 0 {
			return nil, fmt.Errorf("%w: category %s has no terms", domain.ErrGuardrailUnavailable, rule.Category)
		}
		if rule.Refusal == "" {
			return nil, fmt.Errorf("%w: category %s has no refusal", domain.ErrGuardrailUnavailable, rule.Category)
		}

		terms := make([]string, 0, len(rule.Terms))
		for _, term := range rule.Terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				return nil, fmt.Errorf("%w: category %s has an empty term", domain.ErrGuardrailUnavailable, rule.Category)
			}
			terms = append(terms, term)
		}

		rule.Terms = terms
		normalized = append(normalized, rule)
	}

	return &Table{rules: normalized}, nil
}

// Rules returns the rules in priority order.
func (t *Table) Rules() []domain.GuardrailRule {
	return t.rules
}

// DefaultTable returns the built-in rule set. Categories are listed in
// screening priority order; the first category to match a query wins.
func DefaultTable() *Table {
	table, err := NewTable([]domain.GuardrailRule{
		{
			Category: "tax-advice",
			Terms: []string{
				"tax advice",
				"tax deduction",
				"tax break",
				"tax benefit",
				"write off",
				"write-off",
				"avoid tax",
				"reduce my tax",
			},
			Refusal: "I'm not able to give tax advice. Tax treatment of benefits depends on your " +
				"personal circumstances, so please speak to a registered tax practitioner or SARS.",
			Suggestions: []string{
				"What documents do I need to submit a claim?",
				"How long does a claim take to process?",
				"What benefits am I eligible for?",
			},
		},
		{
			Category: "loopholes",
			Terms: []string{
				"loophole",
				"loop hole",
				"game the system",
				"get around the rules",
				"work around the rules",
				"cheat the system",
			},
			Refusal: "I can only explain how the claims process actually works, not ways around " +
				"the rules. Claims are assessed on the documented criteria.",
			Suggestions: []string{
				"What are the eligibility criteria for my claim?",
				"How is my benefit amount calculated?",
				"What can I do if my claim is declined?",
			},
		},
		{
			Category: "guaranteed-outcome",
			Terms: []string{
				"guarantee my claim",
				"guaranteed approval",
				"guarantee approval",
				"guarantee that my",
				"definitely be approved",
				"100% approval",
			},
			Refusal: "No outcome can be guaranteed. Every claim is assessed individually against " +
				"the qualifying criteria, and I can only describe how that assessment works.",
			Suggestions: []string{
				"What criteria is my claim assessed against?",
				"What are common reasons claims get declined?",
				"How do I check the status of my claim?",
			},
		},
		{
			Category: "inappropriate",
			Terms: []string{
				"fake documents",
				"forge",
				"false claim",
				"fraudulent",
				"lie about",
				"bribe",
			},
			Refusal: "I can't help with that. Submitting false or altered information in a claim " +
				"is fraud. I can help with legitimate questions about the claims process.",
			Suggestions: []string{
				"What documents do I need to submit a claim?",
				"How do I correct a mistake on a submitted claim?",
			},
		},
	})
	if err != nil {
		// The built-in table is static; a validation failure here is a bug.
		panic(err)
	}
	return table
}
