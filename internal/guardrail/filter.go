package guardrail

import (
	"strings"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// Filter screens incoming queries against the forbidden-topic table
// before any retrieval or generation happens.
type Filter struct {
	table *Table
}

// NewFilter builds a pre-query filter. The filter is fail-closed: a
// missing or empty table is an error, not a pass-everything filter.
func NewFilter(table *Table) (*Filter, error) {
	if table == nil || len(table.rules) == 0 {
		return nil, domain.ErrGuardrailUnavailable
	}
	return &Filter{table: table}, nil
}

// Screen matches the query against the table, case-insensitively.
// Categories are checked in table priority order and the first term
// hit wins; a clean query returns a zero ScreenResult.
func (f *Filter) Screen(query string) domain.ScreenResult {
	lowered := strings.ToLower(query)

	for _, rule := range f.table.rules {
		for _, term := range rule.Terms {
			if strings.Contains(lowered, term) {
				return domain.ScreenResult{
					Forbidden:   true,
					Category:    rule.Category,
					MatchedTerm: term,
					Refusal:     rule.Refusal,
					Suggestions: rule.Suggestions,
				}
			}
		}
	}

	return domain.ScreenResult{}
}
