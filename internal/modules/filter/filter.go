// Package filter narrows a dataset to the records matching a criterion.
package filter

import "github.com/aristath/stockchart/internal/domain"

// Apply returns the records that satisfy every constraint of c, preserving
// input order. The input slice is never modified and the result is never nil.
func Apply(records []domain.Record, c domain.FilterCriterion) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
