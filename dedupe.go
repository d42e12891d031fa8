package main

import (
	"fmt"
	"regexp"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// dedupeKey identifies the logical task a record belongs to. The person is
// always part of the key so records of distinct people never merge.
func dedupeKey(r TaskRecord) string {
	if r.TicketID != 0 {
		return fmt.Sprintf("%s-%d", r.Person, r.TicketID)
	}
	return r.Person + "-" + whitespaceRe.ReplaceAllString(r.Title, "")
}

// DedupeRecords collapses records that refer to the same logical task. Effort
// is summed across all duplicates; every other field comes from the record
// with the latest end date (start date when no end is set). Output preserves
// first-seen key order, so total effort is conserved and the result is a pure
// function of the input set.
func DedupeRecords(records []TaskRecord) []TaskRecord {
	kept := make(map[string]TaskRecord, len(records))
	effort := make(map[string]float64, len(records))
	var order []string

	for _, r := range records {
		key := dedupeKey(r)
		effort[key] += r.Effort

		existing, ok := kept[key]
		if !ok {
			kept[key] = r
			order = append(order, key)
			continue
		}
		// Dates are YYYY-MM-DD, so lexical comparison is chronological.
		if r.effectiveDate() > existing.effectiveDate() {
			kept[key] = r
		}
	}

	out := make([]TaskRecord, 0, len(order))
	for _, key := range order {
		r := kept[key]
		r.Effort = effort[key]
		out = append(out, r)
	}
	return out
}
