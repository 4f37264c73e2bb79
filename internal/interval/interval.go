// Package interval decides whether time slot intervals conflict.
// All comparisons are half-open, [start, end): a slot ending at 11:00
// does not conflict with one starting at 11:00.
package interval

import "time"

type Span struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two spans share any instant.
func Overlaps(a, b Span) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// AnyOverlap scans existing spans for a conflict with candidate.
// A span whose ID equals excludeID is skipped, which lets an update
// be validated against everything but the slot being updated.
func AnyOverlap(existing []Span, candidate Span, excludeID string) bool {
	for _, s := range existing {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if Overlaps(s, candidate) {
			return true
		}
	}
	return false
}
