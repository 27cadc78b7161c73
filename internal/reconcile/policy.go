package reconcile

import (
	"declara/internal/domain"
)

// Candidate is an incoming value competing for a field slot.
type Candidate struct {
	Confidence float64
	Source     domain.FieldSource
	// FreshRun marks a value produced by a re-extraction pass. A fresh
	// automated value replaces the stored automated value even at equal
	// or lower confidence, so stale runs do not pin the record forever.
	FreshRun bool
}

// Existing is the currently stored value for a field, if any.
type Existing struct {
	Confidence float64
	Source     domain.FieldSource
}

// Decide reports whether the candidate should replace the stored value.
// Manual overrides are sticky: no automated candidate ever displaces one.
// Otherwise a strictly higher confidence wins, and a fresh automated run
// refreshes automated values regardless of confidence.
func Decide(existing *Existing, c Candidate) bool {
	if existing == nil {
		return true
	}
	if existing.Source == domain.SourceManual {
		return c.Source == domain.SourceManual
	}
	if c.Source == domain.SourceManual {
		return true
	}
	if c.FreshRun {
		return true
	}
	return c.Confidence > existing.Confidence
}
