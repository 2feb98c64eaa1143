package processor

import "fmt"

// Status classifies what happened to a single card.
type Status int

const (
	// StatusAnnotated means audio was attached and the due value restored.
	StatusAnnotated Status = iota

	// StatusAlreadyAnnotated means the question field already carried a
	// sound marker and the card was left untouched.
	StatusAlreadyAnnotated

	// StatusSynthesisFailed means speech synthesis failed before any
	// remote state was written.
	StatusSynthesisFailed

	// StatusDueFetchFailed means the due value could not be read; the
	// field update was still applied, so the card's schedule position
	// may have been reset.
	StatusDueFetchFailed

	// StatusDueRestoreFailed means the field update was applied but
	// writing the due value back failed. The mutation is not rolled back.
	StatusDueRestoreFailed

	// StatusFailed covers the remaining per-card failures: missing note,
	// media upload error, or field update error. No marker is written
	// over a missing asset.
	StatusFailed
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusAnnotated:
		return "annotated"
	case StatusAlreadyAnnotated:
		return "already annotated"
	case StatusSynthesisFailed:
		return "synthesis failed"
	case StatusDueFetchFailed:
		return "due fetch failed"
	case StatusDueRestoreFailed:
		return "due restore failed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown status %d", int(s))
	}
}

// Outcome records the result of processing one card.
type Outcome struct {
	CardID int64
	Status Status
	Err    error // underlying error for the failure statuses, nil otherwise
}

// Result collects the outcomes of a full deck run.
type Result struct {
	Deck     string
	Outcomes []Outcome
}

// Count returns how many outcomes carry the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
