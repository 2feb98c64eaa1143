package processor

import (
	"context"
	"fmt"
)

// Preserver captures and restores a card's scheduling position across
// a mutation that would otherwise reset it. Replacing a question field
// via AnkiConnect can move the card back to the start of its review
// schedule; Capture must run strictly before such a mutation and
// Restore strictly after. A failed Restore does not roll the mutation
// back.
type Preserver struct {
	scheduler Scheduler
}

// NewPreserver creates a Preserver on top of a Scheduler.
func NewPreserver(scheduler Scheduler) *Preserver {
	return &Preserver{scheduler: scheduler}
}

// Capture reads the card's current due value.
func (p *Preserver) Capture(ctx context.Context, cardID int64) (int64, error) {
	due, err := p.scheduler.CardDue(ctx, cardID)
	if err != nil {
		return 0, fmt.Errorf("failed to read due value for card %d: %w", cardID, err)
	}
	return due, nil
}

// Restore writes a previously captured due value back.
func (p *Preserver) Restore(ctx context.Context, cardID, due int64) error {
	if err := p.scheduler.SetCardDue(ctx, cardID, due); err != nil {
		return fmt.Errorf("failed to restore due value for card %d: %w", cardID, err)
	}
	return nil
}
