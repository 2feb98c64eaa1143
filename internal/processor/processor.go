package processor

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/snonux/ankivoice/internal/anki"
)

// DefaultDelay is the pause inserted after each processed card so a
// run does not overload AnkiConnect or the synthesis API.
const DefaultDelay = 100 * time.Millisecond

// Processor drives the annotation pipeline over a whole deck. Cards
// are processed strictly one at a time; a fatal error on one card
// never aborts the remaining cards.
type Processor struct {
	collection Collection
	planner    *Planner
	delay      time.Duration
}

// New creates a Processor. A zero delay selects DefaultDelay.
func New(collection Collection, planner *Planner, delay time.Duration) *Processor {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Processor{
		collection: collection,
		planner:    planner,
		delay:      delay,
	}
}

// Run annotates every card of the named deck and returns the per-card
// outcomes. Only failures while enumerating the deck are fatal; they
// happen before any mutation.
func (p *Processor) Run(ctx context.Context, deckName string) (*Result, error) {
	cardIDs, err := p.collection.FindCards(ctx, fmt.Sprintf("deck:%q", deckName))
	if err != nil {
		return nil, fmt.Errorf("failed to find cards in deck %q: %w", deckName, err)
	}
	fmt.Printf("Found %d cards in deck %q\n", len(cardIDs), deckName)

	cards, err := p.collection.CardsInfo(ctx, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card info: %w", err)
	}

	notes, err := p.fetchNotes(ctx, cards)
	if err != nil {
		return nil, err
	}

	result := &Result{Deck: deckName}
	for i, card := range cards {
		fmt.Printf("\nProcessing card %d/%d (id %d)\n", i+1, len(cards), card.CardID)

		note := notes[card.NoteID]
		outcome := p.planner.Annotate(ctx, card, note)
		result.Outcomes = append(result.Outcomes, outcome)

		time.Sleep(p.delay)
	}

	return result, nil
}

// fetchNotes batch-fetches the owning note of every card, deduplicating
// note ids first since several cards may share one note.
func (p *Processor) fetchNotes(ctx context.Context, cards []anki.Card) (map[int64]*anki.Note, error) {
	seen := make(map[int64]bool)
	var noteIDs []int64
	for _, card := range cards {
		if !seen[card.NoteID] {
			seen[card.NoteID] = true
			noteIDs = append(noteIDs, card.NoteID)
		}
	}

	notes, err := p.collection.NotesInfo(ctx, noteIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note info: %w", err)
	}

	byID := make(map[int64]*anki.Note, len(notes))
	for i := range notes {
		byID[notes[i].NoteID] = &notes[i]
	}
	return byID, nil
}

// PrintSummary writes per-status counts in a human-readable form.
func (r *Result) PrintSummary() {
	fmt.Printf("\n=== Deck Processing Summary ===\n")
	fmt.Printf("Deck: %s\n", r.Deck)
	fmt.Printf("Total cards: %d\n", len(r.Outcomes))
	fmt.Printf("Annotated: %d\n", r.Count(StatusAnnotated))
	fmt.Printf("Skipped (already annotated): %d\n", r.Count(StatusAlreadyAnnotated))
	if n := r.Count(StatusSynthesisFailed); n > 0 {
		fmt.Printf("Skipped (synthesis errors): %d\n", n)
	}
	if n := r.Count(StatusDueFetchFailed); n > 0 {
		fmt.Printf("Annotated but schedule not restored (due read failed): %d\n", n)
	}
	if n := r.Count(StatusDueRestoreFailed); n > 0 {
		fmt.Printf("Annotated but schedule not restored (due write failed): %d\n", n)
	}
	if n := r.Count(StatusFailed); n > 0 {
		fmt.Printf("Errors: %d\n", n)
	}
	fmt.Printf("===============================\n")
}
