package processor

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/snonux/ankivoice/internal/anki"
	"codeberg.org/snonux/ankivoice/internal/audio"
	"codeberg.org/snonux/ankivoice/internal/markup"
)

// Planner runs the annotation sequence for a single card: skip if a
// marker is already present, otherwise synthesize, upload, patch the
// question field and restore the card's due value.
type Planner struct {
	collection    Collection
	media         MediaStore
	synth         audio.Provider
	preserver     *Preserver
	questionField string
}

// NewPlanner creates a Planner. questionField names the note field that
// receives the sound marker, "Front" on stock note types.
func NewPlanner(collection Collection, media MediaStore, synth audio.Provider, preserver *Preserver, questionField string) *Planner {
	if questionField == "" {
		questionField = "Front"
	}
	return &Planner{
		collection:    collection,
		media:         media,
		synth:         synth,
		preserver:     preserver,
		questionField: questionField,
	}
}

// Annotate processes one card against its owning note and returns the
// outcome. Synthesis runs before any remote write, so a synthesis
// failure leaves no partial state behind.
func (p *Planner) Annotate(ctx context.Context, card anki.Card, note *anki.Note) Outcome {
	cardID := card.CardID

	if note == nil {
		return Outcome{
			CardID: cardID,
			Status: StatusFailed,
			Err:    fmt.Errorf("note %d not found for card %d", card.NoteID, cardID),
		}
	}

	fieldText := note.FieldValue(p.questionField)
	if HasAnnotationMarker(fieldText) {
		fmt.Printf("  Audio already added for card %d, skipping\n", cardID)
		return Outcome{CardID: cardID, Status: StatusAlreadyAnnotated}
	}

	text := markup.PlainText(fieldText)
	fmt.Printf("  Synthesizing %q\n", text)

	audioData, err := p.synth.Synthesize(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Error generating audio for card %d: %v\n", cardID, err)
		return Outcome{CardID: cardID, Status: StatusSynthesisFailed, Err: err}
	}

	filename := AudioFilename(cardID)

	// An asset left behind by a prior interrupted run is reused rather
	// than overwritten; the field still gets its marker below, closing
	// the gap where an upload succeeded but the field patch did not.
	exists, err := p.media.MediaExists(ctx, filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: media existence check failed for %s: %v\n", filename, err)
		exists = false
	}
	if exists {
		fmt.Printf("  Media file %s already exists, skipping upload\n", filename)
	} else {
		if err := p.media.StoreMedia(ctx, filename, audioData); err != nil {
			fmt.Fprintf(os.Stderr, "  Error uploading %s: %v\n", filename, err)
			return Outcome{CardID: cardID, Status: StatusFailed, Err: err}
		}
		fmt.Printf("  Uploaded %s (%d bytes)\n", filename, len(audioData))
	}

	// Capture the due value before the field update makes the card look
	// new to the scheduler. A failed capture does not block annotation,
	// it just means the schedule position cannot be put back.
	due, captureErr := p.preserver.Capture(ctx, cardID)

	updated := AppendMarker(fieldText, filename)
	if err := p.collection.UpdateNoteField(ctx, note.NoteID, p.questionField, updated); err != nil {
		fmt.Fprintf(os.Stderr, "  Error updating field %q for note %d: %v\n", p.questionField, note.NoteID, err)
		return Outcome{CardID: cardID, Status: StatusFailed, Err: err}
	}

	// Keep the prefetched note in sync so sibling cards of the same
	// note see the marker later in this run instead of appending a
	// second one.
	if field, ok := note.Fields[p.questionField]; ok {
		field.Value = updated
		note.Fields[p.questionField] = field
	}

	if captureErr != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v; schedule position not restored\n", captureErr)
		return Outcome{CardID: cardID, Status: StatusDueFetchFailed, Err: captureErr}
	}

	if err := p.preserver.Restore(ctx, cardID, due); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
		return Outcome{CardID: cardID, Status: StatusDueRestoreFailed, Err: err}
	}

	return Outcome{CardID: cardID, Status: StatusAnnotated}
}
