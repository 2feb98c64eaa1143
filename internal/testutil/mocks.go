// Package testutil provides hand-written fakes for the collection,
// media store and synthesizer interfaces used by the processor tests.
package testutil

import (
	"context"
	"fmt"

	"codeberg.org/snonux/ankivoice/internal/anki"
)

// FakeCollection is an in-memory stand-in for the AnkiConnect client.
// It implements the processor's Collection, MediaStore and Scheduler
// interfaces and records every call it serves.
type FakeCollection struct {
	Decks map[string][]int64   // deck name -> card ids
	Cards map[int64]*anki.Card // card id -> card
	Notes map[int64]*anki.Note // note id -> note
	Media map[string][]byte    // filename -> stored bytes
	Calls []string

	// Errors maps a call label ("findCards", "cardsInfo", "notesInfo",
	// "updateNoteFields", "cardDue", "setCardDue", "mediaExists",
	// "storeMedia") to an error to inject.
	Errors map[string]error
}

// NewFakeCollection creates an empty fake ready for population.
func NewFakeCollection() *FakeCollection {
	return &FakeCollection{
		Decks:  make(map[string][]int64),
		Cards:  make(map[int64]*anki.Card),
		Notes:  make(map[int64]*anki.Note),
		Media:  make(map[string][]byte),
		Errors: make(map[string]error),
	}
}

// AddCard registers a card, its owning note and the deck membership in
// one step.
func (f *FakeCollection) AddCard(deck string, cardID, noteID, due int64, fields map[string]string) {
	f.Decks[deck] = append(f.Decks[deck], cardID)
	f.Cards[cardID] = &anki.Card{CardID: cardID, NoteID: noteID, Due: due}

	if _, ok := f.Notes[noteID]; !ok {
		noteFields := make(map[string]anki.Field, len(fields))
		order := 0
		for name, value := range fields {
			noteFields[name] = anki.Field{Value: value, Order: order}
			order++
		}
		f.Notes[noteID] = &anki.Note{NoteID: noteID, Fields: noteFields}
	}
}

func (f *FakeCollection) record(call string) error {
	f.Calls = append(f.Calls, call)
	return f.Errors[call]
}

// FindCards returns the ids of all cards in a deck query. Only the
// `deck:"<name>"` syntax is understood.
func (f *FakeCollection) FindCards(ctx context.Context, query string) ([]int64, error) {
	if err := f.record("findCards"); err != nil {
		return nil, err
	}
	for deck, ids := range f.Decks {
		if query == fmt.Sprintf("deck:%q", deck) {
			return append([]int64(nil), ids...), nil
		}
	}
	return nil, nil
}

// CardsInfo returns card records for the given ids in request order.
func (f *FakeCollection) CardsInfo(ctx context.Context, ids []int64) ([]anki.Card, error) {
	if err := f.record("cardsInfo"); err != nil {
		return nil, err
	}
	var cards []anki.Card
	for _, id := range ids {
		if card, ok := f.Cards[id]; ok {
			cards = append(cards, *card)
		}
	}
	return cards, nil
}

// NotesInfo returns note records for the given ids.
func (f *FakeCollection) NotesInfo(ctx context.Context, ids []int64) ([]anki.Note, error) {
	if err := f.record("notesInfo"); err != nil {
		return nil, err
	}
	var notes []anki.Note
	for _, id := range ids {
		if note, ok := f.Notes[id]; ok {
			copied := anki.Note{NoteID: note.NoteID, Fields: make(map[string]anki.Field, len(note.Fields))}
			for name, field := range note.Fields {
				copied.Fields[name] = field
			}
			notes = append(notes, copied)
		}
	}
	return notes, nil
}

// UpdateNoteField replaces a note field value. As in Anki itself, the
// update resets the due value of every card owned by the note.
func (f *FakeCollection) UpdateNoteField(ctx context.Context, noteID int64, field, value string) error {
	if err := f.record("updateNoteFields"); err != nil {
		return err
	}
	note, ok := f.Notes[noteID]
	if !ok {
		return fmt.Errorf("note %d not found", noteID)
	}
	old := note.Fields[field]
	note.Fields[field] = anki.Field{Value: value, Order: old.Order}

	// Field replaces knock cards back to the front of the queue; the
	// scheduling preserver exists to undo exactly this.
	for _, card := range f.Cards {
		if card.NoteID == noteID {
			card.Due = 0
		}
	}
	return nil
}

// CardDue reads a card's due value.
func (f *FakeCollection) CardDue(ctx context.Context, cardID int64) (int64, error) {
	if err := f.record("cardDue"); err != nil {
		return 0, err
	}
	card, ok := f.Cards[cardID]
	if !ok {
		return 0, fmt.Errorf("card %d not found", cardID)
	}
	return card.Due, nil
}

// SetCardDue writes a card's due value.
func (f *FakeCollection) SetCardDue(ctx context.Context, cardID, due int64) error {
	if err := f.record("setCardDue"); err != nil {
		return err
	}
	card, ok := f.Cards[cardID]
	if !ok {
		return fmt.Errorf("card %d not found", cardID)
	}
	card.Due = due
	return nil
}

// MediaExists reports whether a filename is in the fake store.
func (f *FakeCollection) MediaExists(ctx context.Context, filename string) (bool, error) {
	if err := f.record("mediaExists"); err != nil {
		return false, err
	}
	_, ok := f.Media[filename]
	return ok, nil
}

// StoreMedia uploads bytes into the fake store.
func (f *FakeCollection) StoreMedia(ctx context.Context, filename string, data []byte) error {
	if err := f.record("storeMedia"); err != nil {
		return err
	}
	f.Media[filename] = append([]byte(nil), data...)
	return nil
}

// CountCalls returns how often the given call label was served.
func (f *FakeCollection) CountCalls(label string) int {
	n := 0
	for _, call := range f.Calls {
		if call == label {
			n++
		}
	}
	return n
}

// FakeSynthesizer is an in-memory audio.Provider. Errors maps input
// text to an injected failure; everything else yields canned MP3 data.
type FakeSynthesizer struct {
	Responses map[string][]byte
	Errors    map[string]error
	Calls     []string
}

// NewFakeSynthesizer creates an empty fake synthesizer.
func NewFakeSynthesizer() *FakeSynthesizer {
	return &FakeSynthesizer{
		Responses: make(map[string][]byte),
		Errors:    make(map[string]error),
	}
}

// Synthesize returns the canned bytes for the text.
func (f *FakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.Calls = append(f.Calls, text)
	if err, ok := f.Errors[text]; ok {
		return nil, err
	}
	if data, ok := f.Responses[text]; ok {
		return data, nil
	}
	return MP3Data(), nil
}

// Name returns the provider name.
func (f *FakeSynthesizer) Name() string { return "fake" }

// IsAvailable always succeeds.
func (f *FakeSynthesizer) IsAvailable() error { return nil }

// MP3Data returns a minimal MP3 frame header usable as canned audio.
func MP3Data() []byte {
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}
