package processor

import (
	"context"

	"codeberg.org/snonux/ankivoice/internal/anki"
)

// Collection is the card and note surface of the study collection.
// *anki.Client implements it; tests substitute a fake.
type Collection interface {
	FindCards(ctx context.Context, query string) ([]int64, error)
	CardsInfo(ctx context.Context, ids []int64) ([]anki.Card, error)
	NotesInfo(ctx context.Context, ids []int64) ([]anki.Note, error)
	UpdateNoteField(ctx context.Context, noteID int64, field, value string) error
}

// MediaStore is the asset store surface: existence check and upload
// for binary assets identified by filename.
type MediaStore interface {
	MediaExists(ctx context.Context, filename string) (bool, error)
	StoreMedia(ctx context.Context, filename string, data []byte) error
}

// Scheduler reads and writes a card's due value.
type Scheduler interface {
	CardDue(ctx context.Context, cardID int64) (int64, error)
	SetCardDue(ctx context.Context, cardID, due int64) error
}
