package processor

import (
	"fmt"
	"strings"
)

// soundMarkerPrefix is Anki's literal media reference syntax. Its
// presence in a field is the only persisted indicator that a card has
// been processed; there is no separate ledger.
const soundMarkerPrefix = "[sound:"

// AudioFilename derives the deterministic asset filename for a card.
// The name is keyed on the card id, not the audio content, so repeated
// runs address the same asset.
func AudioFilename(cardID int64) string {
	return fmt.Sprintf("card_%d.mp3", cardID)
}

// HasAnnotationMarker reports whether a field value already carries a
// sound marker anywhere in its text.
func HasAnnotationMarker(fieldText string) bool {
	return strings.Contains(fieldText, soundMarkerPrefix)
}

// AppendMarker computes the new whole field value: the existing text
// plus a newline-separated sound marker. AnkiConnect only supports
// whole-value replaces, so the caller pushes this complete value.
func AppendMarker(fieldText, filename string) string {
	return fieldText + "\n" + soundMarkerPrefix + filename + "]"
}
