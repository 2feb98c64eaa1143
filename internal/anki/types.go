package anki

// Card is a schedulable review unit as returned by cardsInfo.
// It belongs to exactly one note; Due is the opaque scheduling
// position used by the spaced-repetition algorithm.
type Card struct {
	CardID int64 `json:"cardId"`
	NoteID int64 `json:"note"`
	Due    int64 `json:"due"`
}

// Field is a single note field value. Order is the field's position
// in the note type.
type Field struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Note is the content record shared by one or more cards. Updating a
// note field is visible on every card that belongs to the note.
type Note struct {
	NoteID int64            `json:"noteId"`
	Fields map[string]Field `json:"fields"`
}

// FieldValue returns the value of the named field, or "" if the note
// has no such field.
func (n *Note) FieldValue(name string) string {
	return n.Fields[name].Value
}
