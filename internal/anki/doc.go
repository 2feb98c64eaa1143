// Package anki implements a client for the AnkiConnect control-plane
// protocol (JSON over local HTTP). It exposes the typed actions the
// annotation pipeline needs: deck listing, card/note lookup, media
// storage and card scheduling updates.
package anki
