// Package processor contains the core annotation logic. It decides
// which cards in a deck still need audio for their question field,
// synthesizes and attaches it exactly once per card, and restores any
// scheduling state disturbed by the field update. This package serves
// as the main coordinator between the AnkiConnect client and the
// speech synthesis providers.
package processor
