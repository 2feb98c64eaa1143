package processor

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/ankivoice/internal/testutil"
)

func TestPreserverRoundTrip(t *testing.T) {
	collection := testutil.NewFakeCollection()
	collection.AddCard("Spanish", 101, 501, 42, map[string]string{"Front": "Hola"})

	preserver := NewPreserver(collection)
	ctx := context.Background()

	due, err := preserver.Capture(ctx, 101)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if due != 42 {
		t.Errorf("Capture() = %d, want 42", due)
	}

	// Something resets the schedule in between
	collection.Cards[101].Due = 0

	if err := preserver.Restore(ctx, 101, due); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := collection.Cards[101].Due; got != 42 {
		t.Errorf("due after restore = %d, want 42", got)
	}
}

func TestPreserverErrors(t *testing.T) {
	tests := []struct {
		name    string
		errKey  string
		capture bool
	}{
		{
			name:    "capture propagates read errors",
			errKey:  "cardDue",
			capture: true,
		},
		{
			name:   "restore propagates write errors",
			errKey: "setCardDue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection := testutil.NewFakeCollection()
			collection.AddCard("Spanish", 101, 501, 42, map[string]string{"Front": "Hola"})
			collection.Errors[tt.errKey] = errors.New("injected")

			preserver := NewPreserver(collection)
			ctx := context.Background()

			if tt.capture {
				if _, err := preserver.Capture(ctx, 101); err == nil {
					t.Errorf("Capture() error = nil, want injected failure")
				}
			} else {
				if err := preserver.Restore(ctx, 101, 42); err == nil {
					t.Errorf("Restore() error = nil, want injected failure")
				}
			}
		})
	}
}

func TestPreserverUnknownCard(t *testing.T) {
	preserver := NewPreserver(testutil.NewFakeCollection())

	if _, err := preserver.Capture(context.Background(), 999); err == nil {
		t.Errorf("Capture() error = nil for unknown card")
	}
}
