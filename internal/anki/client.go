package anki

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultURL is where AnkiConnect listens on a stock install.
	DefaultURL = "http://localhost:8765"

	// protocolVersion is the AnkiConnect API version sent with every request.
	protocolVersion = 6

	requestTimeout = 30 * time.Second
)

// Client talks to a locally running AnkiConnect instance.
type Client struct {
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// request is the AnkiConnect wire envelope.
type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// response is the AnkiConnect wire envelope for results.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// NewClient creates a client for the given AnkiConnect URL. An empty
// URL selects DefaultURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "anki-connect",
			Timeout: 10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// invoke sends a single action to AnkiConnect and returns the raw
// result. A non-null error field in the response becomes a
// *RemoteError; everything else is a transport failure.
func (c *Client) invoke(ctx context.Context, action string, params any) (json.RawMessage, error) {
	payload, err := json.Marshal(request{
		Action:  action,
		Version: protocolVersion,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}

		var decoded response
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, fmt.Errorf("malformed response: %w", err)
		}
		return decoded, nil
	})
	if err != nil {
		return nil, fmt.Errorf("anki-connect request %q failed: %w", action, err)
	}

	decoded := result.(response)
	if decoded.Error != nil && *decoded.Error != "" {
		return nil, &RemoteError{Action: action, Message: *decoded.Error}
	}
	return decoded.Result, nil
}

// DeckNames returns the names of all decks in the collection.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	raw, err := c.invoke(ctx, "deckNames", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("failed to decode deck names: %w", err)
	}
	return names, nil
}

// FindCards returns the ids of all cards matching an Anki search query,
// e.g. `deck:"Spanish"`.
func (c *Client) FindCards(ctx context.Context, query string) ([]int64, error) {
	raw, err := c.invoke(ctx, "findCards", map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode card ids: %w", err)
	}
	return ids, nil
}

// CardsInfo fetches card records for the given ids.
func (c *Client) CardsInfo(ctx context.Context, ids []int64) ([]Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw, err := c.invoke(ctx, "cardsInfo", map[string]any{"cards": ids})
	if err != nil {
		return nil, err
	}
	var cards []Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode card info: %w", err)
	}
	return cards, nil
}

// NotesInfo fetches note records for the given ids.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw, err := c.invoke(ctx, "notesInfo", map[string]any{"notes": ids})
	if err != nil {
		return nil, err
	}
	var notes []Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode note info: %w", err)
	}
	return notes, nil
}

// MediaExists reports whether a media file with the given filename is
// already present in the collection's asset store.
func (c *Client) MediaExists(ctx context.Context, filename string) (bool, error) {
	raw, err := c.invoke(ctx, "mediaFiles", nil)
	if err != nil {
		return false, err
	}
	var files []string
	if err := json.Unmarshal(raw, &files); err != nil {
		return false, fmt.Errorf("failed to decode media file list: %w", err)
	}
	for _, f := range files {
		if f == filename {
			return true, nil
		}
	}
	return false, nil
}

// StoreMedia uploads a media file into the collection's asset store.
// Data is transferred base64-encoded per the AnkiConnect protocol.
func (c *Client) StoreMedia(ctx context.Context, filename string, data []byte) error {
	_, err := c.invoke(ctx, "storeMediaFile", map[string]any{
		"filename": filename,
		"data":     base64.StdEncoding.EncodeToString(data),
	})
	return err
}

// UpdateNoteField replaces the full value of a single note field. This
// is a whole-value replace: the caller sends the complete new value,
// not a diff.
func (c *Client) UpdateNoteField(ctx context.Context, noteID int64, field, value string) error {
	_, err := c.invoke(ctx, "updateNoteFields", map[string]any{
		"note": map[string]any{
			"id": noteID,
			"fields": map[string]string{
				field: value,
			},
		},
	})
	return err
}

// CardDue reads the current due value of a single card.
func (c *Client) CardDue(ctx context.Context, cardID int64) (int64, error) {
	cards, err := c.CardsInfo(ctx, []int64{cardID})
	if err != nil {
		return 0, err
	}
	if len(cards) == 0 {
		return 0, fmt.Errorf("card %d not found", cardID)
	}
	return cards[0].Due, nil
}

// SetCardDue writes a card's due value back, restoring its position in
// the review schedule.
func (c *Client) SetCardDue(ctx context.Context, cardID, due int64) error {
	_, err := c.invoke(ctx, "updateCard", map[string]any{
		"card": cardID,
		"due":  due,
	})
	return err
}
