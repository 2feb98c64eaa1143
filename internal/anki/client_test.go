package anki

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeConnect serves a canned AnkiConnect endpoint and records the
// request envelopes it receives.
type fakeConnect struct {
	t        *testing.T
	requests []request
	results  map[string]any    // action -> result payload
	errors   map[string]string // action -> error string
}

type recordedRequest struct {
	Action  string          `json:"action"`
	Version int             `json:"version"`
	Params  json.RawMessage `json:"params"`
}

func newFakeConnect(t *testing.T) (*fakeConnect, *Client) {
	f := &fakeConnect{
		t:       t,
		results: make(map[string]any),
		errors:  make(map[string]string),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		var recorded recordedRequest
		body := json.NewDecoder(r.Body)
		if err := body.Decode(&recorded); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		req.Action = recorded.Action
		req.Version = recorded.Version
		if len(recorded.Params) > 0 {
			var params any
			json.Unmarshal(recorded.Params, &params)
			req.Params = params
		}
		f.requests = append(f.requests, req)

		if recorded.Version != protocolVersion {
			t.Errorf("request version = %d, want %d", recorded.Version, protocolVersion)
		}

		resp := map[string]any{"result": f.results[recorded.Action], "error": nil}
		if msg, ok := f.errors[recorded.Action]; ok {
			resp["error"] = msg
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	return f, NewClient(server.URL)
}

func (f *fakeConnect) lastParams() map[string]any {
	if len(f.requests) == 0 {
		f.t.Fatalf("no requests recorded")
	}
	params, _ := f.requests[len(f.requests)-1].Params.(map[string]any)
	return params
}

func TestDeckNames(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.results["deckNames"] = []string{"Spanish", "Default"}

	decks, err := client.DeckNames(context.Background())
	if err != nil {
		t.Fatalf("DeckNames() error = %v", err)
	}
	if len(decks) != 2 || decks[0] != "Spanish" {
		t.Errorf("DeckNames() = %v, want [Spanish Default]", decks)
	}
}

func TestFindCardsSendsQuery(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.results["findCards"] = []int64{101, 102}

	ids, err := client.FindCards(context.Background(), `deck:"Spanish"`)
	if err != nil {
		t.Fatalf("FindCards() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != 101 || ids[1] != 102 {
		t.Errorf("FindCards() = %v, want [101 102]", ids)
	}
	if query := fake.lastParams()["query"]; query != `deck:"Spanish"` {
		t.Errorf("query param = %v, want deck:\"Spanish\"", query)
	}
}

func TestCardsInfoDecodesWireShape(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.results["cardsInfo"] = []map[string]any{
		{"cardId": 101, "note": 501, "due": 7},
	}

	cards, err := client.CardsInfo(context.Background(), []int64{101})
	if err != nil {
		t.Fatalf("CardsInfo() error = %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	card := cards[0]
	if card.CardID != 101 || card.NoteID != 501 || card.Due != 7 {
		t.Errorf("card = %+v, want {101 501 7}", card)
	}
}

func TestCardsInfoSkipsRequestForNoIDs(t *testing.T) {
	fake, client := newFakeConnect(t)

	cards, err := client.CardsInfo(context.Background(), nil)
	if err != nil {
		t.Fatalf("CardsInfo() error = %v", err)
	}
	if cards != nil {
		t.Errorf("CardsInfo(nil) = %v, want nil", cards)
	}
	if len(fake.requests) != 0 {
		t.Errorf("request sent for empty id list")
	}
}

func TestNotesInfoDecodesFields(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.results["notesInfo"] = []map[string]any{
		{
			"noteId": 501,
			"fields": map[string]any{
				"Front": map[string]any{"value": "<b>Hola</b>", "order": 0},
				"Back":  map[string]any{"value": "Hello", "order": 1},
			},
		},
	}

	notes, err := client.NotesInfo(context.Background(), []int64{501})
	if err != nil {
		t.Fatalf("NotesInfo() error = %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("len(notes) = %d, want 1", len(notes))
	}
	if got := notes[0].FieldValue("Front"); got != "<b>Hola</b>" {
		t.Errorf("Front = %q, want <b>Hola</b>", got)
	}
}

func TestMediaExists(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.results["mediaFiles"] = []string{"card_100.mp3", "card_101.mp3"}

	tests := []struct {
		filename string
		want     bool
	}{
		{"card_101.mp3", true},
		{"card_999.mp3", false},
	}

	for _, tt := range tests {
		got, err := client.MediaExists(context.Background(), tt.filename)
		if err != nil {
			t.Fatalf("MediaExists(%q) error = %v", tt.filename, err)
		}
		if got != tt.want {
			t.Errorf("MediaExists(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestStoreMediaEncodesBase64(t *testing.T) {
	fake, client := newFakeConnect(t)
	data := []byte{0xFF, 0xFB, 0x90, 0x00}

	if err := client.StoreMedia(context.Background(), "card_101.mp3", data); err != nil {
		t.Fatalf("StoreMedia() error = %v", err)
	}

	params := fake.lastParams()
	if params["filename"] != "card_101.mp3" {
		t.Errorf("filename param = %v, want card_101.mp3", params["filename"])
	}
	encoded, _ := params["data"].(string)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("data param is not valid base64: %v", err)
	}
	if string(decoded) != string(data) {
		t.Errorf("decoded data = %v, want %v", decoded, data)
	}
}

func TestUpdateNoteFieldWireShape(t *testing.T) {
	fake, client := newFakeConnect(t)

	err := client.UpdateNoteField(context.Background(), 501, "Front", "Hola\n[sound:card_101.mp3]")
	if err != nil {
		t.Fatalf("UpdateNoteField() error = %v", err)
	}

	note, _ := fake.lastParams()["note"].(map[string]any)
	if note == nil {
		t.Fatalf("note param missing")
	}
	if id, _ := note["id"].(float64); int64(id) != 501 {
		t.Errorf("note id = %v, want 501", note["id"])
	}
	fields, _ := note["fields"].(map[string]any)
	if fields["Front"] != "Hola\n[sound:card_101.mp3]" {
		t.Errorf("fields = %v, want full replacement value", fields)
	}
}

func TestCardDueAndSetCardDue(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.results["cardsInfo"] = []map[string]any{
		{"cardId": 101, "note": 501, "due": 7},
	}

	due, err := client.CardDue(context.Background(), 101)
	if err != nil {
		t.Fatalf("CardDue() error = %v", err)
	}
	if due != 7 {
		t.Errorf("CardDue() = %d, want 7", due)
	}

	if err := client.SetCardDue(context.Background(), 101, 7); err != nil {
		t.Fatalf("SetCardDue() error = %v", err)
	}
	params := fake.lastParams()
	if card, _ := params["card"].(float64); int64(card) != 101 {
		t.Errorf("card param = %v, want 101", params["card"])
	}
	if d, _ := params["due"].(float64); int64(d) != 7 {
		t.Errorf("due param = %v, want 7", params["due"])
	}
}

func TestRemoteErrorMapping(t *testing.T) {
	fake, client := newFakeConnect(t)
	fake.errors["deckNames"] = "collection is not available"

	_, err := client.DeckNames(context.Background())
	if err == nil {
		t.Fatalf("DeckNames() error = nil, want remote error")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error %v is not a *RemoteError", err)
	}
	if remoteErr.Action != "deckNames" {
		t.Errorf("RemoteError.Action = %q, want deckNames", remoteErr.Action)
	}
	if remoteErr.Message != "collection is not available" {
		t.Errorf("RemoteError.Message = %q", remoteErr.Message)
	}
}

func TestTransportErrorIsNotRemote(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // nothing listens here

	_, err := client.DeckNames(context.Background())
	if err == nil {
		t.Fatalf("DeckNames() error = nil, want transport failure")
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		t.Errorf("transport failure classified as remote error: %v", err)
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := client.DeckNames(ctx); err == nil {
			t.Fatalf("DeckNames() call %d succeeded against a failing server", i)
		}
	}

	// After five consecutive failures the breaker fails fast instead of
	// hitting the endpoint again.
	if hits >= 10 {
		t.Errorf("server hit %d times, want breaker to stop the later calls", hits)
	}
}
