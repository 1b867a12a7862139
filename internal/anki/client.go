package anki

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultConnectURL is the default AnkiConnect endpoint
	DefaultConnectURL = "http://localhost:8765"

	// DefaultModelName is the default Anki note type used for mined cards
	DefaultModelName = "vocabsieve-notes"

	connectVersion = 6
	connectTimeout = 15 * time.Second
)

// Card represents a single mined flashcard before it is turned into an
// AnkiConnect note or an APKG entry
type Card struct {
	Sentence   string   // The mined sentence
	Word       string   // The unfamiliar word or phrase (may be empty)
	Definition string   // Generated in-context explanation
	Tags       []string // Parsed tags
	ImageFile  string   // Path to image file (optional)
	AudioFile  string   // Path to audio file (optional)
}

// StoreError is an error reported by Anki itself, e.g. a rejected duplicate.
// Its message is surfaced to the user verbatim.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// Client talks to a locally running Anki instance via the AnkiConnect
// add-on. All calls share a circuit breaker so that a dead Anki instance
// fails fast instead of hanging the UI on every commit.
type Client struct {
	url        string
	modelName  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new AnkiConnect client
func NewClient(url, modelName string) *Client {
	if url == "" {
		url = DefaultConnectURL
	}
	if modelName == "" {
		modelName = DefaultModelName
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ankiconnect",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		url:        url,
		modelName:  modelName,
		httpClient: &http.Client{Timeout: connectTimeout},
		breaker:    breaker,
	}
}

// URL returns the configured AnkiConnect endpoint
func (c *Client) URL() string {
	return c.url
}

// connectRequest is the AnkiConnect JSON envelope
type connectRequest struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params,omitempty"`
}

// connectResponse is the AnkiConnect response envelope
type connectResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Note is the wire-level AnkiConnect note
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    NoteFields        `json:"fields"`
	Tags      []string          `json:"tags"`
	Options   NoteOptions       `json:"options"`
	Picture   []MediaAttachment `json:"picture,omitempty"`
	Audio     []MediaAttachment `json:"audio,omitempty"`
}

// NoteFields holds the named fields of the note type
type NoteFields struct {
	Sentence   string `json:"Sentence"`
	Word       string `json:"Word"`
	Definition string `json:"Definition"`
	Image      string `json:"Image"`
	Audio      string `json:"Audio"`
}

// NoteOptions holds per-note store options
type NoteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"`
}

// MediaAttachment embeds a media file into a note, targeted at a field
type MediaAttachment struct {
	Data     string   `json:"data"` // base64-encoded file content
	Filename string   `json:"filename"`
	Fields   []string `json:"fields"`
}

// EnsureDeck creates the deck if it does not exist yet. Creating an
// existing deck is a no-op at the protocol level.
func (c *Client) EnsureDeck(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("deck name cannot be empty")
	}

	params := map[string]string{"deck": name}
	if _, err := c.invoke(ctx, "createDeck", params); err != nil {
		return fmt.Errorf("failed to create deck %q: %w", name, err)
	}
	return nil
}

// AddCard ensures the deck exists, then adds the card as a new note.
// Duplicate detection is left entirely to Anki (allowDuplicate is always
// false). An unreadable media file fails the whole commit before any
// addNote call is made.
func (c *Client) AddCard(ctx context.Context, card Card, deckName string) error {
	note, err := c.BuildNote(card, deckName)
	if err != nil {
		return err
	}

	if err := c.EnsureDeck(ctx, deckName); err != nil {
		return err
	}

	params := map[string]*Note{"note": note}
	if _, err := c.invoke(ctx, "addNote", params); err != nil {
		return err
	}
	return nil
}

// BuildNote constructs the wire-level note from a card. Media files are
// read and embedded here; a read failure aborts note construction so no
// partial note with a broken reference is ever sent.
func (c *Client) BuildNote(card Card, deckName string) (*Note, error) {
	note := &Note{
		DeckName:  deckName,
		ModelName: c.modelName,
		Fields: NoteFields{
			Sentence:   card.Sentence,
			Word:       card.Word,
			Definition: card.Definition,
		},
		Tags:    card.Tags,
		Options: NoteOptions{AllowDuplicate: false},
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if card.ImageFile != "" {
		attachment, err := readAttachment(card.ImageFile, "Image")
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		note.Picture = []MediaAttachment{attachment}
	}

	if card.AudioFile != "" {
		attachment, err := readAttachment(card.AudioFile, "Audio")
		if err != nil {
			return nil, fmt.Errorf("failed to read audio: %w", err)
		}
		note.Audio = []MediaAttachment{attachment}
	}

	return note, nil
}

// readAttachment reads a media file and encodes it for embedding
func readAttachment(path, field string) (MediaAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MediaAttachment{}, err
	}

	return MediaAttachment{
		Data:     base64.StdEncoding.EncodeToString(data),
		Filename: filepath.Base(path),
		Fields:   []string{field},
	}, nil
}

// Ping checks whether AnkiConnect is reachable
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.invoke(ctx, "version", nil); err != nil {
		return fmt.Errorf("AnkiConnect not reachable at %s: %w", c.url, err)
	}
	return nil
}

// invoke posts a single AnkiConnect action through the circuit breaker
func (c *Client) invoke(ctx context.Context, action string, params interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(connectRequest{
		Action:  action,
		Version: connectVersion,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	// Only transport-level failures count toward the breaker; a store-level
	// error (e.g. duplicate rejection) is a healthy protocol exchange.
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, payload)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, fmt.Errorf("Anki appears to be down (too many failed calls); check that Anki is running with AnkiConnect")
		}
		return nil, err
	}

	envelope := result.(connectResponse)
	if envelope.Error != nil && *envelope.Error != "" {
		return nil, &StoreError{Message: *envelope.Error}
	}

	return envelope.Result, nil
}

// post sends the envelope and decodes the response envelope
func (c *Client) post(ctx context.Context, payload []byte) (connectResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return connectResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectResponse{}, fmt.Errorf("AnkiConnect request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectResponse{}, fmt.Errorf("failed to read AnkiConnect response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return connectResponse{}, fmt.Errorf("AnkiConnect returned HTTP %d", resp.StatusCode)
	}

	var envelope connectResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return connectResponse{}, fmt.Errorf("failed to decode AnkiConnect response: %w", err)
	}

	return envelope, nil
}
