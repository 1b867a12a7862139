package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"codeberg.org/snonux/sentencemine/internal/anki"
)

// State represents the lifecycle stage of the current draft
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateEnriching
	StateReady
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateEditing:
		return "Editing"
	case StateEnriching:
		return "Enriching"
	case StateReady:
		return "Ready"
	case StateCommitting:
		return "Committing"
	default:
		return "Unknown"
	}
}

// ValidationError reports a missing required field before a state
// transition. It is synchronous and non-fatal; no state change and no
// network call happens when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Draft is the in-progress, not-yet-committed flashcard content.
// Media paths marked as owned are temporary files whose lifetime is
// tied to the draft: they are deleted when replaced or when the draft
// is reset.
type Draft struct {
	Sentence  string
	Word      string
	TagSource string // Raw comma-separated tag input
	Meaning   string
	ImagePath string
	AudioPath string

	imageOwned bool
	audioOwned bool
}

// Enrichment is the combined result of one enrichment run. It is
// produced as a whole and applied to the draft atomically so the UI
// never observes a half-updated draft.
type Enrichment struct {
	Meaning   string
	ImagePath string // Empty when image synthesis failed or was skipped
	AudioPath string // Empty when speech synthesis failed or was skipped
}

// MeaningGenerator produces an in-context explanation for a word.
// The meaning fetch is mandatory: its failure fails the enrichment.
type MeaningGenerator interface {
	Explain(ctx context.Context, word, sentence, source string) (string, error)
}

// ImageGenerator synthesizes an illustrative image and returns the path
// of the file it was written to. Best-effort: failures degrade to "no
// image" and never abort the enrichment.
type ImageGenerator interface {
	Generate(ctx context.Context, word, sentence string) (string, error)
}

// SpeechGenerator synthesizes a spoken-audio clip for a text and
// returns the path of the file it was written to. Best-effort like
// ImageGenerator.
type SpeechGenerator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// CardStore persists a finished card
type CardStore interface {
	AddCard(ctx context.Context, card anki.Card, deckName string) error
}

// Pipeline sequences enrichment and commit over a single active draft.
// Only one enrichment or commit may be in flight at a time; the second
// caller gets an error instead of a queued operation.
type Pipeline struct {
	meaning MeaningGenerator
	images  ImageGenerator // nil disables image synthesis
	speech  SpeechGenerator // nil disables speech synthesis
	store   CardStore

	deckName string

	mu       sync.Mutex
	state    State
	inFlight bool
	draft    Draft
}

// New creates a pipeline. The meaning generator and the store are
// required; the media generators may be nil to skip that enrichment.
func New(meaning MeaningGenerator, images ImageGenerator, speech SpeechGenerator, store CardStore, deckName string) *Pipeline {
	return &Pipeline{
		meaning:  meaning,
		images:   images,
		speech:   speech,
		store:    store,
		deckName: deckName,
		state:    StateEmpty,
	}
}

// State returns the current draft state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Draft returns a copy of the current draft
func (p *Pipeline) Draft() Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// SetSentence updates the draft sentence
func (p *Pipeline) SetSentence(sentence string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft.Sentence = sentence
	p.updateEditingState()
}

// SetWord updates the unfamiliar word or phrase
func (p *Pipeline) SetWord(word string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft.Word = word
	p.updateEditingState()
}

// SetTagSource updates the raw comma-separated tag input
func (p *Pipeline) SetTagSource(source string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft.TagSource = source
	p.updateEditingState()
}

// SetMeaning updates the meaning text, e.g. after the user edited the
// generated explanation
func (p *Pipeline) SetMeaning(meaning string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft.Meaning = meaning
	p.updateEditingState()
}

// updateEditingState flips between Empty and Editing while no operation
// is running. Ready is sticky: editing enrichment results keeps the
// draft committable.
func (p *Pipeline) updateEditingState() {
	if p.inFlight || p.state == StateReady {
		return
	}
	if p.draftIsEmpty() {
		p.state = StateEmpty
	} else {
		p.state = StateEditing
	}
}

func (p *Pipeline) draftIsEmpty() bool {
	d := &p.draft
	return d.Sentence == "" && d.Word == "" && d.TagSource == "" &&
		d.Meaning == "" && d.ImagePath == "" && d.AudioPath == ""
}

// AttachImage sets the draft image. When owned is true the file is a
// temporary owned by the draft and will be deleted when replaced or on
// reset. A previously owned image file is released first.
func (p *Pipeline) AttachImage(path string, owned bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attachImageLocked(path, owned)
}

func (p *Pipeline) attachImageLocked(path string, owned bool) {
	if p.draft.imageOwned && p.draft.ImagePath != "" && p.draft.ImagePath != path {
		os.Remove(p.draft.ImagePath)
	}
	p.draft.ImagePath = path
	p.draft.imageOwned = owned && path != ""
}

// RemoveImage clears the draft image, releasing an owned file
func (p *Pipeline) RemoveImage() {
	p.AttachImage("", false)
}

// AttachAudio sets the draft audio, with the same ownership rules as
// AttachImage
func (p *Pipeline) AttachAudio(path string, owned bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attachAudioLocked(path, owned)
}

func (p *Pipeline) attachAudioLocked(path string, owned bool) {
	if p.draft.audioOwned && p.draft.AudioPath != "" && p.draft.AudioPath != path {
		os.Remove(p.draft.AudioPath)
	}
	p.draft.AudioPath = path
	p.draft.audioOwned = owned && path != ""
}

// RemoveAudio clears the draft audio, releasing an owned file
func (p *Pipeline) RemoveAudio() {
	p.AttachAudio("", false)
}

// FetchEnrichment runs the meaning, image and audio generation calls
// for the current draft. The meaning call is mandatory: its failure
// fails the whole fetch and leaves the draft untouched. The media calls
// are independent and best-effort; either may fail without affecting
// the other or the meaning. On success all results are applied to the
// draft in one step and the draft becomes Ready.
func (p *Pipeline) FetchEnrichment(ctx context.Context) (Enrichment, error) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return Enrichment{}, fmt.Errorf("another operation is already in progress")
	}

	sentence := strings.TrimSpace(p.draft.Sentence)
	if sentence == "" {
		p.mu.Unlock()
		return Enrichment{}, &ValidationError{Field: "sentence", Reason: "cannot be empty"}
	}

	word := strings.TrimSpace(p.draft.Word)
	source := strings.TrimSpace(p.draft.TagSource)

	previousState := p.state
	p.state = StateEnriching
	p.inFlight = true
	p.mu.Unlock()

	meaning, err := p.meaning.Explain(ctx, word, sentence, source)
	if err != nil {
		p.mu.Lock()
		p.state = previousState
		p.inFlight = false
		p.mu.Unlock()
		return Enrichment{}, fmt.Errorf("failed to fetch meaning: %w", err)
	}

	result := Enrichment{Meaning: strings.TrimSpace(meaning)}

	// Failures below degrade to "no media" instead of failing the fetch
	if p.images != nil {
		if path, err := p.images.Generate(ctx, word, sentence); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: image synthesis failed: %v\n", err)
		} else {
			result.ImagePath = path
		}
	}

	speechText := word
	if speechText == "" {
		speechText = sentence
	}
	if p.speech != nil {
		if path, err := p.speech.Generate(ctx, speechText); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: speech synthesis failed: %v\n", err)
		} else {
			result.AudioPath = path
		}
	}

	// Apply all three outcomes in one step
	p.mu.Lock()
	p.draft.Meaning = result.Meaning
	if result.ImagePath != "" {
		p.attachImageLocked(result.ImagePath, true)
	}
	if result.AudioPath != "" {
		p.attachAudioLocked(result.AudioPath, true)
	}
	p.state = StateReady
	p.inFlight = false
	p.mu.Unlock()

	return result, nil
}

// CommitCard persists the current draft as a note. On success the draft
// is fully reset, including deletion of draft-owned temporary media
// files. On failure the draft is preserved for a user-initiated retry.
func (p *Pipeline) CommitCard(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return fmt.Errorf("another operation is already in progress")
	}

	sentence := strings.TrimSpace(p.draft.Sentence)
	meaning := strings.TrimSpace(p.draft.Meaning)
	if sentence == "" {
		p.mu.Unlock()
		return &ValidationError{Field: "sentence", Reason: "cannot be empty"}
	}
	if meaning == "" {
		p.mu.Unlock()
		return &ValidationError{Field: "meaning", Reason: "cannot be empty"}
	}

	card := anki.Card{
		Sentence:   sentence,
		Word:       strings.TrimSpace(p.draft.Word),
		Definition: meaning,
		Tags:       ParseTags(p.draft.TagSource),
		ImageFile:  p.draft.ImagePath,
		AudioFile:  p.draft.AudioPath,
	}

	p.state = StateCommitting
	p.inFlight = true
	p.mu.Unlock()

	err := p.store.AddCard(ctx, card, p.deckName)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false

	if err != nil {
		p.state = StateReady
		return err
	}

	p.resetLocked()
	return nil
}

// Reset discards the current draft, releasing any owned media files
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

func (p *Pipeline) resetLocked() {
	if p.draft.imageOwned && p.draft.ImagePath != "" {
		os.Remove(p.draft.ImagePath)
	}
	if p.draft.audioOwned && p.draft.AudioPath != "" {
		os.Remove(p.draft.AudioPath)
	}
	p.draft = Draft{}
	p.state = StateEmpty
}
