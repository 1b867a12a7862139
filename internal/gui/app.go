package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/sentencemine/internal"
	"codeberg.org/snonux/sentencemine/internal/pipeline"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sentenceEntry *CustomMultiLineEntry
	wordEntry     *CustomEntry
	tagsEntry     *CustomEntry
	meaningEntry  *CustomMultiLineEntry
	imageDisplay  *ImageDisplay
	audioPlayer   *AudioPlayer
	statusLabel   *widget.Label
	cardsLabel    *widget.Label

	// Action buttons
	fetchButton       *ttwidget.Button
	addButton         *ttwidget.Button
	discardButton     *ttwidget.Button
	pasteButton       *ttwidget.Button
	chooseImageButton *ttwidget.Button
	removeImageButton *ttwidget.Button

	// State management
	pipeline   *pipeline.Pipeline
	cardsAdded int

	// Configuration
	config *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	Pipeline  *pipeline.Pipeline
	OutputDir string
	DeckName  string
	AutoPlay  bool
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	// Use XDG Base Directory specification for state data
	outputDir := filepath.Join(homeDir, ".local", "state", "sentencemine", "cards")

	return &Config{
		OutputDir: outputDir,
		DeckName:  "English",
		AutoPlay:  true,
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.OutputDir == "" {
			config.OutputDir = defaults.OutputDir
		}
		if config.DeckName == "" {
			config.DeckName = defaults.DeckName
		}
	}

	// Ensure output directory exists
	os.MkdirAll(config.OutputDir, 0755)

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.sentencemine")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:      myApp,
		config:   config,
		pipeline: config.Pipeline,
		ctx:      ctx,
		cancel:   cancel,
	}

	a.setupUI()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("SentenceMine v%s - Sentence Mining Flashcards", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(800, 700))

	// Sentence input with clipboard paste support
	a.sentenceEntry = NewCustomMultiLineEntry()
	a.sentenceEntry.SetPlaceHolder("Sentence with an unfamiliar word... Press Escape to exit field")
	a.sentenceEntry.Wrapping = fyne.TextWrapWord
	a.sentenceEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.sentenceEntry.OnChanged = func(text string) {
		a.pipeline.SetSentence(text)
	}

	a.wordEntry = NewCustomEntry()
	a.wordEntry.SetPlaceHolder("Unfamiliar word or phrase (optional)...")
	a.wordEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.wordEntry.OnChanged = func(text string) {
		a.pipeline.SetWord(text)
	}
	a.wordEntry.OnSubmitted = func(string) {
		a.onFetch()
		a.window.Canvas().Unfocus()
	}

	a.tagsEntry = NewCustomEntry()
	a.tagsEntry.SetPlaceHolder("Tags, comma separated (e.g. movie1, idioms)...")
	a.tagsEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.tagsEntry.OnChanged = func(text string) {
		a.pipeline.SetTagSource(text)
	}

	// Meaning display, editable so the user can touch up the explanation
	a.meaningEntry = NewCustomMultiLineEntry()
	a.meaningEntry.SetPlaceHolder("Meaning will appear here after fetching...")
	a.meaningEntry.Wrapping = fyne.TextWrapWord
	a.meaningEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.meaningEntry.OnChanged = func(text string) {
		a.pipeline.SetMeaning(text)
	}

	// Action buttons (tooltips are set after the tooltip layer is created)
	a.fetchButton = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onFetch)
	a.addButton = ttwidget.NewButtonWithIcon("", theme.ConfirmIcon(), a.onAddToAnki)
	a.addButton.Importance = widget.HighImportance
	a.discardButton = ttwidget.NewButtonWithIcon("", theme.DeleteIcon(), a.onDiscard)
	a.discardButton.Importance = widget.DangerImportance

	a.pasteButton = ttwidget.NewButtonWithIcon("", theme.ContentPasteIcon(), a.onPasteSentence)
	a.chooseImageButton = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.onChooseImage)
	a.removeImageButton = ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.onRemoveImage)

	helpButton := ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	// Display section
	a.imageDisplay = NewImageDisplay()
	a.audioPlayer = NewAudioPlayer()

	a.addButton.Disable()

	toolbar := container.NewHBox(
		a.fetchButton,
		a.addButton,
		a.discardButton,
		widget.NewSeparator(),
		a.pasteButton,
		a.chooseImageButton,
		a.removeImageButton,
		widget.NewSeparator(),
		helpButton,
	)

	inputSection := container.NewVBox(
		widget.NewLabel("Sentence:"),
		a.sentenceEntry,
		container.NewGridWithColumns(2,
			container.NewVBox(widget.NewLabel("Word:"), a.wordEntry),
			container.NewVBox(widget.NewLabel("Tags:"), a.tagsEntry),
		),
	)

	meaningContainer := container.NewBorder(
		widget.NewLabel("Meaning:"),
		nil,
		nil,
		nil,
		container.NewScroll(a.meaningEntry),
	)

	// Image and meaning share the middle area
	displaySection := container.NewHSplit(
		a.imageDisplay,
		meaningContainer,
	)
	displaySection.SetOffset(0.5)

	// Status section
	a.statusLabel = widget.NewLabel("Ready")
	a.cardsLabel = widget.NewLabel("Cards added: 0")
	a.cardsLabel.TextStyle = fyne.TextStyle{Italic: true}

	statusSection := container.NewVBox(
		a.audioPlayer,
		widget.NewSeparator(),
		a.statusLabel,
		a.cardsLabel,
	)

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			widget.NewSeparator(),
			inputSection,
		),
		statusSection,
		nil, nil,
		displaySection,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.setupTooltips()
	helpButton.SetToolTip("Show hotkeys (h)")

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})

	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onFetch fetches the meaning and media for the current sentence
func (a *Application) onFetch() {
	sentence := strings.TrimSpace(a.sentenceEntry.Text)
	if sentence == "" {
		dialog.ShowError(fmt.Errorf("enter a sentence first"), a.window)
		return
	}

	a.fetchButton.Disable()
	a.addButton.Disable()
	a.imageDisplay.SetGenerating()
	a.updateStatus("Fetching meaning...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		result, err := a.pipeline.FetchEnrichment(a.ctx)

		fyne.Do(func() {
			a.fetchButton.Enable()

			if err != nil {
				a.imageDisplay.Clear()
				var verr *pipeline.ValidationError
				if errors.As(err, &verr) {
					a.updateStatus("Error: " + verr.Error())
				} else {
					a.showError(err)
				}
				return
			}

			a.meaningEntry.SetText(result.Meaning)
			if result.ImagePath != "" {
				a.imageDisplay.SetImage(result.ImagePath)
			} else {
				a.imageDisplay.Clear()
			}
			if result.AudioPath != "" {
				a.audioPlayer.SetAudioFile(result.AudioPath)
				if a.config.AutoPlay {
					a.audioPlayer.Play()
				}
			} else {
				a.audioPlayer.Clear()
			}

			a.addButton.Enable()
			a.updateStatus("Ready - review and add to Anki")
		})
	}()
}

// onAddToAnki commits the current draft as a new note
func (a *Application) onAddToAnki() {
	a.addButton.Disable()
	a.fetchButton.Disable()
	a.updateStatus("Adding card to Anki...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		err := a.pipeline.CommitCard(a.ctx)

		fyne.Do(func() {
			a.fetchButton.Enable()

			if err != nil {
				// The draft is preserved; the user can retry after
				// fixing the cause (e.g. starting Anki)
				a.addButton.Enable()
				a.showError(err)
				return
			}

			a.mu.Lock()
			a.cardsAdded++
			count := a.cardsAdded
			a.mu.Unlock()

			a.clearUI()
			a.cardsLabel.SetText(fmt.Sprintf("Cards added: %d", count))
			a.updateStatus("Card added - ready for the next sentence")
		})
	}()
}

// onDiscard drops the current draft without committing it
func (a *Application) onDiscard() {
	a.pipeline.Reset()
	a.clearUI()
	a.updateStatus("Draft discarded")
}

// onPasteSentence fills the sentence field from the system clipboard
func (a *Application) onPasteSentence() {
	content := a.window.Clipboard().Content()
	if content == "" {
		a.updateStatus("Clipboard is empty")
		return
	}
	a.sentenceEntry.SetText(content)
	a.updateStatus("Sentence pasted from clipboard")
}

// onChooseImage lets the user attach their own image instead of a
// synthesized one
func (a *Application) onChooseImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		// User-picked files are not owned by the draft and survive a
		// discard
		a.pipeline.AttachImage(path, false)
		a.imageDisplay.SetImage(path)
		a.updateStatus("Image attached: " + filepath.Base(path))
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"}))
	fileDialog.Show()
}

// onRemoveImage detaches the image from the current draft
func (a *Application) onRemoveImage() {
	a.pipeline.RemoveImage()
	a.imageDisplay.Clear()
	a.updateStatus("Image removed")
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	hotkeys := `[Project Page: https://codeberg.org/snonux/sentencemine](https://codeberg.org/snonux/sentencemine)

---

## Focus Fields
**s** Focus sentence input
**w** Focus word input
**t** Focus tags input
**m** Focus meaning
**Esc** Unfocus field

## Card Processing
**g** Fetch meaning and media
**a** Add card to Anki
**d** Discard draft
**v** Paste sentence from clipboard

## Media
**p** Play audio
**i** Choose image file
**x** Remove image

## Help
**h** Show hotkeys
**c** Close dialog
**q** Quit application

Press **c** to close this dialog`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	paddedContent := container.NewPadded(content)

	scroll := container.NewScroll(paddedContent)
	scroll.SetMinSize(fyne.NewSize(500, 480))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	dialogOpen := true

	originalRuneHandler := a.window.Canvas().OnTypedRune()

	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if dialogOpen && (r == 'c' || r == 'C') {
			d.Hide()
			return
		}
		if originalRuneHandler != nil {
			originalRuneHandler(r)
		}
	})

	d.Show()

	d.SetOnClosed(func() {
		dialogOpen = false
		a.setupKeyboardShortcuts()
	})
}

// Helper methods

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
}

func (a *Application) clearUI() {
	a.sentenceEntry.SetText("")
	a.wordEntry.SetText("")
	a.tagsEntry.SetText("")
	a.meaningEntry.SetText("")
	a.imageDisplay.Clear()
	a.audioPlayer.Clear()
	a.addButton.Disable()
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.fetchButton.SetToolTip("Fetch meaning and media (g)")
	a.addButton.SetToolTip("Add card to Anki (a)")
	a.discardButton.SetToolTip("Discard draft (d)")
	a.pasteButton.SetToolTip("Paste sentence from clipboard (v)")
	a.chooseImageButton.SetToolTip("Choose image file (i)")
	a.removeImageButton.SetToolTip("Remove image (x)")
}

// setupKeyboardShortcuts sets up keyboard shortcuts for the application
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		// Let characters through to a focused input field
		focused := a.window.Canvas().Focused()
		isInputFocused := focused == a.sentenceEntry || focused == a.wordEntry ||
			focused == a.tagsEntry || focused == a.meaningEntry

		if isInputFocused {
			return
		}

		switch r {
		case 's', 'S':
			a.window.Canvas().Focus(a.sentenceEntry)
		case 'w', 'W':
			a.window.Canvas().Focus(a.wordEntry)
		case 't', 'T':
			a.window.Canvas().Focus(a.tagsEntry)
		case 'm', 'M':
			a.window.Canvas().Focus(a.meaningEntry)
		case 'g', 'G':
			a.onFetch()
		case 'a', 'A':
			if !a.addButton.Disabled() {
				a.onAddToAnki()
			}
		case 'd', 'D':
			a.onDiscard()
		case 'v', 'V':
			a.onPasteSentence()
		case 'p', 'P':
			a.audioPlayer.Play()
		case 'i', 'I':
			a.onChooseImage()
		case 'x', 'X':
			a.onRemoveImage()
		case 'h', 'H':
			a.onShowHotkeys()
		case 'q', 'Q':
			a.window.Close()
		}
	})
}
