package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// FormPanel is the left-hand entry form: registration number, one entry per
// exercise, the computed total and the submit/exit buttons.
type FormPanel struct {
	container    *fyne.Container
	idEntry      *CommitEntry
	noticeLabel  *widget.Label
	entries      []*CommitEntry
	totalLabel   *widget.Label
	submitButton *keyButton
	exitButton   *keyButton

	// suppress is set while entries are filled programmatically.
	suppress bool

	lookupHandler     func(string)
	computeHandler    func()
	submitHandler     func()
	resetHandler      func()
	editedHandler     func()
	exitHandler       func()
	fullscreenHandler func()
}

// NewFormPanel creates a form for the given number of exercises.
func NewFormPanel(exercises int) *FormPanel {
	fp := &FormPanel{}
	fp.createComponents(exercises)
	fp.buildLayout()
	fp.setupEventHandlers()
	fp.Reset()
	return fp
}

func (fp *FormPanel) createComponents(exercises int) {
	fp.idEntry = NewCommitEntry()
	fp.idEntry.SetPlaceHolder("Registration number")

	fp.noticeLabel = widget.NewLabel("")

	fp.entries = make([]*CommitEntry, exercises)
	for i := range fp.entries {
		fp.entries[i] = NewCommitEntry()
	}

	fp.totalLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	fp.totalLabel.Importance = widget.SuccessImportance

	fp.submitButton = newKeyButton("Submit")
	fp.submitButton.Importance = widget.HighImportance

	fp.exitButton = newKeyButton("Exit")
	fp.exitButton.Importance = widget.DangerImportance
}

func (fp *FormPanel) buildLayout() {
	exerciseForm := widget.NewForm()
	for i, e := range fp.entries {
		exerciseForm.Append(fmt.Sprintf("Exercise %d:", i+1), e)
	}

	fp.container = container.NewVBox(
		widget.NewLabel("Matriculation Number:"),
		fp.idEntry,
		fp.noticeLabel,
		widget.NewSeparator(),
		container.NewVScroll(exerciseForm),
		widget.NewSeparator(),
		widget.NewLabel("Total Points:"),
		fp.totalLabel,
		fp.submitButton,
		layout.NewSpacer(),
		container.NewHBox(fp.exitButton),
	)
}

func (fp *FormPanel) setupEventHandlers() {
	fp.idEntry.OnCommit = func() {
		if fp.lookupHandler != nil {
			fp.lookupHandler(fp.idEntry.Text)
		}
	}
	fp.idEntry.OnSubmitted = func(string) { fp.idEntry.OnCommit() }
	fp.idEntry.OnEscape = fp.reset
	fp.idEntry.OnFullscreen = fp.fullscreen

	last := len(fp.entries) - 1
	for i, e := range fp.entries {
		e.OnEscape = fp.reset
		e.OnFullscreen = fp.fullscreen
		e.OnSubmitted = func(string) {
			if fp.submitHandler != nil {
				fp.submitHandler()
			}
		}
		e.OnChanged = func(string) {
			if !fp.suppress && fp.editedHandler != nil {
				fp.editedHandler()
			}
		}
		if i == last {
			e.OnCommit = func() {
				if fp.computeHandler != nil {
					fp.computeHandler()
				}
			}
		}
	}

	fp.submitButton.OnTapped = func() {
		if fp.submitHandler != nil {
			fp.submitHandler()
		}
	}
	fp.exitButton.OnTapped = func() {
		if fp.exitHandler != nil {
			fp.exitHandler()
		}
	}

	for _, b := range []*keyButton{fp.submitButton, fp.exitButton} {
		b.onEscape = fp.reset
		b.onFullscreen = fp.fullscreen
	}
}

func (fp *FormPanel) reset() {
	if fp.resetHandler != nil {
		fp.resetHandler()
	}
}

func (fp *FormPanel) fullscreen() {
	if fp.fullscreenHandler != nil {
		fp.fullscreenHandler()
	}
}

// Event handler setters

func (fp *FormPanel) SetLookupHandler(handler func(string)) { fp.lookupHandler = handler }
func (fp *FormPanel) SetComputeHandler(handler func())      { fp.computeHandler = handler }
func (fp *FormPanel) SetSubmitHandler(handler func())       { fp.submitHandler = handler }
func (fp *FormPanel) SetResetHandler(handler func())        { fp.resetHandler = handler }
func (fp *FormPanel) SetEditedHandler(handler func())       { fp.editedHandler = handler }
func (fp *FormPanel) SetExitHandler(handler func())         { fp.exitHandler = handler }
func (fp *FormPanel) SetFullscreenHandler(handler func())   { fp.fullscreenHandler = handler }

// State accessors

func (fp *FormPanel) ID() string { return fp.idEntry.Text }

func (fp *FormPanel) SetID(id string) { fp.idEntry.SetText(id) }

// Entries returns the raw text of every exercise entry.
func (fp *FormPanel) Entries() []string {
	out := make([]string, len(fp.entries))
	for i, e := range fp.entries {
		out[i] = e.Text
	}
	return out
}

// SetEntries fills the exercise entries without triggering the edited handler.
func (fp *FormPanel) SetEntries(values []string) {
	fp.suppress = true
	defer func() { fp.suppress = false }()
	for i, e := range fp.entries {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		e.SetText(v)
	}
}

func (fp *FormPanel) SetTotal(total string) { fp.totalLabel.SetText(total) }

// Total returns the displayed total.
func (fp *FormPanel) Total() string { return fp.totalLabel.Text }

// SetNotice shows the name/edit/not-found line with the given importance.
func (fp *FormPanel) SetNotice(text string, importance widget.Importance) {
	fp.noticeLabel.Importance = importance
	fp.noticeLabel.SetText(text)
}

// Notice returns the current notice text.
func (fp *FormPanel) Notice() string { return fp.noticeLabel.Text }

func (fp *FormPanel) SetEntriesEnabled(enabled bool) {
	for _, e := range fp.entries {
		if enabled {
			e.Enable()
		} else {
			e.Disable()
		}
	}
}

// EntriesEnabled reports whether the exercise entries accept input.
func (fp *FormPanel) EntriesEnabled() bool {
	return len(fp.entries) > 0 && !fp.entries[0].Disabled()
}

func (fp *FormPanel) SetSubmitEnabled(enabled bool) {
	if enabled {
		fp.submitButton.Enable()
	} else {
		fp.submitButton.Disable()
	}
}

// SubmitEnabled reports whether the submit button is active.
func (fp *FormPanel) SubmitEnabled() bool { return !fp.submitButton.Disabled() }

// Reset clears every field, disables entries and submit, and focuses the ID field.
func (fp *FormPanel) Reset() {
	fp.idEntry.SetText("")
	fp.SetEntries(nil)
	fp.SetEntriesEnabled(false)
	fp.SetTotal("")
	fp.SetNotice("", widget.MediumImportance)
	fp.SetSubmitEnabled(false)
}

// FocusID moves keyboard focus into the ID field.
func (fp *FormPanel) FocusID(canvas fyne.Canvas) {
	if canvas != nil {
		canvas.Focus(fp.idEntry)
	}
}

// GetContainer returns the form container
func (fp *FormPanel) GetContainer() *fyne.Container {
	return fp.container
}
