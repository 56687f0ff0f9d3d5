package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the table actions above the results table
type Toolbar struct {
	container        *fyne.Container
	reloadButton     *widget.Button
	deleteButton     *widget.Button
	fullscreenButton *widget.Button
	rosterLabel      *widget.Label

	// Event handlers
	reloadHandler     func()
	deleteHandler     func()
	fullscreenHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

// createComponents initializes all toolbar components
func (t *Toolbar) createComponents() {
	t.reloadButton = widget.NewButton("Reload", nil)

	t.deleteButton = widget.NewButton("Delete Row", nil)
	t.deleteButton.Importance = widget.DangerImportance

	t.fullscreenButton = widget.NewButton("Fullscreen (F11)", nil)

	t.rosterLabel = widget.NewLabel("")
}

// buildLayout constructs the toolbar layout
func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.reloadButton,
		t.deleteButton,
		widget.NewSeparator(),
		t.rosterLabel,
		layout.NewSpacer(),
		t.fullscreenButton,
	)
}

// setupEventHandlers connects button events
func (t *Toolbar) setupEventHandlers() {
	t.reloadButton.OnTapped = func() {
		if t.reloadHandler != nil {
			t.reloadHandler()
		}
	}

	t.deleteButton.OnTapped = func() {
		if t.deleteHandler != nil {
			t.deleteHandler()
		}
	}

	t.fullscreenButton.OnTapped = func() {
		if t.fullscreenHandler != nil {
			t.fullscreenHandler()
		}
	}
}

// Event handler setters

// SetReloadHandler sets the reload handler
func (t *Toolbar) SetReloadHandler(handler func()) {
	t.reloadHandler = handler
}

// SetDeleteHandler sets the delete row handler
func (t *Toolbar) SetDeleteHandler(handler func()) {
	t.deleteHandler = handler
}

// SetFullscreenHandler sets the fullscreen toggle handler
func (t *Toolbar) SetFullscreenHandler(handler func()) {
	t.fullscreenHandler = handler
}

// SetRosterInfo shows which roster file lookups go to
func (t *Toolbar) SetRosterInfo(text string) {
	t.rosterLabel.SetText(text)
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
