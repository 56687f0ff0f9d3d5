package components

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the last action result and file information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	fileInfo    *widget.Label
	modeInfo    *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.fileInfo = widget.NewLabel("No results loaded")
	sb.modeInfo = widget.NewLabel("")
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil, nil,
		container.NewHBox(
			widget.NewSeparator(),
			sb.modeInfo,
			widget.NewSeparator(),
			sb.fileInfo,
		),
		sb.statusLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetFileInfo shows the results file name and its row count
func (sb *StatusBar) SetFileInfo(path string, rows int) {
	sb.fileInfo.SetText(fmt.Sprintf("%s: %d rows", filepath.Base(path), rows))
}

// SetMode shows whether the form inserts or updates
func (sb *StatusBar) SetMode(mode string) {
	sb.modeInfo.SetText(mode)
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.modeInfo.SetText("")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
