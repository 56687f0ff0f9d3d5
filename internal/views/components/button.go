package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// keyButton is a button that keeps the window keys working while it has
// focus: Return/Enter activates it, Escape resets and F11 toggles fullscreen.
type keyButton struct {
	widget.Button

	onEscape     func()
	onFullscreen func()
}

func newKeyButton(label string) *keyButton {
	b := &keyButton{}
	b.Text = label
	b.ExtendBaseWidget(b)
	return b
}

func (b *keyButton) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		if !b.Disabled() && b.OnTapped != nil {
			b.OnTapped()
		}
		return
	case fyne.KeyEscape:
		if b.onEscape != nil {
			b.onEscape()
			return
		}
	case fyne.KeyF11:
		if b.onFullscreen != nil {
			b.onFullscreen()
			return
		}
	}
	b.Button.TypedKey(key)
}
