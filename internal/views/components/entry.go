package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// CommitEntry is an entry that reports Tab as a commit before moving focus
// on, Escape as a reset and F11 as a fullscreen toggle. Without an OnCommit
// handler Tab behaves normally.
type CommitEntry struct {
	widget.Entry

	OnCommit     func()
	OnEscape     func()
	OnFullscreen func()
}

func NewCommitEntry() *CommitEntry {
	e := &CommitEntry{}
	e.ExtendBaseWidget(e)
	return e
}

// AcceptsTab implements fyne.Tabbable so Tab reaches TypedKey.
func (e *CommitEntry) AcceptsTab() bool {
	return e.OnCommit != nil
}

func (e *CommitEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyTab:
		if e.OnCommit != nil {
			e.OnCommit()
			if c := fyne.CurrentApp().Driver().CanvasForObject(e); c != nil {
				c.FocusNext()
			}
			return
		}
	case fyne.KeyEscape:
		if e.OnEscape != nil {
			e.OnEscape()
			return
		}
	case fyne.KeyF11:
		if e.OnFullscreen != nil {
			e.OnFullscreen()
			return
		}
	}
	e.Entry.TypedKey(key)
}
