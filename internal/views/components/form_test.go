package components

import (
	"slices"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func TestFormPanel_InitialState(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(3)

	if fp.EntriesEnabled() {
		t.Error("entries should start disabled")
	}
	if fp.SubmitEnabled() {
		t.Error("submit should start disabled")
	}
	if got := fp.Entries(); !slices.Equal(got, []string{"", "", ""}) {
		t.Errorf("Entries() = %q", got)
	}
}

func TestFormPanel_TabOnIDLooksUp(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(2)
	w := test.NewWindow(fp.GetContainer())
	defer w.Close()

	var looked string
	fp.SetLookupHandler(func(id string) { looked = id })

	test.Type(fp.idEntry, "1001")
	fp.idEntry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})

	if looked != "1001" {
		t.Errorf("lookup handler got %q, want 1001", looked)
	}
	if fp.ID() != "1001" {
		t.Errorf("ID() = %q, tab must not be inserted", fp.ID())
	}
}

func TestFormPanel_LastEntryComputes(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(2)
	w := test.NewWindow(fp.GetContainer())
	defer w.Close()

	computed := 0
	fp.SetComputeHandler(func() { computed++ })
	fp.SetEntriesEnabled(true)

	fp.entries[0].TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})
	if computed != 0 {
		t.Error("only the last exercise entry should compute the total")
	}
	fp.entries[1].TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})
	if computed != 1 {
		t.Errorf("computed = %d, want 1", computed)
	}
}

func TestFormPanel_SetEntriesIsQuiet(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(2)

	edited := 0
	fp.SetEditedHandler(func() { edited++ })
	fp.SetEntriesEnabled(true)

	fp.SetEntries([]string{"1", "2"})
	if edited != 0 {
		t.Errorf("programmatic fill fired edited handler %d times", edited)
	}
	if got := fp.Entries(); !slices.Equal(got, []string{"1", "2"}) {
		t.Errorf("Entries() = %q", got)
	}

	test.Type(fp.entries[0], "5")
	if edited == 0 {
		t.Error("typing should fire the edited handler")
	}
}

func TestFormPanel_EscapeAndReset(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(1)

	resets := 0
	fp.SetResetHandler(func() { resets++ })
	fp.idEntry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if resets != 1 {
		t.Errorf("resets = %d, want 1", resets)
	}

	fp.SetID("1001")
	fp.SetEntriesEnabled(true)
	fp.SetEntries([]string{"3"})
	fp.SetTotal("3.0")
	fp.SetNotice("Name: Ada", widget.HighImportance)
	fp.SetSubmitEnabled(true)

	fp.Reset()
	if fp.ID() != "" || fp.Total() != "" || fp.Notice() != "" {
		t.Errorf("Reset left id=%q total=%q notice=%q", fp.ID(), fp.Total(), fp.Notice())
	}
	if fp.EntriesEnabled() || fp.SubmitEnabled() {
		t.Error("Reset should disable entries and submit")
	}
}

func TestFormPanel_SubmitButton(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(1)

	submitted := 0
	fp.SetSubmitHandler(func() { submitted++ })

	test.Tap(fp.submitButton)
	if submitted != 0 {
		t.Error("disabled submit button must not fire")
	}
	fp.SetSubmitEnabled(true)
	test.Tap(fp.submitButton)
	if submitted != 1 {
		t.Errorf("submitted = %d, want 1", submitted)
	}
}

// pressKey delivers a key the way the desktop driver does: the focused
// widget receives it, the canvas handler only runs when nothing has focus.
func pressKey(c fyne.Canvas, name fyne.KeyName) {
	ev := &fyne.KeyEvent{Name: name}
	if f := c.Focused(); f != nil {
		f.TypedKey(ev)
		return
	}
	if h := c.OnTypedKey(); h != nil {
		h(ev)
	}
}

func TestFormPanel_TabThroughEntriesThenEnterSubmits(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(2)
	w := test.NewWindow(fp.GetContainer())
	defer w.Close()

	var submitted, resets int
	fp.SetComputeHandler(func() { fp.SetSubmitEnabled(true) })
	fp.SetSubmitHandler(func() { submitted++ })
	fp.SetResetHandler(func() { resets++ })
	fp.SetEntriesEnabled(true)

	c := w.Canvas()
	c.Focus(fp.entries[1])
	pressKey(c, fyne.KeyTab)

	if c.Focused() != fp.submitButton {
		t.Fatalf("focus after last entry = %T, want submit button", c.Focused())
	}

	pressKey(c, fyne.KeyReturn)
	if submitted != 1 {
		t.Errorf("submitted = %d, want 1", submitted)
	}
	pressKey(c, fyne.KeyEnter)
	if submitted != 2 {
		t.Errorf("keypad enter: submitted = %d, want 2", submitted)
	}
	pressKey(c, fyne.KeyEscape)
	if resets != 1 {
		t.Errorf("resets = %d, want 1", resets)
	}
}

func TestFormPanel_DisabledSubmitIgnoresReturn(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(1)

	submitted := 0
	fp.SetSubmitHandler(func() { submitted++ })

	fp.submitButton.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	if submitted != 0 {
		t.Errorf("disabled submit fired %d times", submitted)
	}
}

func TestFormPanel_F11FromFocusedWidgets(t *testing.T) {
	test.NewTempApp(t)
	fp := NewFormPanel(1)
	w := test.NewWindow(fp.GetContainer())
	defer w.Close()

	toggles := 0
	fp.SetFullscreenHandler(func() { toggles++ })
	fp.SetEntriesEnabled(true)
	fp.SetSubmitEnabled(true)

	c := w.Canvas()
	for _, obj := range []fyne.Focusable{fp.idEntry, fp.entries[0], fp.submitButton, fp.exitButton} {
		c.Focus(obj)
		pressKey(c, fyne.KeyF11)
	}
	if toggles != 4 {
		t.Errorf("toggles = %d, want 4", toggles)
	}
}
