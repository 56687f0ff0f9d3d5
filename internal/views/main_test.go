package views

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"exam-points/internal/controllers"
	"exam-points/internal/models"
)

func newTestView(t *testing.T, exercises int) (*MainView, fyne.Window) {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewMainView(w, exercises, "/tmp/results.csv"), w
}

func TestMainView_FormRoundTrip(t *testing.T) {
	mv, _ := newTestView(t, 2)

	mv.SetID("1001")
	mv.SetEntriesEnabled(true)
	mv.SetEntries([]string{"1", "2"})
	mv.SetTotal("3.0")
	mv.SetSubmitEnabled(true)

	if mv.ID() != "1001" {
		t.Errorf("ID() = %q", mv.ID())
	}
	if got := mv.Entries(); !slices.Equal(got, []string{"1", "2"}) {
		t.Errorf("Entries() = %q", got)
	}

	mv.ShowStatus("exercise 1: \"x\" is not a number")

	mv.ResetForm()
	if mv.ID() != "" || !slices.Equal(mv.Entries(), []string{"", ""}) {
		t.Errorf("ResetForm left id=%q entries=%q", mv.ID(), mv.Entries())
	}
	if got := mv.statusBar.GetStatus(); got != "Ready" {
		t.Errorf("status after reset = %q, want Ready", got)
	}
}

func TestMainView_KeyboardDispatch(t *testing.T) {
	mv, w := newTestView(t, 1)

	var submitted, reset, deleted int
	mv.Bind(controllers.FormHandlers{
		OnSubmit: func() { submitted++ },
		OnReset:  func() { reset++ },
		OnDelete: func() { deleted++ },
	})
	w.Canvas().Unfocus()

	onKey := w.Canvas().OnTypedKey()
	onKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	onKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	onKey(&fyne.KeyEvent{Name: fyne.KeyDelete})

	if submitted != 1 || reset != 1 || deleted != 1 {
		t.Errorf("submitted=%d reset=%d deleted=%d, want 1 each", submitted, reset, deleted)
	}
}

func TestMainView_F11WithIDFocused(t *testing.T) {
	mv, w := newTestView(t, 1)
	mv.form.FocusID(w.Canvas())

	before := w.FullScreen()
	w.Canvas().Focused().TypedKey(&fyne.KeyEvent{Name: fyne.KeyF11})
	if w.FullScreen() == before {
		t.Errorf("F11 with the ID field focused left fullscreen at %v", before)
	}
}

func TestMainView_EscapeWithTableFocused(t *testing.T) {
	mv, w := newTestView(t, 1)

	reset := 0
	mv.Bind(controllers.FormHandlers{OnReset: func() { reset++ }})
	w.Canvas().Focus(mv.table.Widget().(fyne.Focusable))
	w.Canvas().Focused().TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})

	if reset != 1 {
		t.Errorf("reset = %d, want 1", reset)
	}
}

func TestMainView_UnboundHandlersAreSafe(t *testing.T) {
	_, w := newTestView(t, 1)
	w.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyReturn})
}

func TestMainView_Alert(t *testing.T) {
	mv, _ := newTestView(t, 1)
	var buf bytes.Buffer
	mv.bell = &buf

	mv.Alert()
	if buf.String() != "\a" {
		t.Errorf("bell output = %q", buf.String())
	}
}

func TestMainView_StatusAndTable(t *testing.T) {
	mv, _ := newTestView(t, 1)

	data := models.NewResultsTable()
	row, _ := models.RowFromValues([]string{"1001", "1", "1.0"})
	data.Reload(models.ResultsHeader(1), []models.ResultRow{row})

	mv.RefreshTable(data)
	mv.ShowStatus("Saved 1001")
	mv.SetNotice("Editing existing entry", controllers.NoticeEditing)

	if got := mv.statusBar.GetStatus(); got != "Saved 1001" {
		t.Errorf("status = %q", got)
	}
	if got := mv.form.Notice(); got != "Editing existing entry" {
		t.Errorf("notice = %q", got)
	}
}

func TestMainView_ShowErrorDoesNotPanic(t *testing.T) {
	mv, _ := newTestView(t, 1)
	mv.ShowError("Submit failed", errors.New("disk full"))
}
