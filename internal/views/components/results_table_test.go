package components

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"exam-points/internal/models"
)

func sampleTable(t *testing.T) *models.ResultsTable {
	t.Helper()
	data := models.NewResultsTable()
	var rows []models.ResultRow
	for _, v := range [][]string{{"1001", "10", "10.0"}, {"1002", "2", "2.0"}} {
		r, err := models.RowFromValues(v)
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, r)
	}
	data.Reload(models.ResultsHeader(1), rows)
	return data
}

func TestResultsTable_Length(t *testing.T) {
	test.NewTempApp(t)
	rt := NewResultsTable()

	rows, cols := rt.length()
	if rows != 0 || cols != 0 {
		t.Errorf("empty length = %d x %d", rows, cols)
	}

	rt.SetData(sampleTable(t))
	rows, cols = rt.length()
	if rows != 2 || cols != 3 {
		t.Errorf("length = %d x %d, want 2 x 3", rows, cols)
	}
}

func TestResultsTable_CellsAndHeader(t *testing.T) {
	test.NewTempApp(t)
	rt := NewResultsTable()
	data := sampleTable(t)
	rt.SetData(data)

	cell := newTableCell()
	rt.updateCell(widget.TableCellID{Row: 1, Col: 2}, cell)
	if cell.Text != "2.0" || cell.row != 1 {
		t.Errorf("cell = %q row %d", cell.Text, cell.row)
	}

	var sorted = -1
	rt.SetSortHandler(func(col int) { sorted = col })

	header := widget.NewButton("", nil)
	rt.updateHeader(widget.TableCellID{Row: -1, Col: 2}, header)
	if header.Text != "Total" {
		t.Errorf("header = %q, want Total", header.Text)
	}
	test.Tap(header)
	if sorted != 2 {
		t.Errorf("sort handler got %d, want 2", sorted)
	}

	data.SortBy(2)
	rt.updateHeader(widget.TableCellID{Row: -1, Col: 2}, header)
	if header.Text != "Total"+sortAscArrow {
		t.Errorf("header = %q, want ascending marker", header.Text)
	}
}

func TestResultsTable_TapsAndDelete(t *testing.T) {
	test.NewTempApp(t)
	rt := NewResultsTable()
	w := test.NewWindow(rt.Widget())
	defer w.Close()
	rt.SetData(sampleTable(t))

	selected, edited, deleted := -1, -1, 0
	rt.SetSelectHandler(func(row int) { selected = row })
	rt.SetEditHandler(func(row int) { edited = row })
	rt.SetDeleteHandler(func() { deleted++ })

	cell := newTableCell()
	cell.onTap = rt.selectRow
	cell.onDoubleTap = rt.editRow
	cell.row = 1

	cell.Tapped(&fyne.PointEvent{})
	if selected != 1 {
		t.Errorf("selected = %d, want 1", selected)
	}
	cell.DoubleTapped(&fyne.PointEvent{})
	if edited != 1 {
		t.Errorf("edited = %d, want 1", edited)
	}

	rt.table.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestResultsTable_WindowKeysWhileFocused(t *testing.T) {
	test.NewTempApp(t)
	rt := NewResultsTable()
	w := test.NewWindow(rt.Widget())
	defer w.Close()
	rt.SetData(sampleTable(t))

	var submitted, reset, toggled int
	rt.SetSubmitHandler(func() { submitted++ })
	rt.SetResetHandler(func() { reset++ })
	rt.SetFullscreenHandler(func() { toggled++ })

	c := w.Canvas()
	c.Focus(rt.table)
	for _, key := range []fyne.KeyName{fyne.KeyReturn, fyne.KeyEscape, fyne.KeyF11} {
		pressKey(c, key)
	}
	if submitted != 1 || reset != 1 || toggled != 1 {
		t.Errorf("submitted=%d reset=%d toggled=%d, want 1 each", submitted, reset, toggled)
	}
}
