package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"exam-points/internal/models"
)

const (
	columnWidth   = 110
	sortAscArrow  = " ▲"
	sortDescArrow = " ▼"
)

// ResultsTable renders the displayed results snapshot. Header buttons sort,
// a tap selects, a double tap opens the row for editing and Delete asks for
// removal of the selected row.
type ResultsTable struct {
	table *tableWidget
	data  *models.ResultsTable

	sortHandler   func(col int)
	selectHandler func(row int)
	editHandler   func(row int)
}

// tableWidget adds the window keys to widget.Table, which otherwise swallows
// them while focused.
type tableWidget struct {
	widget.Table
	onDelete     func()
	onSubmit     func()
	onEscape     func()
	onFullscreen func()
}

func (t *tableWidget) TypedKey(key *fyne.KeyEvent) {
	var handler func()
	switch key.Name {
	case fyne.KeyDelete:
		handler = t.onDelete
	case fyne.KeyReturn, fyne.KeyEnter:
		handler = t.onSubmit
	case fyne.KeyEscape:
		handler = t.onEscape
	case fyne.KeyF11:
		handler = t.onFullscreen
	}
	if handler != nil {
		handler()
		return
	}
	t.Table.TypedKey(key)
}

// tableCell is a label that reports taps with its row index.
type tableCell struct {
	widget.Label
	row         int
	onTap       func(row int)
	onDoubleTap func(row int)
}

func newTableCell() *tableCell {
	c := &tableCell{}
	c.Alignment = fyne.TextAlignCenter
	c.Truncation = fyne.TextTruncateEllipsis
	c.ExtendBaseWidget(c)
	return c
}

func (c *tableCell) Tapped(*fyne.PointEvent) {
	if c.onTap != nil {
		c.onTap(c.row)
	}
}

func (c *tableCell) DoubleTapped(*fyne.PointEvent) {
	if c.onDoubleTap != nil {
		c.onDoubleTap(c.row)
	}
}

// NewResultsTable creates an empty table component.
func NewResultsTable() *ResultsTable {
	rt := &ResultsTable{data: models.NewResultsTable()}

	t := &tableWidget{}
	t.Length = rt.length
	t.CreateCell = func() fyne.CanvasObject {
		c := newTableCell()
		c.onTap = rt.selectRow
		c.onDoubleTap = rt.editRow
		return c
	}
	t.UpdateCell = rt.updateCell
	t.ShowHeaderRow = true
	t.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	t.UpdateHeader = rt.updateHeader
	t.OnSelected = func(id widget.TableCellID) {
		if rt.selectHandler != nil {
			rt.selectHandler(id.Row)
		}
	}
	t.ExtendBaseWidget(t)
	rt.table = t
	return rt
}

func (rt *ResultsTable) length() (rows int, cols int) {
	return rt.data.Len(), len(rt.data.Header())
}

func (rt *ResultsTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	c := obj.(*tableCell)
	c.row = id.Row
	c.SetText(rt.data.Cell(id.Row, id.Col))
}

func (rt *ResultsTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	b := obj.(*widget.Button)
	header := rt.data.Header()
	if id.Col < 0 || id.Col >= len(header) {
		b.SetText("")
		b.OnTapped = nil
		return
	}

	text := header[id.Col]
	if col, desc := rt.data.SortState(); col == id.Col {
		if desc {
			text += sortDescArrow
		} else {
			text += sortAscArrow
		}
	}
	b.SetText(text)

	col := id.Col
	b.OnTapped = func() {
		if rt.sortHandler != nil {
			rt.sortHandler(col)
		}
	}
}

func (rt *ResultsTable) selectRow(row int) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(rt.table); c != nil {
		c.Focus(rt.table)
	}
	rt.table.Select(widget.TableCellID{Row: row, Col: 0})
}

func (rt *ResultsTable) editRow(row int) {
	rt.selectRow(row)
	if rt.editHandler != nil {
		rt.editHandler(row)
	}
}

// Event handler setters

func (rt *ResultsTable) SetSortHandler(handler func(col int))   { rt.sortHandler = handler }
func (rt *ResultsTable) SetSelectHandler(handler func(row int)) { rt.selectHandler = handler }
func (rt *ResultsTable) SetEditHandler(handler func(row int))   { rt.editHandler = handler }
func (rt *ResultsTable) SetDeleteHandler(handler func())        { rt.table.onDelete = handler }
func (rt *ResultsTable) SetSubmitHandler(handler func())        { rt.table.onSubmit = handler }
func (rt *ResultsTable) SetResetHandler(handler func())         { rt.table.onEscape = handler }
func (rt *ResultsTable) SetFullscreenHandler(handler func())    { rt.table.onFullscreen = handler }

// SetData swaps in a new snapshot and redraws.
func (rt *ResultsTable) SetData(data *models.ResultsTable) {
	rt.data = data
	for col := range data.Header() {
		rt.table.SetColumnWidth(col, columnWidth)
	}
	rt.table.UnselectAll()
	rt.table.Refresh()
}

// Select highlights a row and scrolls it into view; a negative row clears the selection.
func (rt *ResultsTable) Select(row int) {
	if row < 0 || row >= rt.data.Len() {
		rt.table.UnselectAll()
		return
	}
	id := widget.TableCellID{Row: row, Col: 0}
	rt.table.Select(id)
	rt.table.ScrollTo(id)
}

// Widget returns the table for layout.
func (rt *ResultsTable) Widget() fyne.CanvasObject {
	return rt.table
}
