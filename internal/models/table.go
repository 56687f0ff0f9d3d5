package models

import (
	"slices"
	"strconv"
	"strings"
)

// ResultsTable is the displayed snapshot of the results file. Sorting only
// reorders the snapshot; the file keeps its own order.
type ResultsTable struct {
	header     []string
	rows       [][]string
	descending map[int]bool
	sortedBy   int
	selected   int
}

func NewResultsTable() *ResultsTable {
	return &ResultsTable{descending: make(map[int]bool), sortedBy: -1, selected: -1}
}

// Reload replaces the snapshot and clears sort state and selection.
func (t *ResultsTable) Reload(header []string, rows []ResultRow) {
	t.header = slices.Clone(header)
	t.rows = make([][]string, len(rows))
	for i, r := range rows {
		t.rows[i] = r.Values()
	}
	clear(t.descending)
	t.sortedBy = -1
	t.selected = -1
}

func (t *ResultsTable) Header() []string { return t.header }

func (t *ResultsTable) Len() int { return len(t.rows) }

// Row returns a copy of the displayed values at index i.
func (t *ResultsTable) Row(i int) []string {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return slices.Clone(t.rows[i])
}

// Cell returns the displayed value at row i, column col.
func (t *ResultsTable) Cell(i, col int) string {
	if i < 0 || i >= len(t.rows) || col < 0 || col >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][col]
}

// Column returns every displayed value of one column in display order.
func (t *ResultsTable) Column(col int) []string {
	out := make([]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Cell(i, col)
	}
	return out
}

// ColumnIndex finds a header name, case-insensitively.
func (t *ResultsTable) ColumnIndex(name string) int {
	return slices.IndexFunc(t.header, func(h string) bool {
		return strings.EqualFold(h, name)
	})
}

// IndexOfKey returns the display index of the row stored under key, or -1.
func (t *ResultsTable) IndexOfKey(key string) int {
	return slices.IndexFunc(t.rows, func(r []string) bool {
		return len(r) > 0 && SameKey(r[0], key)
	})
}

func (t *ResultsTable) Select(i int) {
	if i < 0 || i >= len(t.rows) {
		i = -1
	}
	t.selected = i
}

// Selected returns the selected display index, or -1.
func (t *ResultsTable) Selected() int { return t.selected }

// SelectedRow returns the values of the selected row, or nil.
func (t *ResultsTable) SelectedRow() []string { return t.Row(t.selected) }

// SortState returns the column of the last sort and its direction; col is -1
// while the table is in file order.
func (t *ResultsTable) SortState() (col int, descending bool) {
	if t.sortedBy < 0 {
		return -1, false
	}
	return t.sortedBy, t.descending[t.sortedBy]
}

// SortBy orders rows by column col. The first activation of a column sorts
// ascending and each further activation flips direction. Values compare as
// numbers when the whole column parses, otherwise as strings. The selected
// row follows the sort.
func (t *ResultsTable) SortBy(col int) (descending bool) {
	if col < 0 || col >= len(t.header) {
		return false
	}

	desc, seen := t.descending[col]
	if seen {
		desc = !desc
	}
	t.descending[col] = desc
	t.sortedBy = col

	var selectedRow []string
	if t.selected >= 0 {
		selectedRow = t.rows[t.selected]
	}

	SortRows(t.rows, col, desc)

	if selectedRow != nil {
		t.selected = slices.IndexFunc(t.rows, func(r []string) bool {
			return &r[0] == &selectedRow[0]
		})
	}
	return desc
}

// SortRows stable-sorts rows by column col with numeric comparison when every
// value in the column is a number and lexicographic comparison otherwise.
func SortRows(rows [][]string, col int, descending bool) {
	cell := func(r []string) string {
		if col < len(r) {
			return r[col]
		}
		return ""
	}

	numbers := make(map[string]float64, len(rows))
	numeric := true
	for _, r := range rows {
		v := cell(r)
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			numeric = false
			break
		}
		numbers[v] = f
	}

	cmp := func(a, b []string) int {
		if numeric {
			x, y := numbers[cell(a)], numbers[cell(b)]
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
		return strings.Compare(cell(a), cell(b))
	}
	if descending {
		slices.SortStableFunc(rows, func(a, b []string) int { return cmp(b, a) })
		return
	}
	slices.SortStableFunc(rows, cmp)
}
