// Package report prints the results file as a terminal table.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"exam-points/internal/models"
)

// Options selects the results file and the listing order.
type Options struct {
	Path       string
	Exercises  int
	Comma      rune
	SortColumn string
	Descending bool
}

// Render validates the results file header and writes every row to w,
// sorted by SortColumn when given. The file is never created or modified.
func Render(w io.Writer, opts Options) error {
	if _, err := os.Stat(opts.Path); err != nil {
		return fmt.Errorf("results file: %w", err)
	}

	store, err := models.OpenResultsStore(opts.Path, opts.Exercises, opts.Comma)
	if err != nil {
		return err
	}
	rows, err := store.LoadAll()
	if err != nil {
		return err
	}

	data := models.NewResultsTable()
	data.Reload(store.Header(), rows)

	if opts.SortColumn != "" {
		col := data.ColumnIndex(opts.SortColumn)
		if col < 0 {
			return fmt.Errorf("unknown column %q", opts.SortColumn)
		}
		data.SortBy(col)
		if opts.Descending {
			data.SortBy(col)
		}
	}

	color.New(color.FgYellow, color.Bold).Fprintf(w, "\n%s (%d students)\n", opts.Path, data.Len())

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(data.Header())
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := range data.Len() {
		table.Append(data.Row(i))
	}
	if data.Len() > 0 {
		table.SetFooter(footer(data))
	}
	table.Render()
	return nil
}

// footer carries the mean of every numeric column.
func footer(data *models.ResultsTable) []string {
	out := make([]string, len(data.Header()))
	out[0] = "mean"
	for col := 1; col < len(out); col++ {
		var sum float64
		n := 0
		for _, v := range data.Column(col) {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			sum += f
			n++
		}
		if n > 0 {
			out[col] = models.FormatTotal(sum / float64(n))
		}
	}
	return out
}
