package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	IDColumn    = "ID"
	TotalColumn = "Total"
)

// ResultRow is one student's scores as stored in the results file.
type ResultRow struct {
	ID     string
	Scores []string
	Total  string
}

// NewResultRow builds a row from raw score entries. Blank entries are stored
// as "0" and the total is formatted with one decimal place.
func NewResultRow(id string, entries []string) (ResultRow, error) {
	total, err := SumScores(entries)
	if err != nil {
		return ResultRow{}, err
	}
	return ResultRow{
		ID:     id,
		Scores: NormalizeScores(entries),
		Total:  FormatTotal(total),
	}, nil
}

// Values flattens the row into the column order of the results file.
func (r ResultRow) Values() []string {
	values := make([]string, 0, len(r.Scores)+2)
	values = append(values, r.ID)
	values = append(values, r.Scores...)
	values = append(values, r.Total)
	return values
}

// RowFromValues is the inverse of Values.
func RowFromValues(values []string) (ResultRow, error) {
	if len(values) < 2 {
		return ResultRow{}, fmt.Errorf("result row needs at least 2 fields, got %d", len(values))
	}
	return ResultRow{
		ID:     values[0],
		Scores: slices.Clone(values[1 : len(values)-1]),
		Total:  values[len(values)-1],
	}, nil
}

// ResultsHeader returns the canonical header for n exercises.
func ResultsHeader(exercises int) []string {
	header := make([]string, 0, exercises+2)
	header = append(header, IDColumn)
	for i := 1; i <= exercises; i++ {
		header = append(header, "Exercise "+strconv.Itoa(i))
	}
	return append(header, TotalColumn)
}

// ResultsStore reads and rewrites the results CSV. Every mutation reads the
// whole file and writes it back; a single writer is assumed.
type ResultsStore struct {
	path      string
	exercises int
	comma     rune
	header    []string
}

// OpenResultsStore returns a store for path after ensuring the file exists
// with the canonical header.
func OpenResultsStore(path string, exercises int, comma rune) (*ResultsStore, error) {
	s := &ResultsStore{
		path:      path,
		exercises: exercises,
		comma:     comma,
		header:    ResultsHeader(exercises),
	}
	if err := s.EnsureInitialized(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the results file location.
func (s *ResultsStore) Path() string { return s.path }

// Header returns a copy of the expected header.
func (s *ResultsStore) Header() []string { return slices.Clone(s.header) }

// Exercises returns the configured exercise count.
func (s *ResultsStore) Exercises() int { return s.exercises }

// EnsureInitialized creates the file with the canonical header when absent and
// otherwise verifies the existing header matches exactly.
func (s *ResultsStore) EnsureInitialized() error {
	_, err := os.Stat(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s.writeAll(nil)
	case err != nil:
		return fmt.Errorf("stat results file: %w", err)
	}

	header, _, err := s.readAll()
	if err != nil {
		return err
	}
	if !slices.Equal(header, s.header) {
		return fmt.Errorf("%w: %s has header %q, want %q; either correct the column names or delete the file to start fresh",
			ErrFormatMismatch, s.path, header, s.header)
	}
	return nil
}

// LoadAll returns every stored row in file order, header excluded.
func (s *ResultsStore) LoadAll() ([]ResultRow, error) {
	_, records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	rows := make([]ResultRow, 0, len(records))
	for _, rec := range records {
		row, err := RowFromValues(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SameKey compares registration numbers ignoring surrounding whitespace, the
// way roster lookups do.
func SameKey(stored, key string) bool {
	return strings.TrimSpace(stored) == strings.TrimSpace(key)
}

// Find returns the first row stored under id.
func (s *ResultsStore) Find(id string) (ResultRow, bool, error) {
	_, records, err := s.readAll()
	if err != nil {
		return ResultRow{}, false, err
	}
	for _, rec := range records {
		if SameKey(rec[0], id) {
			row, err := RowFromValues(rec)
			return row, err == nil, err
		}
	}
	return ResultRow{}, false, nil
}

// Upsert writes row. With an empty editingKey the row is appended; otherwise
// the row stored under editingKey is replaced in place, which may rename it.
func (s *ResultsStore) Upsert(row ResultRow, editingKey string) error {
	if row.ID == "" {
		return ErrEmptyID
	}
	if len(row.Scores) != s.exercises {
		return fmt.Errorf("row %s has %d scores, want %d", row.ID, len(row.Scores), s.exercises)
	}

	_, records, err := s.readAll()
	if err != nil {
		return err
	}

	target := -1
	for i, rec := range records {
		if editingKey != "" && target < 0 && SameKey(rec[0], editingKey) {
			target = i
			continue
		}
		if SameKey(rec[0], row.ID) {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, row.ID)
		}
	}

	values := row.Values()
	if editingKey == "" {
		records = append(records, values)
	} else {
		if target < 0 {
			return fmt.Errorf("%w: %s", ErrRowNotFound, editingKey)
		}
		records[target] = values
	}
	return s.writeAll(records)
}

// Delete removes the first row whose values equal values exactly.
func (s *ResultsStore) Delete(values []string) error {
	_, records, err := s.readAll()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(records, func(rec []string) bool {
		return slices.Equal(rec, values)
	})
	if idx < 0 {
		return ErrStaleRow
	}
	return s.writeAll(slices.Delete(records, idx, idx+1))
}

func (s *ResultsStore) readAll() ([]string, [][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.comma
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: %s is empty", ErrFormatMismatch, s.path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read results header: %w", err)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read results file: %w", err)
		}
		if len(rec) != len(header) {
			line, _ := r.FieldPos(0)
			return nil, nil, fmt.Errorf("%s line %d: got %d fields, want %d", s.path, line, len(rec), len(header))
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// writeAll replaces the file through a temporary sibling and a rename.
func (s *ResultsStore) writeAll(records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp results file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	w.Comma = s.comma
	if err := w.Write(s.header); err != nil {
		tmp.Close()
		return fmt.Errorf("write results header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("write results rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp results file: %w", err)
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp results file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace results file: %w", err)
	}
	return nil
}
