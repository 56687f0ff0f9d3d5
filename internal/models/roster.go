package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"exam-points/internal/config"
)

// RosterRow is one student from the institution's roster export.
type RosterRow struct {
	RegistrationNumber string
	FirstName          string
	LastName           string
	RetryFlag          string
}

// FullName joins first and last name.
func (r RosterRow) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// IsThirdAttempt reports whether the retry flag carries the third-attempt value.
func (r RosterRow) IsThirdAttempt(value string) bool {
	return value != "" && strings.TrimSpace(r.RetryFlag) == value
}

// Roster looks students up in the roster file. The file is scanned on every
// lookup and never modified.
type Roster struct {
	path    string
	comma   rune
	columns config.RosterColumns
}

func NewRoster(path string, comma rune, columns config.RosterColumns) *Roster {
	return &Roster{path: path, comma: comma, columns: columns}
}

// Path returns the roster file location.
func (r *Roster) Path() string { return r.path }

// Check opens the roster and verifies the configured columns are present.
func (r *Roster) Check() error {
	f, _, _, err := r.open()
	if err != nil {
		return err
	}
	return f.Close()
}

// FindByRegistrationNumber returns the first row whose registration number
// equals id.
func (r *Roster) FindByRegistrationNumber(id string) (RosterRow, bool, error) {
	f, reader, idx, err := r.open()
	if err != nil {
		return RosterRow{}, false, err
	}
	defer f.Close()

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return RosterRow{}, false, nil
		}
		if err != nil {
			return RosterRow{}, false, fmt.Errorf("read roster: %w", err)
		}
		if field(rec, idx.id) != id {
			continue
		}
		return RosterRow{
			RegistrationNumber: id,
			FirstName:          field(rec, idx.first),
			LastName:           field(rec, idx.last),
			RetryFlag:          field(rec, idx.retry),
		}, true, nil
	}
}

type rosterIndex struct {
	id, first, last, retry int
}

func (r *Roster) open() (*os.File, *csv.Reader, rosterIndex, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, nil, rosterIndex{}, fmt.Errorf("open roster: %w", err)
	}

	reader := csv.NewReader(f)
	reader.Comma = r.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		f.Close()
		return nil, nil, rosterIndex{}, fmt.Errorf("read roster header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	lookup := func(name string) (int, error) {
		i := slices.Index(header, name)
		if i < 0 {
			return 0, fmt.Errorf("%w: %q in %s", ErrMissingColumn, name, r.path)
		}
		return i, nil
	}

	var idx rosterIndex
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{r.columns.RegistrationNumber, &idx.id},
		{r.columns.FirstName, &idx.first},
		{r.columns.LastName, &idx.last},
		{r.columns.RetryFlag, &idx.retry},
	} {
		i, err := lookup(c.name)
		if err != nil {
			f.Close()
			return nil, nil, rosterIndex{}, err
		}
		*c.dst = i
	}
	return f, reader, idx, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}
