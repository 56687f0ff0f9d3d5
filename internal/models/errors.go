package models

import "errors"

var (
	// ErrFormatMismatch reports a results file whose header differs from the expected schema.
	ErrFormatMismatch = errors.New("results file has incorrect format")

	// ErrDuplicateKey reports a write that would store a second row for the same ID.
	ErrDuplicateKey = errors.New("registration number already has a row")

	// ErrRowNotFound reports an update whose editing key names no stored row.
	ErrRowNotFound = errors.New("row not found")

	// ErrStaleRow reports a delete whose values no longer match any stored row.
	ErrStaleRow = errors.New("row no longer matches the results file")

	// ErrMissingColumn reports a roster file lacking one of the configured columns.
	ErrMissingColumn = errors.New("roster is missing a column")

	// ErrEmptyID reports a submit without a registration number.
	ErrEmptyID = errors.New("registration number is empty")
)
