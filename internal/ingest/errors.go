package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNotNumeric    = errors.New("not a number")
	ErrNotInteger    = errors.New("not a whole number")
	ErrOutOfRange    = errors.New("out of range")
	ErrNotBoolean    = errors.New("not a boolean")
	ErrNotDate       = errors.New("not a date")
	ErrEmptyKeyword  = errors.New("empty keyword")
	ErrTooManyRows   = errors.New("too many rows")
)

// RowError locates a bad cell in an export. Row numbers are 1-based and
// count the header as row 1, matching what a spreadsheet shows.
type RowError struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Err    error  `json:"-"`
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %q, value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
