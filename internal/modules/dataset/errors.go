package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRows is returned when a resource holds a header but no records
	ErrNoRows = errors.New("no data rows")
	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("missing column")
	// ErrUnsupportedScheme is returned for locators no source handles
	ErrUnsupportedScheme = errors.New("unsupported locator scheme")
)

// LoadError reports that a dataset could not be loaded. It is terminal for
// the load that produced it.
type LoadError struct {
	Locator string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset from %s: %v", e.Locator, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports a single malformed row
type ParseError struct {
	Row    int    // 1-based line (CSV) or row number (SQLite)
	Column string // Date, Stock or Price
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: column %s: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func loadError(locator string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Locator: locator, Err: err}
}
