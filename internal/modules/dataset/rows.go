package dataset

import (
	"fmt"

	"github.com/aristath/stockchart/internal/domain"
	"github.com/rs/zerolog"
)

// RowPolicy decides what happens to malformed rows
type RowPolicy string

const (
	// RowPolicyStrict aborts the load on the first malformed row
	RowPolicyStrict RowPolicy = "strict"
	// RowPolicySkip drops malformed rows and keeps loading
	RowPolicySkip RowPolicy = "skip"
)

// ParseRowPolicy validates a policy name
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch RowPolicy(s) {
	case RowPolicyStrict, "":
		return RowPolicyStrict, nil
	case RowPolicySkip:
		return RowPolicySkip, nil
	}
	return "", fmt.Errorf("unknown row policy %q (must be strict or skip)", s)
}

// Column names of the tabular input
const (
	ColumnDate  = "Date"
	ColumnStock = "Stock"
	ColumnPrice = "Price"
)

// rowCollector accumulates parsed rows and applies the row policy
type rowCollector struct {
	policy  RowPolicy
	records []domain.Record
	skipped int
	log     zerolog.Logger
}

func newRowCollector(policy RowPolicy, log zerolog.Logger) *rowCollector {
	return &rowCollector{policy: policy, log: log}
}

// add parses one row of raw fields. A non-nil return aborts the load.
func (c *rowCollector) add(row int, date, stock, price string) error {
	rec, perr := parseRow(row, date, stock, price)
	if perr == nil {
		c.records = append(c.records, rec)
		return nil
	}
	return c.reject(perr)
}

func (c *rowCollector) reject(perr *ParseError) error {
	if c.policy == RowPolicyStrict {
		return perr
	}
	c.skipped++
	c.log.Warn().
		Int("row", perr.Row).
		Str("column", perr.Column).
		Str("value", perr.Value).
		Err(perr.Err).
		Msg("Skipping malformed row")
	return nil
}

// result returns the collected records, failing when nothing usable remains
func (c *rowCollector) result() ([]domain.Record, error) {
	if len(c.records) == 0 {
		if c.skipped > 0 {
			return nil, fmt.Errorf("%w: all %d rows were malformed", ErrNoRows, c.skipped)
		}
		return nil, ErrNoRows
	}
	return c.records, nil
}

func parseRow(row int, date, stock, price string) (domain.Record, *ParseError) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.Record{}, &ParseError{Row: row, Column: ColumnDate, Value: date, Err: err}
	}
	s, err := domain.ParseStock(stock)
	if err != nil {
		return domain.Record{}, &ParseError{Row: row, Column: ColumnStock, Value: stock, Err: err}
	}
	p, err := domain.ParsePrice(price)
	if err != nil {
		return domain.Record{}, &ParseError{Row: row, Column: ColumnPrice, Value: price, Err: err}
	}
	return domain.Record{Date: d, Stock: s, Price: p}, nil
}
