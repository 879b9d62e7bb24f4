// Package domain provides core domain models and types.
package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical wire format for record dates
const DateLayout = "2006-01-02"

// Record represents one stock price observation
type Record struct {
	Date  time.Time       `json:"date"`  // UTC midnight of the trading day
	Stock string          `json:"stock"` // Case-sensitive symbol
	Price decimal.Decimal `json:"price"` // Non-negative, as loaded
}

// PriceFloat returns the price as float64 for plotting
func (r Record) PriceFloat() float64 {
	return r.Price.InexactFloat64()
}

// Dataset is the immutable collection of records loaded for the session.
// Accessors hand out copies so callers can never mutate the loaded data.
type Dataset struct {
	id       string
	source   string
	loadedAt time.Time
	records  []Record
	symbols  []string
}

// NewDataset builds a Dataset from records in load order and derives the
// distinct symbol set (first-seen order).
func NewDataset(id, source string, loadedAt time.Time, records []Record) *Dataset {
	return &Dataset{
		id:       id,
		source:   source,
		loadedAt: loadedAt,
		records:  slices.Clone(records),
		symbols:  DistinctSymbols(records),
	}
}

// ID returns the unique identifier of this load
func (d *Dataset) ID() string { return d.id }

// Source returns the locator the dataset was loaded from
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns when the dataset was loaded
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the records in load order
func (d *Dataset) Records() []Record { return slices.Clone(d.records) }

// Symbols returns a copy of the distinct stock symbols
func (d *Dataset) Symbols() []string { return slices.Clone(d.symbols) }

// DistinctSymbols returns each stock symbol once, in first-seen order
func DistinctSymbols(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	symbols := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Stock]; ok {
			continue
		}
		seen[r.Stock] = struct{}{}
		symbols = append(symbols, r.Stock)
	}
	return symbols
}

// FilterCriterion constrains a view of the dataset.
// Zero values mean "no constraint on this dimension".
type FilterCriterion struct {
	Stock string    `json:"stock,omitempty"`
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// IsEmpty reports whether the criterion constrains nothing
func (c FilterCriterion) IsEmpty() bool {
	return c.Stock == "" && c.Start.IsZero() && c.End.IsZero()
}

// Matches reports whether a record passes all three constraints.
// Date bounds are inclusive.
func (c FilterCriterion) Matches(r Record) bool {
	if c.Stock != "" && r.Stock != c.Stock {
		return false
	}
	if !c.Start.IsZero() && r.Date.Before(c.Start) {
		return false
	}
	if !c.End.IsZero() && r.Date.After(c.End) {
		return false
	}
	return true
}
