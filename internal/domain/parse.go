package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyField is returned when a required field is blank
	ErrEmptyField = errors.New("empty field")
	// ErrNegativePrice is returned for prices below zero
	ErrNegativePrice = errors.New("negative price")
)

// dateLayouts are tried in order when parsing record and control dates
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// ParseDate parses a calendar date and truncates it to UTC midnight
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrEmptyField
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return toDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

// ParsePrice parses a non-negative decimal price
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, ErrEmptyField
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if p.IsNegative() {
		return decimal.Decimal{}, ErrNegativePrice
	}
	return p, nil
}

// ParseStock trims and validates a stock symbol
func ParseStock(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyField
	}
	return s, nil
}

// NewRecord builds a Record from raw text fields
func NewRecord(date, stock, price string) (Record, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Record{}, fmt.Errorf("date: %w", err)
	}
	s, err := ParseStock(stock)
	if err != nil {
		return Record{}, fmt.Errorf("stock: %w", err)
	}
	p, err := ParsePrice(price)
	if err != nil {
		return Record{}, fmt.Errorf("price: %w", err)
	}
	return Record{Date: d, Stock: s, Price: p}, nil
}

// Day truncates t to UTC midnight of its calendar day
func Day(t time.Time) time.Time {
	return toDay(t)
}

func toDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
