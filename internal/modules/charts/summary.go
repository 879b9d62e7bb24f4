package charts

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/stockchart/internal/domain"
)

// Summary describes the prices of a filtered view
type Summary struct {
	Count     int       `json:"count"`
	Symbols   []string  `json:"symbols"`
	Start     time.Time `json:"start,omitempty"`
	End       time.Time `json:"end,omitempty"`
	First     float64   `json:"first"`
	Last      float64   `json:"last"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
	ChangePct float64   `json:"change_pct"` // last vs first, 0 when first is 0
}

// Summarize computes descriptive statistics in input order
func Summarize(records []domain.Record) Summary {
	sum := Summary{Count: len(records), Symbols: domain.DistinctSymbols(records)}
	if len(records) == 0 {
		return sum
	}

	prices := make([]float64, len(records))
	sum.Start, sum.End = records[0].Date, records[0].Date
	for i, r := range records {
		prices[i] = r.PriceFloat()
		if r.Date.Before(sum.Start) {
			sum.Start = r.Date
		}
		if r.Date.After(sum.End) {
			sum.End = r.Date
		}
	}

	sum.First = prices[0]
	sum.Last = prices[len(prices)-1]
	sum.Min = floats.Min(prices)
	sum.Max = floats.Max(prices)
	sum.Mean = stat.Mean(prices, nil)
	if len(prices) > 1 {
		sum.StdDev = stat.StdDev(prices, nil)
	}
	if sum.First != 0 {
		sum.ChangePct = (sum.Last - sum.First) / sum.First * 100
	}
	if math.IsNaN(sum.StdDev) {
		sum.StdDev = 0
	}
	return sum
}
