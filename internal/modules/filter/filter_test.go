package filter

import (
	"testing"
	"time"

	"github.com/aristath/stockchart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, stock string, price int64) domain.Record {
	return domain.Record{Date: date, Stock: stock, Price: decimal.NewFromInt(price)}
}

func sample() []domain.Record {
	return []domain.Record{
		rec(day(2024, 1, 1), "AAPL", 100),
		rec(day(2024, 1, 2), "AAPL", 110),
		rec(day(2024, 1, 1), "MSFT", 200),
	}
}

func TestApply_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		criterion domain.FilterCriterion
		expected  []domain.Record
	}{
		{
			name:      "by stock",
			criterion: domain.FilterCriterion{Stock: "AAPL"},
			expected: []domain.Record{
				rec(day(2024, 1, 1), "AAPL", 100),
				rec(day(2024, 1, 2), "AAPL", 110),
			},
		},
		{
			name:      "by start date",
			criterion: domain.FilterCriterion{Start: day(2024, 1, 2)},
			expected:  []domain.Record{rec(day(2024, 1, 2), "AAPL", 110)},
		},
		{
			name:      "by end date",
			criterion: domain.FilterCriterion{End: day(2024, 1, 1)},
			expected: []domain.Record{
				rec(day(2024, 1, 1), "AAPL", 100),
				rec(day(2024, 1, 1), "MSFT", 200),
			},
		},
		{
			name:      "matches nothing",
			criterion: domain.FilterCriterion{Stock: "ZZZ"},
			expected:  []domain.Record{},
		},
		{
			name: "inverted range",
			criterion: domain.FilterCriterion{
				Start: day(2024, 1, 2),
				End:   day(2024, 1, 1),
			},
			expected: []domain.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Apply(sample(), tt.criterion))
		})
	}
}

func TestApply_EmptyCriterionIsIdentity(t *testing.T) {
	data := sample()
	assert.Equal(t, data, Apply(data, domain.FilterCriterion{}))
}

func TestApply_Idempotent(t *testing.T) {
	criteria := []domain.FilterCriterion{
		{},
		{Stock: "AAPL"},
		{Start: day(2024, 1, 2)},
		{Stock: "MSFT", End: day(2024, 1, 1)},
	}
	for _, c := range criteria {
		once := Apply(sample(), c)
		assert.Equal(t, once, Apply(once, c))
	}
}

func TestApply_InclusiveBounds(t *testing.T) {
	c := domain.FilterCriterion{Start: day(2024, 1, 1), End: day(2024, 1, 2)}
	assert.Len(t, Apply(sample(), c), 3)
}

func TestApply_OrderPreservingSubsequence(t *testing.T) {
	data := []domain.Record{
		rec(day(2024, 3, 1), "AAPL", 1),
		rec(day(2024, 1, 1), "MSFT", 2),
		rec(day(2024, 2, 1), "AAPL", 3),
		rec(day(2024, 1, 15), "AAPL", 4),
	}
	got := Apply(data, domain.FilterCriterion{Stock: "AAPL"})

	// Each output element appears in the input after the previous one
	j := 0
	for _, r := range got {
		for j < len(data) && data[j] != r {
			j++
		}
		if !assert.Less(t, j, len(data), "record %v not found in order", r) {
			return
		}
		j++
	}
	assert.Equal(t, []int64{1, 3, 4}, []int64{
		got[0].Price.IntPart(), got[1].Price.IntPart(), got[2].Price.IntPart(),
	})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	data := sample()
	before := append([]domain.Record(nil), data...)
	_ = Apply(data, domain.FilterCriterion{Stock: "MSFT"})
	assert.Equal(t, before, data)
}

func TestApply_NilInput(t *testing.T) {
	got := Apply(nil, domain.FilterCriterion{Stock: "AAPL"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
