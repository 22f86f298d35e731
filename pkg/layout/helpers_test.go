package layout

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/spendgraph/pkg/finance"
)

// week starts on Sunday 2015-06-07.
var week = time.Date(2015, 6, 7, 0, 0, 0, 0, time.UTC)

func day(i int, hour int) time.Time {
	return week.AddDate(0, 0, i).Add(time.Duration(hour) * time.Hour)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleInput has two categories and three expenses: one in both
// categories, one in each.
func sampleInput() Input {
	return Input{
		Week: week,
		Categories: []finance.Category{
			{ID: "food", Name: "Food"},
			{ID: "fun", Name: "Fun"},
		},
		Expenses: []finance.Expense{
			{ID: "e1", Name: "Dinner and a show", Amount: amount("45.50"), Timestamp: day(1, 19), Categories: []string{"food", "fun"}},
			{ID: "e2", Name: "Groceries", Amount: amount("30.25"), Timestamp: day(3, 10), Categories: []string{"food"}},
			{ID: "e3", Name: "Bowling", Amount: amount("12"), Timestamp: day(6, 15), Categories: []string{"fun"}},
		},
	}
}

func mustContext(t *testing.T, w, h float64) Context {
	t.Helper()
	ctx, err := NewContext(w, h)
	if err != nil {
		t.Fatalf("NewContext(%v, %v): %v", w, h, err)
	}
	return ctx
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
