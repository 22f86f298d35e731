package layout

import (
	"time"

	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/finance"
)

// Input is the raw data of one layout pass.
type Input struct {
	Week       time.Time
	Categories []finance.Category
	Expenses   []finance.Expense
	Selection  *finance.Selection
}

// InputFromDataset builds the input for the dataset week.
func InputFromDataset(d *finance.Dataset) Input {
	return Input{
		Week:       d.Week,
		Categories: d.Categories,
		Expenses:   d.ExpensesForWeek(),
		Selection:  d.Selection,
	}
}

// Build runs a full layout pass and returns the positioned snapshot.
func Build(ctx Context, in Input, opts ...Option) (State, error) {
	o := newOptions(opts)

	categories := CalculateCategories(in.Expenses, in.Categories)
	expenses := CalculateExpenses(in.Expenses, in.Week.Location())
	links, dangling := CalculateLinks(categories, expenses)
	if err := reportDangling(dangling, o); err != nil {
		return State{}, err
	}
	CalculateSizes(categories)
	HighlightSelections(in.Selection, categories, expenses)
	dates := DatesForWeek(ctx, in.Week, expenses)
	PositionExpenses(ctx, expenses)

	stats, err := PositionGraph(ctx, categories, expenses, links, opts...)
	if err != nil {
		return State{}, err
	}
	return State{
		Categories: categories,
		Expenses:   expenses,
		Links:      links,
		Dates:      dates,
		Width:      ctx.Width,
		Height:     ctx.Height,
		Stats:      stats,
	}, nil
}

func reportDangling(dangling []DanglingRef, o options) error {
	if len(dangling) == 0 {
		return nil
	}
	if o.strict {
		d := dangling[0]
		return errors.New(errors.ErrCodeDanglingReference,
			"expense %q references unknown category %q (%d dangling)", d.ExpenseID, d.CategoryID, len(dangling))
	}
	for _, d := range dangling {
		o.logger.Debug("dropping membership", "expense", d.ExpenseID, "category", d.CategoryID)
	}
	return nil
}
