package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/spendgraph/pkg/errors"
)

// AddExpenseToCategory adds categoryID to the expense's memberships.
// It reports whether the dataset changed; adding an existing membership is a
// no-op.
func (d *Dataset) AddExpenseToCategory(expenseID, categoryID string) (bool, error) {
	i := d.expenseIndex(expenseID)
	if i < 0 {
		return false, errors.New(errors.ErrCodeExpenseNotFound, "expense %q not found", expenseID)
	}
	if _, ok := d.Category(categoryID); !ok {
		return false, errors.New(errors.ErrCodeCategoryNotFound, "category %q not found", categoryID)
	}
	e := &d.Expenses[i]
	if e.InCategory(categoryID) {
		return false, nil
	}
	// Copy so callers holding the old slice do not observe the change.
	e.Categories = append(append(make([]string, 0, len(e.Categories)+1), e.Categories...), categoryID)
	return true, nil
}

// DetailRow is one expense line of a category detail table.
type DetailRow struct {
	ExpenseID string
	Date      time.Time
	Name      string
	Amount    decimal.Decimal
}

// Detail summarizes one category across every expense in the dataset.
type Detail struct {
	Category Category
	Total    decimal.Decimal
	Rows     []DetailRow
}

// CategoryDetail collects every expense of the category, in dataset order,
// along with their total. It is not limited to the dataset week.
func (d *Dataset) CategoryDetail(id string) (Detail, error) {
	c, ok := d.Category(id)
	if !ok {
		return Detail{}, errors.New(errors.ErrCodeCategoryNotFound, "category %q not found", id)
	}
	det := Detail{Category: c, Total: decimal.Zero}
	for _, e := range d.Expenses {
		if !e.InCategory(id) {
			continue
		}
		det.Total = det.Total.Add(e.Amount)
		det.Rows = append(det.Rows, DetailRow{
			ExpenseID: e.ID,
			Date:      e.Timestamp,
			Name:      e.Name,
			Amount:    e.Amount,
		})
	}
	return det, nil
}
