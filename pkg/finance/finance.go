package finance

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Selection types.
const (
	SelectCategory = "category"
	SelectExpense  = "expense"
)

// Expense is one spending record.
type Expense struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Timestamp  time.Time       `json:"timestamp"`
	Categories []string        `json:"categories,omitempty"`
}

// InCategory reports whether the expense is a member of the category id.
func (e Expense) InCategory(id string) bool {
	return slices.Contains(e.Categories, id)
}

// Category is a named bucket expenses can belong to.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Selection identifies the single category or expense the user has focused.
type Selection struct {
	Type string `json:"type"` // SelectCategory or SelectExpense
	ID   string `json:"id"`
}

// Dataset is the input of one layout pass.
type Dataset struct {
	Week       time.Time  `json:"week"`
	Categories []Category `json:"categories"`
	Expenses   []Expense  `json:"expenses"`
	Selection  *Selection `json:"selection,omitempty"`
}

// WeekEnd returns the exclusive end of the dataset week.
func (d *Dataset) WeekEnd() time.Time {
	return d.Week.AddDate(0, 0, 7)
}

// ExpensesForWeek returns the expenses whose timestamp falls in
// [Week, Week+7 days), in dataset order.
func (d *Dataset) ExpensesForWeek() []Expense {
	end := d.WeekEnd()
	out := make([]Expense, 0, len(d.Expenses))
	for _, e := range d.Expenses {
		if e.Timestamp.Before(d.Week) || !e.Timestamp.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Expense returns the expense with the given id.
func (d *Dataset) Expense(id string) (Expense, bool) {
	i := d.expenseIndex(id)
	if i < 0 {
		return Expense{}, false
	}
	return d.Expenses[i], true
}

// Category returns the category with the given id.
func (d *Dataset) Category(id string) (Category, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func (d *Dataset) expenseIndex(id string) int {
	return slices.IndexFunc(d.Expenses, func(e Expense) bool { return e.ID == id })
}
