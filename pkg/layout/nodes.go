package layout

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/spendgraph/pkg/finance"
)

// ExpenseSize is the radius of every expense node.
const ExpenseSize = 10.0

// CategoryNode is the view of one category.
type CategoryNode struct {
	ID          string
	Name        string
	Fill        string
	Total       decimal.Decimal // sum of the amounts of every member expense
	Size        float64         // radius, monotonic in Total
	X, Y        float64
	Selected    bool
	Highlighted bool
	Update      bool
}

// ExpenseNode is the view of one expense.
type ExpenseNode struct {
	ID          string
	Name        string
	Categories  []string // membership, read by the link builder and the highlighter
	Day         int      // weekday lane, Sunday = 0
	Size        float64
	Total       decimal.Decimal
	X, Y        float64
	X1          float64 // lane-entry x before this expense's own width is added
	Order       int     // position within the lane
	Fixed       bool    // pinned: the simulation never moves it
	Selected    bool
	Highlighted bool
	Update      bool
}

// Point is a 2D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CalculateCategory totals the amounts of every expense that lists the
// category. No match is a valid zero total.
func CalculateCategory(c finance.Category, expenses []finance.Expense) CategoryNode {
	total := decimal.Zero
	for _, e := range expenses {
		if e.InCategory(c.ID) {
			total = total.Add(e.Amount)
		}
	}
	return CategoryNode{
		ID:    c.ID,
		Name:  c.Name,
		Fill:  CategoryFill(c.Name),
		Total: total,
	}
}

// CalculateCategories builds a node per category, sorted by total
// descending. Ties keep their input order.
func CalculateCategories(expenses []finance.Expense, categories []finance.Category) []CategoryNode {
	nodes := make([]CategoryNode, len(categories))
	for i, c := range categories {
		nodes[i] = CalculateCategory(c, expenses)
	}
	slices.SortStableFunc(nodes, func(a, b CategoryNode) int {
		return b.Total.Cmp(a.Total)
	})
	return nodes
}

// CalculateExpenses projects expenses to fixed-radius nodes. Only categories
// scale with spend. Each expense's lane is its weekday read in loc, the
// location of the week start; a nil loc keeps every timestamp's own offset.
func CalculateExpenses(expenses []finance.Expense, loc *time.Location) []ExpenseNode {
	nodes := make([]ExpenseNode, len(expenses))
	for i, e := range expenses {
		nodes[i] = ExpenseNode{
			ID:         e.ID,
			Name:       e.Name,
			Categories: slices.Clone(e.Categories),
			Day:        weekday(e.Timestamp, loc),
			Size:       ExpenseSize,
			Total:      e.Amount,
		}
	}
	return nodes
}

func weekday(t time.Time, loc *time.Location) int {
	if loc != nil {
		t = t.In(loc)
	}
	return int(t.Weekday())
}

func categoryIndex(categories []CategoryNode, id string) int {
	return slices.IndexFunc(categories, func(c CategoryNode) bool { return c.ID == id })
}

func expenseIndex(expenses []ExpenseNode, id string) int {
	return slices.IndexFunc(expenses, func(e ExpenseNode) bool { return e.ID == id })
}
