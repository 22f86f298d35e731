package layout

import (
	"slices"

	"github.com/matzehuels/spendgraph/pkg/finance"
)

// HighlightSelections marks the selected node and everything linked to it.
// A nil selection or an unknown id leaves the nodes untouched.
func HighlightSelections(sel *finance.Selection, categories []CategoryNode, expenses []ExpenseNode) {
	if sel == nil {
		return
	}
	switch sel.Type {
	case finance.SelectCategory:
		i := categoryIndex(categories, sel.ID)
		if i < 0 {
			return
		}
		categories[i].Selected = true
		for j := range expenses {
			if slices.Contains(expenses[j].Categories, sel.ID) {
				expenses[j].Highlighted = true
			}
		}
	case finance.SelectExpense:
		i := expenseIndex(expenses, sel.ID)
		if i < 0 {
			return
		}
		expenses[i].Selected = true
		for _, id := range expenses[i].Categories {
			if j := categoryIndex(categories, id); j >= 0 {
				categories[j].Highlighted = true
			}
		}
	}
}
