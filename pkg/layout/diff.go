package layout

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	ignoreCategoryUpdate = cmpopts.IgnoreFields(CategoryNode{}, "Update")
	ignoreExpenseUpdate  = cmpopts.IgnoreFields(ExpenseNode{}, "Update")
	ignoreLaneUpdate     = cmpopts.IgnoreFields(DateLane{}, "Update")
)

// CalculateUpdate flags every node and lane of next whose counterpart in
// prev differs in any field. Nodes match by id, lanes by calendar date.
// Stale flags on prev are cleared. Nodes with no counterpart are left
// alone; the renderer treats them as new.
func CalculateUpdate(prev, next *State) {
	if prev == nil || next == nil {
		return
	}
	for i := range next.Categories {
		c := &next.Categories[i]
		if j := categoryIndex(prev.Categories, c.ID); j >= 0 {
			p := &prev.Categories[j]
			p.Update = false
			c.Update = !cmp.Equal(*p, *c, ignoreCategoryUpdate)
		}
	}
	for i := range next.Expenses {
		e := &next.Expenses[i]
		if j := expenseIndex(prev.Expenses, e.ID); j >= 0 {
			p := &prev.Expenses[j]
			p.Update = false
			e.Update = !cmp.Equal(*p, *e, ignoreExpenseUpdate)
		}
	}
	for i := range next.Dates {
		d := &next.Dates[i]
		for j := range prev.Dates {
			p := &prev.Dates[j]
			if !sameDay(p, d) {
				continue
			}
			p.Update = false
			d.Update = !cmp.Equal(*p, *d, ignoreLaneUpdate)
			break
		}
	}
}

func sameDay(a, b *DateLane) bool {
	ay, am, ad := a.Date.Date()
	by, bm, bd := b.Date.Date()
	return ay == by && am == bm && ad == bd
}
