package layout

// Link connects a category to one of its expenses. Source indexes the
// Categories slice and Target the Expenses slice of the same State.
type Link struct {
	Source int
	Target int
}

// DanglingRef is a membership whose category is not among the nodes.
type DanglingRef struct {
	ExpenseID  string
	CategoryID string
}

// CalculateLinks emits one link per membership of every expense, in expense
// order then membership order. Memberships naming an unknown category are
// dropped and returned so the caller can decide whether that is an error.
func CalculateLinks(categories []CategoryNode, expenses []ExpenseNode) ([]Link, []DanglingRef) {
	var (
		links    []Link
		dangling []DanglingRef
	)
	for t, e := range expenses {
		for _, id := range e.Categories {
			s := categoryIndex(categories, id)
			if s < 0 {
				dangling = append(dangling, DanglingRef{ExpenseID: e.ID, CategoryID: id})
				continue
			}
			links = append(links, Link{Source: s, Target: t})
		}
	}
	return links, dangling
}
