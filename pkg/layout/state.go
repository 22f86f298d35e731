package layout

// State is one positioned snapshot of the graph.
type State struct {
	Categories []CategoryNode
	Expenses   []ExpenseNode
	Links      []Link
	Dates      []DateLane
	Width      float64
	Height     float64
	Stats      SimulationStats
}

// Category returns the category node with the given id.
func (s State) Category(id string) (CategoryNode, bool) {
	if i := categoryIndex(s.Categories, id); i >= 0 {
		return s.Categories[i], true
	}
	return CategoryNode{}, false
}

// Expense returns the expense node with the given id.
func (s State) Expense(id string) (ExpenseNode, bool) {
	if i := expenseIndex(s.Expenses, id); i >= 0 {
		return s.Expenses[i], true
	}
	return ExpenseNode{}, false
}

// Ends resolves a link to its two nodes. ok is false for a link outside the
// snapshot.
func (s State) Ends(l Link) (c CategoryNode, e ExpenseNode, ok bool) {
	if l.Source < 0 || l.Source >= len(s.Categories) || l.Target < 0 || l.Target >= len(s.Expenses) {
		return CategoryNode{}, ExpenseNode{}, false
	}
	return s.Categories[l.Source], s.Expenses[l.Target], true
}

// Reclassification asks the data layer to add an expense to a category.
type Reclassification struct {
	ExpenseID  string `json:"expense"`
	CategoryID string `json:"category"`
}

// CategoryPosition is a persisted category position.
type CategoryPosition struct {
	ID string `json:"id"`
	Point
}

// PersistPositions asks the data layer to remember where categories settled.
type PersistPositions struct {
	Categories []CategoryPosition `json:"categories"`
}

// PersistPositions returns the event that saves this snapshot's category
// positions.
func (s State) PersistPositions() PersistPositions {
	ev := PersistPositions{Categories: make([]CategoryPosition, len(s.Categories))}
	for i, c := range s.Categories {
		ev.Categories[i] = CategoryPosition{ID: c.ID, Point: Point{X: c.X, Y: c.Y}}
	}
	return ev
}

// Saved turns a persisted event back into WithSavedPositions input.
func (p PersistPositions) Saved() map[string]Point {
	m := make(map[string]Point, len(p.Categories))
	for _, c := range p.Categories {
		m[c.ID] = c.Point
	}
	return m
}
