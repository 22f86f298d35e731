package layout

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/spendgraph/pkg/errors"
)

// DragCategorySize is the radius categories shrink to while an expense is
// dragged.
const DragCategorySize = 15.0

// PositionGraphBeforeDrag pulls categories toward the dragged expense,
// expenses[0]. Each tick moves every category a fraction alpha of the way
// to it, so the pull fades as the simulation cools. The area is the whole
// canvas and no band constraint applies.
func PositionGraphBeforeDrag(ctx Context, categories []CategoryNode, expenses []ExpenseNode, links []Link, opts ...Option) (SimulationStats, error) {
	if len(expenses) == 0 {
		return SimulationStats{}, errors.New(errors.ErrCodeInvalidInput, "drag layout needs the dragged expense")
	}
	o := newOptions(opts)
	if err := checkLinks(categories, expenses, links, o); err != nil {
		return SimulationStats{}, err
	}

	sim := NewSimulation(ctx.Width, ctx.Height, o.seed)
	for _, c := range categories {
		sim.Add(Body{Charge: chargeFor(c.Size)})
	}
	addExpenses(sim, expenses)
	linkBodies(sim, len(categories), len(expenses), links)

	focus := Point{X: expenses[0].X, Y: expenses[0].Y}
	n := len(categories)
	sim.OnTick(func(alpha float64, bodies []Body) {
		for i := range n {
			bodies[i].X += (focus.X - bodies[i].X) * alpha
			bodies[i].Y += (focus.Y - bodies[i].Y) * alpha
		}
	})
	stats := sim.Run(o.ticks)
	writeBack(sim.Bodies(), categories, expenses)

	o.logger.Debug("positioned drag targets",
		"session", stats.SessionID, "expense", expenses[0].ID, "categories", n, "ticks", stats.Ticks)
	return stats, nil
}

// DragSession tracks one expense being dragged over the graph.
type DragSession struct {
	ID        uuid.UUID
	ExpenseID string

	state   State
	dragged int // index of the dragged expense in state.Expenses
	done    bool
}

// BeginDrag starts dragging an expense of the current snapshot. Categories
// are recomputed from the input, ignoring saved positions, shrunk to drop
// targets and laid out around the expense. The returned session's State is
// diffed against current.
func BeginDrag(ctx Context, in Input, current *State, expenseID string, opts ...Option) (*DragSession, error) {
	if current == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "drag needs a positioned snapshot")
	}
	idx := expenseIndex(current.Expenses, expenseID)
	if idx < 0 {
		return nil, errors.New(errors.ErrCodeExpenseNotFound, "expense %q is not in the layout", expenseID)
	}
	o := newOptions(opts)

	categories := CalculateCategories(in.Expenses, in.Categories)
	for i := range categories {
		categories[i].Size = DragCategorySize
	}
	dragged := []ExpenseNode{current.Expenses[idx]}
	links, dangling := CalculateLinks(categories, dragged)
	if err := reportDangling(dangling, o); err != nil {
		return nil, err
	}

	stats, err := PositionGraphBeforeDrag(ctx, categories, dragged, links, opts...)
	if err != nil {
		return nil, err
	}

	expenses := slices.Clone(current.Expenses)
	expenses[idx] = dragged[0]
	for i := range links {
		links[i].Target = idx
	}
	next := State{
		Categories: categories,
		Expenses:   expenses,
		Links:      links,
		Dates:      slices.Clone(current.Dates),
		Width:      current.Width,
		Height:     current.Height,
		Stats:      stats,
	}
	CalculateUpdate(current, &next)

	return &DragSession{
		ID:        stats.SessionID,
		ExpenseID: expenseID,
		state:     next,
		dragged:   idx,
	}, nil
}

// State returns the current drag snapshot.
func (d *DragSession) State() State {
	return d.state
}

// Move places the dragged expense at (x, y) and returns the new snapshot.
// The expense slice is replaced, never mutated, so snapshots returned
// earlier stay valid. Links follow automatically since they hold indices.
func (d *DragSession) Move(x, y float64) State {
	if d.done {
		return d.state
	}
	expenses := slices.Clone(d.state.Expenses)
	expenses[d.dragged].X = x
	expenses[d.dragged].Y = y
	d.state.Expenses = expenses
	return d.state
}

// Drop ends the drag. If the expense lies inside a category's box the
// reclassification is returned. The session is finished either way.
func (d *DragSession) Drop() (*Reclassification, bool) {
	if d.done {
		return nil, false
	}
	d.done = true
	e := d.state.Expenses[d.dragged]
	c, ok := FindOverlappingCategory(d.state.Categories, e.X, e.Y)
	if !ok {
		return nil, false
	}
	return &Reclassification{ExpenseID: e.ID, CategoryID: c.ID}, true
}

// Done reports whether Drop was called.
func (d *DragSession) Done() bool {
	return d.done
}

// FindOverlappingCategory returns the first category whose box strictly
// contains (x, y).
func FindOverlappingCategory(categories []CategoryNode, x, y float64) (CategoryNode, bool) {
	for _, c := range categories {
		if c.X-c.Size < x && x < c.X+c.Size &&
			c.Y-c.Size < y && y < c.Y+c.Size {
			return c, true
		}
	}
	return CategoryNode{}, false
}
