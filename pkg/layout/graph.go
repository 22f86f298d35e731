package layout

import (
	"github.com/matzehuels/spendgraph/pkg/errors"
)

// PositionGraph runs the force simulation over categories and expenses and
// writes the final category positions back into categories.
//
// The simulation area is width x category band height. Expenses that are
// Fixed stay where PositionExpenses put them and act as anchors. After every
// tick each category whose box crosses a canvas edge is pushed back inside
// the band at the bottom of the canvas.
func PositionGraph(ctx Context, categories []CategoryNode, expenses []ExpenseNode, links []Link, opts ...Option) (SimulationStats, error) {
	o := newOptions(opts)
	if err := checkLinks(categories, expenses, links, o); err != nil {
		return SimulationStats{}, err
	}

	sim := NewSimulation(ctx.Width, ctx.CategoryHeight, o.seed)
	for _, c := range categories {
		b := Body{Charge: chargeFor(c.Size)}
		if p, ok := o.saved[c.ID]; ok {
			b.X, b.Y, b.Placed = p.X, p.Y, true
		}
		sim.Add(b)
	}
	addExpenses(sim, expenses)
	linkBodies(sim, len(categories), len(expenses), links)

	n := len(categories)
	sim.OnTick(func(_ float64, bodies []Body) {
		for i := range n {
			clampToBand(ctx, &bodies[i], categories[i].Size)
		}
	})
	stats := sim.Run(o.ticks)
	writeBack(sim.Bodies(), categories, expenses)

	o.logger.Debug("positioned graph",
		"session", stats.SessionID, "categories", len(categories), "expenses", len(expenses),
		"links", len(links), "ticks", stats.Ticks, "phase", stats.Phase)
	return stats, nil
}

// clampToBand snaps a category back inside the canvas width and the
// category band.
func clampToBand(ctx Context, b *Body, size float64) {
	if b.X-size < 0 {
		b.X = size + ctx.Padding.Left/2
	} else if b.X+size > ctx.Width {
		b.X = ctx.Width - size - ctx.Padding.Left/2
	}
	if top := ctx.BandTop(); b.Y-size < top {
		b.Y = top + size
	} else if b.Y+size > ctx.Height {
		b.Y = ctx.Height - size
	}
}

func addExpenses(sim *Simulation, expenses []ExpenseNode) {
	for _, e := range expenses {
		sim.Add(Body{
			X: e.X, Y: e.Y,
			Placed: e.Fixed,
			Fixed:  e.Fixed,
			Charge: chargeFor(e.Size),
		})
	}
}

// linkBodies maps category/expense links onto body indices, expenses
// following the categories. Links outside the node set are skipped.
func linkBodies(sim *Simulation, nc, ne int, links []Link) {
	for _, l := range links {
		if l.Source < 0 || l.Source >= nc || l.Target < 0 || l.Target >= ne {
			continue
		}
		sim.Link(l.Source, nc+l.Target)
	}
}

func writeBack(bodies []Body, categories []CategoryNode, expenses []ExpenseNode) {
	for i := range categories {
		categories[i].X, categories[i].Y = bodies[i].X, bodies[i].Y
	}
	for i := range expenses {
		if expenses[i].Fixed {
			continue
		}
		b := bodies[len(categories)+i]
		expenses[i].X, expenses[i].Y = b.X, b.Y
	}
}

// checkLinks finds links whose endpoints are not in the node set. They are
// ignored by the simulation; strict mode turns them into an error.
func checkLinks(categories []CategoryNode, expenses []ExpenseNode, links []Link, o options) error {
	for _, l := range links {
		if l.Source >= 0 && l.Source < len(categories) && l.Target >= 0 && l.Target < len(expenses) {
			continue
		}
		if o.strict {
			return errors.New(errors.ErrCodeDanglingReference,
				"link %d->%d is outside %d categories and %d expenses", l.Source, l.Target, len(categories), len(expenses))
		}
		o.logger.Debug("ignoring link outside node set", "source", l.Source, "target", l.Target)
	}
	return nil
}
