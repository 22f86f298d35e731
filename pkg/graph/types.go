package graph

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/layout"
)

// =============================================================================
// Layout - Positioned Graph Serialization
// =============================================================================

// Layout is the canonical serialization format for a positioned snapshot.
// Used for output files, caching and reloading a layout to drag in.
type Layout struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Categories []Category `json:"categories"`
	Expenses   []Expense  `json:"expenses"`
	Links      []Edge     `json:"links"`
	Lanes      []Lane     `json:"lanes"`

	// Simulation summary
	Session string `json:"session,omitempty"`
	Ticks   int    `json:"ticks,omitempty"`
	Phase   string `json:"phase,omitempty"`
}

// Category is a positioned category node.
type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Fill        string          `json:"fill"`
	Total       decimal.Decimal `json:"total"`
	Size        float64         `json:"size"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Selected    bool            `json:"selected,omitempty"`
	Highlighted bool            `json:"highlighted,omitempty"`
	Update      bool            `json:"update,omitempty"`
}

// Expense is a positioned expense node.
type Expense struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Categories  []string        `json:"categories,omitempty"`
	Day         int             `json:"day"`
	Size        float64         `json:"size"`
	Total       decimal.Decimal `json:"total"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	X1          float64         `json:"x1"`
	Order       int             `json:"order,omitempty"`
	Fixed       bool            `json:"fixed,omitempty"`
	Selected    bool            `json:"selected,omitempty"`
	Highlighted bool            `json:"highlighted,omitempty"`
	Update      bool            `json:"update,omitempty"`
}

// Edge links a category (From) to an expense (To) by id.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Lane is one weekday band.
type Lane struct {
	Date   time.Time       `json:"date"`
	Label  string          `json:"label"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Total  decimal.Decimal `json:"total"`
	Fill   string          `json:"fill"`
	Update bool            `json:"update,omitempty"`
}

// =============================================================================
// State ↔ Layout Conversion
// =============================================================================

// FromState converts an engine snapshot to its serialization format.
// Links outside the snapshot are skipped.
func FromState(s layout.State) Layout {
	out := Layout{
		Width:      s.Width,
		Height:     s.Height,
		Categories: make([]Category, len(s.Categories)),
		Expenses:   make([]Expense, len(s.Expenses)),
		Links:      make([]Edge, 0, len(s.Links)),
		Lanes:      make([]Lane, len(s.Dates)),
		Ticks:      s.Stats.Ticks,
	}
	if s.Stats.SessionID != uuid.Nil {
		out.Session = s.Stats.SessionID.String()
		out.Phase = s.Stats.Phase.String()
	}

	for i, c := range s.Categories {
		out.Categories[i] = Category{
			ID: c.ID, Name: c.Name, Fill: c.Fill, Total: c.Total, Size: c.Size,
			X: c.X, Y: c.Y,
			Selected: c.Selected, Highlighted: c.Highlighted, Update: c.Update,
		}
	}
	for i, e := range s.Expenses {
		out.Expenses[i] = Expense{
			ID: e.ID, Name: e.Name, Categories: slices.Clone(e.Categories), Day: e.Day,
			Size: e.Size, Total: e.Total, X: e.X, Y: e.Y, X1: e.X1, Order: e.Order, Fixed: e.Fixed,
			Selected: e.Selected, Highlighted: e.Highlighted, Update: e.Update,
		}
	}
	for _, l := range s.Links {
		c, e, ok := s.Ends(l)
		if !ok {
			continue
		}
		out.Links = append(out.Links, Edge{From: c.ID, To: e.ID})
	}
	for i, d := range s.Dates {
		out.Lanes[i] = Lane{
			Date: d.Date, Label: d.FormattedDate,
			X: d.X, Y: d.Y, Width: d.Width, Height: d.Height,
			Total: d.Total, Fill: d.Fill, Update: d.Update,
		}
	}
	return out
}

// ToState converts a serialized layout back into an engine snapshot.
// Returns a DANGLING_REFERENCE error for links naming unknown nodes.
func ToState(l Layout) (layout.State, error) {
	s := layout.State{
		Width:      l.Width,
		Height:     l.Height,
		Categories: make([]layout.CategoryNode, len(l.Categories)),
		Expenses:   make([]layout.ExpenseNode, len(l.Expenses)),
		Links:      make([]layout.Link, len(l.Links)),
		Dates:      make([]layout.DateLane, len(l.Lanes)),
	}

	categories := make(map[string]int, len(l.Categories))
	for i, c := range l.Categories {
		categories[c.ID] = i
		s.Categories[i] = layout.CategoryNode{
			ID: c.ID, Name: c.Name, Fill: c.Fill, Total: c.Total, Size: c.Size,
			X: c.X, Y: c.Y,
			Selected: c.Selected, Highlighted: c.Highlighted, Update: c.Update,
		}
	}
	expenses := make(map[string]int, len(l.Expenses))
	for i, e := range l.Expenses {
		expenses[e.ID] = i
		s.Expenses[i] = layout.ExpenseNode{
			ID: e.ID, Name: e.Name, Categories: slices.Clone(e.Categories), Day: e.Day,
			Size: e.Size, Total: e.Total, X: e.X, Y: e.Y, X1: e.X1, Order: e.Order, Fixed: e.Fixed,
			Selected: e.Selected, Highlighted: e.Highlighted, Update: e.Update,
		}
	}
	for i, e := range l.Links {
		src, ok := categories[e.From]
		if !ok {
			return layout.State{}, errors.New(errors.ErrCodeDanglingReference, "link %s→%s: unknown category", e.From, e.To)
		}
		dst, ok := expenses[e.To]
		if !ok {
			return layout.State{}, errors.New(errors.ErrCodeDanglingReference, "link %s→%s: unknown expense", e.From, e.To)
		}
		s.Links[i] = layout.Link{Source: src, Target: dst}
	}
	for i, d := range l.Lanes {
		s.Dates[i] = layout.DateLane{
			Date: d.Date, FormattedDate: d.Label,
			X: d.X, Y: d.Y, Width: d.Width, Height: d.Height,
			Total: d.Total, Fill: d.Fill, Update: d.Update,
		}
	}
	if id, err := uuid.Parse(l.Session); err == nil {
		s.Stats.SessionID = id
	}
	if p, ok := layout.ParsePhase(l.Phase); ok {
		s.Stats.Phase = p
	}
	s.Stats.Ticks = l.Ticks
	return s, nil
}
