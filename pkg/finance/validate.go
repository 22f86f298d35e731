package finance

import (
	"time"

	"github.com/matzehuels/spendgraph/pkg/errors"
)

// Validate checks the structural integrity of the dataset: a Sunday week
// start, well-formed unique ids, non-negative amounts and a known selection type.
//
// Memberships that point at unknown categories are not rejected here; the
// layout engine drops them (or fails in strict mode).
func (d *Dataset) Validate() error {
	if d.Week.IsZero() {
		return errors.New(errors.ErrCodeInvalidDataset, "week start is required")
	}
	if d.Week.Weekday() != time.Sunday {
		return errors.New(errors.ErrCodeInvalidDataset, "week must start on a Sunday, got %s", d.Week.Weekday())
	}

	seen := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		if err := errors.ValidateID("category", c.ID); err != nil {
			return err
		}
		if seen[c.ID] {
			return errors.New(errors.ErrCodeInvalidDataset, "duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
	}

	seen = make(map[string]bool, len(d.Expenses))
	for _, e := range d.Expenses {
		if err := errors.ValidateID("expense", e.ID); err != nil {
			return err
		}
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidDataset, "duplicate expense id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Amount.IsNegative() {
			return errors.New(errors.ErrCodeInvalidDataset, "expense %q has negative amount %s", e.ID, e.Amount)
		}
		if e.Timestamp.IsZero() {
			return errors.New(errors.ErrCodeInvalidDataset, "expense %q has no timestamp", e.ID)
		}
	}

	if s := d.Selection; s != nil {
		switch s.Type {
		case SelectCategory, SelectExpense:
		default:
			return errors.New(errors.ErrCodeInvalidDataset, "unknown selection type %q", s.Type)
		}
	}
	return nil
}
