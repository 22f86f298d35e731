package layout

import (
	"time"

	"github.com/shopspring/decimal"
)

// laneDateFormat renders lane labels as "06/07 (Sun)".
const laneDateFormat = "01/02 (Mon)"

// DateLane is the background band of one weekday.
type DateLane struct {
	Date          time.Time
	FormattedDate string
	X, Y          float64
	Width         float64
	Height        float64
	Total         decimal.Decimal
	Fill          string
	Update        bool
}

// DatesForWeek returns the seven lanes of the week starting at week, Sunday
// first. Lane i totals the expenses whose weekday is i.
func DatesForWeek(ctx Context, week time.Time, expenses []ExpenseNode) []DateLane {
	totals := make([]decimal.Decimal, Lanes)
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, e := range expenses {
		if e.Day >= 0 && e.Day < Lanes {
			totals[e.Day] = totals[e.Day].Add(e.Total)
		}
	}

	lanes := make([]DateLane, Lanes)
	for i := range lanes {
		date := week.AddDate(0, 0, i)
		fill := laneFillEven
		if i%2 == 1 {
			fill = laneFillOdd
		}
		lanes[i] = DateLane{
			Date:          date,
			FormattedDate: date.Format(laneDateFormat),
			X:             ctx.Padding.Left,
			Y:             ctx.LaneY(i),
			Width:         ctx.Width - ctx.Padding.Left,
			Height:        ctx.LaneHeight,
			Total:         totals[i],
			Fill:          fill,
		}
	}
	return lanes
}

// PositionExpenses pins every expense into its weekday lane. Within a lane
// expenses run left to right in input order, each advancing the cursor by
// its scaled total plus its radius. All lanes share one scale so equal
// amounts get equal widths across the week.
func PositionExpenses(ctx Context, expenses []ExpenseNode) {
	var byDay [Lanes][]int
	for i, e := range expenses {
		if e.Day >= 0 && e.Day < Lanes {
			byDay[e.Day] = append(byDay[e.Day], i)
		}
	}

	widest := 0.0
	for _, lane := range byDay {
		w := 0.0
		for _, i := range lane {
			w += expenses[i].Total.InexactFloat64() + expenses[i].Size
		}
		widest = max(widest, w)
	}
	scale := Linear{
		D0: 0, D1: max(widest, minLaneWidth),
		R0: 0, R1: ctx.Width - 2*ctx.Padding.Left,
	}

	for day, lane := range byDay {
		x := ctx.Padding.Left
		for order, i := range lane {
			e := &expenses[i]
			e.Order = order
			e.X1 = x
			x += scale.Map(e.Total.InexactFloat64()) + e.Size
			e.X = x
			e.Y = ctx.LaneY(day)
			e.Fixed = true
		}
	}
}
