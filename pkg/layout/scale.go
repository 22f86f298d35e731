package layout

// Category radius range and the smallest allowed domain ceiling.
const (
	MinCategorySize  = 7.5
	MaxCategorySize  = 60.0
	minCategoryTotal = 100.0
)

// minLaneWidth is the smallest domain ceiling of the lane scale, so a sparse
// week is not stretched across the whole canvas.
const minLaneWidth = 200.0

// Linear maps a domain [D0, D1] onto a range [R0, R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
	Clamp  bool
}

// Map scales v. A degenerate domain maps everything to R0.
func (s Linear) Map(v float64) float64 {
	t := 0.0
	if d := s.D1 - s.D0; d != 0 {
		t = (v - s.D0) / d
	}
	if s.Clamp {
		t = max(0, min(1, t))
	}
	return s.R0 + t*(s.R1-s.R0)
}

// CategoryScale builds the total-to-radius scale for a set of categories:
// domain [min total or 0, max(max total, 100)], range [7.5, 60], clamped.
func CategoryScale(categories []CategoryNode) Linear {
	lo, hi := 0.0, 1.0
	for i, c := range categories {
		v := c.Total.InexactFloat64()
		if i == 0 {
			lo, hi = v, v
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	return Linear{
		D0: lo, D1: max(hi, minCategoryTotal),
		R0: MinCategorySize, R1: MaxCategorySize,
		Clamp: true,
	}
}

// CalculateSizes sets every category's radius from its total.
func CalculateSizes(categories []CategoryNode) {
	s := CategoryScale(categories)
	for i := range categories {
		categories[i].Size = s.Map(categories[i].Total.InexactFloat64())
	}
}
