package layout

import "testing"

func categoriesWithTotals(totals ...string) []CategoryNode {
	out := make([]CategoryNode, len(totals))
	for i, s := range totals {
		out[i] = CategoryNode{ID: s, Total: amount(s)}
	}
	return out
}

func TestCategoryScale(t *testing.T) {
	tests := []struct {
		name   string
		totals []string
		d0, d1 float64
	}{
		{"empty", nil, 0, 100},
		{"small totals use ceiling 100", []string{"5", "20"}, 5, 100},
		{"large totals", []string{"150", "500", "30"}, 30, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CategoryScale(categoriesWithTotals(tt.totals...))
			if s.D0 != tt.d0 || s.D1 != tt.d1 {
				t.Errorf("domain = [%v, %v], want [%v, %v]", s.D0, s.D1, tt.d0, tt.d1)
			}
			if s.R0 != MinCategorySize || s.R1 != MaxCategorySize {
				t.Errorf("range = [%v, %v]", s.R0, s.R1)
			}
		})
	}
}

func TestCalculateSizesBoundedAndMonotonic(t *testing.T) {
	cats := categoriesWithTotals("0", "1", "12.5", "50", "99.99", "100", "250", "1000")
	CalculateSizes(cats)

	for i, c := range cats {
		if c.Size < MinCategorySize || c.Size > MaxCategorySize {
			t.Errorf("%s: size %v outside [%v, %v]", c.ID, c.Size, MinCategorySize, MaxCategorySize)
		}
		if i > 0 && c.Size < cats[i-1].Size {
			t.Errorf("size not monotonic: %s=%v after %s=%v", c.ID, c.Size, cats[i-1].ID, cats[i-1].Size)
		}
	}
	if cats[0].Size != MinCategorySize {
		t.Errorf("smallest total size = %v, want %v", cats[0].Size, MinCategorySize)
	}
	if cats[len(cats)-1].Size != MaxCategorySize {
		t.Errorf("largest total size = %v, want %v", cats[len(cats)-1].Size, MaxCategorySize)
	}
}

func TestCalculateSizesDegenerateDomain(t *testing.T) {
	cats := categoriesWithTotals("300")
	CalculateSizes(cats)
	if cats[0].Size != MinCategorySize {
		t.Errorf("single large category size = %v, want %v", cats[0].Size, MinCategorySize)
	}
}

func TestLinearClamp(t *testing.T) {
	s := Linear{D0: 0, D1: 10, R0: 0, R1: 100, Clamp: true}
	for _, tt := range []struct{ in, want float64 }{{-5, 0}, {5, 50}, {20, 100}} {
		if got := s.Map(tt.in); got != tt.want {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	s.Clamp = false
	if got := s.Map(20); got != 200 {
		t.Errorf("unclamped Map(20) = %v, want 200", got)
	}
}

func TestCategoryFillDeterministic(t *testing.T) {
	if CategoryFill("Food") != CategoryFill("Food") {
		t.Error("same name produced different fills")
	}
	found := false
	for _, c := range category10 {
		if c == CategoryFill("Rent") {
			found = true
		}
	}
	if !found {
		t.Errorf("fill %q not in palette", CategoryFill("Rent"))
	}
}
