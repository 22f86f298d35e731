package layout

import "github.com/cespare/xxhash/v2"

// category10 is the ten-color categorical palette used for category fills.
var category10 = [...]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Lane fills alternate by weekday parity.
const (
	laneFillEven = "#fff"
	laneFillOdd  = "#efefef"
)

// CategoryFill returns the palette color for a category name. The same name
// always gets the same color, independent of input order.
func CategoryFill(name string) string {
	return category10[xxhash.Sum64String(name)%uint64(len(category10))]
}
