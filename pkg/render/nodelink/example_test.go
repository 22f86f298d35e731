package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	state := layout.State{
		Width:      400,
		Height:     300,
		Categories: []layout.CategoryNode{{ID: "food", Name: "Food", Fill: "#1f77b4", Size: 20, X: 100, Y: 250}},
		Expenses:   []layout.ExpenseNode{{ID: "e1", Size: 10, X: 150, Y: 50}},
		Links:      []layout.Link{{Source: 0, Target: 0}},
	}

	dot := nodelink.ToDOT(state, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, " -- ") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "category:food" -- "expense:e1";
}

func ExampleRenderSVG() {
	state := layout.State{
		Width:      400,
		Height:     300,
		Categories: []layout.CategoryNode{{ID: "food", Name: "Food", Fill: "#1f77b4", Size: 20, X: 100, Y: 250}},
	}

	// Render to SVG (requires Graphviz)
	svg, err := nodelink.RenderSVG(nodelink.ToDOT(state, nodelink.Options{Labels: true}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}
