package graph_test

import (
	"fmt"

	"github.com/matzehuels/spendgraph/pkg/graph"
)

func ExampleToState() {
	data := []byte(`{
		"width": 1000,
		"height": 800,
		"categories": [{"id": "food", "name": "Food", "total": "12.5", "size": 7.5, "x": 300, "y": 600}],
		"expenses": [{"id": "e1", "name": "Lunch", "categories": ["food"], "day": 1, "size": 10, "total": "12.5", "x": 172, "y": 140, "fixed": true}],
		"links": [{"from": "food", "to": "e1"}]
	}`)

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	state, err := graph.ToState(l)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	c, e, _ := state.Ends(state.Links[0])
	fmt.Printf("%s (%s) -> %s at (%.0f, %.0f)\n", c.Name, c.Total, e.Name, e.X, e.Y)
	// Output:
	// Food (12.5) -> Lunch at (172, 140)
}
