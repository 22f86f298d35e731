// Package graph provides the serialization format for positioned layouts.
//
// This package defines the canonical wire format for Spendgraph's layout
// data, used for JSON files, the layout cache and the drag command.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and external formats:
//
//   - [Layout]: Serialization type (this package)
//   - pkg/layout.State: Engine snapshot, links held as slice indices
//
// Use [FromState]/[ToState] to convert between them. In the wire format
// links name their endpoints by id, so a file stays valid when the node
// order changes.
//
// # Layout Serialization
//
//	{
//	  "width": 1000, "height": 800,
//	  "categories": [{"id": "food", "name": "Food", "fill": "#2ca02c",
//	                  "total": "75.75", "size": 30.04, "x": 412.1, "y": 563.4}],
//	  "expenses": [{"id": "e1", "name": "Lunch", "categories": ["food"],
//	                "day": 1, "size": 10, "total": "12.5", "x": 181.9,
//	                "y": 140.5, "x1": 125, "fixed": true}],
//	  "links": [{"from": "food", "to": "e1"}],
//	  "lanes": [{"date": "2015-06-07T00:00:00Z", "label": "06/07 (Sun)", ...}]
//	}
//
// Common operations:
//
//	l, _ := graph.ReadLayoutFile("layout.json")  // File → Layout
//	graph.WriteLayoutFile(l, "layout.json")      // Layout → File
//	data, _ := graph.MarshalLayout(l)            // Layout → []byte
//	state, _ := graph.ToState(l)                 // Layout → layout.State
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
