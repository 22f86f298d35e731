// Package pkg provides the public libraries behind spendgraph, a tool that
// lays out one week of expenses as a node-link diagram: categories float as
// circles sized by their totals, expenses sit pinned on per-day lanes, and
// dragging an expense onto a category reclassifies it.
//
// # Quick Start
//
// Load a dataset, compute a layout and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/spendgraph/pkg/finance"
//	    "github.com/matzehuels/spendgraph/pkg/pipeline"
//	)
//
//	d, _ := finance.ReadDatasetFile("week.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), d, nil, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [finance] - Dataset model: categories, expenses, the week being shown, and
// the reclassification and detail operations that mutate or summarize it.
//
// [layout] - The diagram engine. Builds nodes and links from a dataset,
// places expenses on date lanes, runs the force simulation that settles the
// categories, and drives drag sessions that end in a reclassification.
//
// [graph] - JSON serialization of a computed layout state.
//
// [render/nodelink] - Graphviz DOT output with pinned positions, plus SVG,
// PNG and PDF rendering through go-graphviz.
//
// [render] - SVG to PDF/PNG conversion via rsvg-convert.
//
// [pipeline] - The dataset → layout → render pipeline with caching, shared by
// the CLI and any other entry point.
//
// [cache] - Content-addressed caches (file, null, scoped) and key helpers.
//
// [errors] - Coded errors used across the packages.
//
// [observability] - Hook interfaces for pipeline, drag and cache events.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [finance]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/finance
// [layout]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/layout
// [graph]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/graph
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/spendgraph/pkg/observability
package pkg
