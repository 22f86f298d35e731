// Package nodelink renders positioned spending graphs as node-link diagrams.
//
// # Overview
//
// The layout engine has already decided where every node goes, so the DOT
// produced here pins each node with pos="x,y!" and renders with the neato
// engine, which honors pinned positions instead of computing its own. The
// y axis is flipped because Graphviz grows upward.
//
// # Usage
//
//	dot := nodelink.ToDOT(state, nodelink.Options{Labels: true, Lanes: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Drawing
//
//   - Lanes: filled boxes across the top, labelled with date and total
//   - Categories: circles of their radius in their palette color
//   - Expenses: small circles; selected nodes get a heavy outline and
//     highlighted nodes a dark one
//   - Links: straight lines from category to expense
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
