// Package render turns positioned layouts into files.
//
// # Overview
//
//   - Node-link diagrams (in [nodelink] subpackage): DOT with pinned
//     positions, SVG via Graphviz
//   - Format conversion: SVG to PDF/PNG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(state, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/spendgraph/pkg/render/nodelink
package render
