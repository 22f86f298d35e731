package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/render"
)

// pointsPerInch converts layout pixels to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Labels writes names into category nodes and amounts into expenses.
	Labels bool
	// Lanes draws the weekday lanes behind the expenses.
	Lanes bool
}

// ToDOT converts a positioned snapshot to Graphviz DOT with every node
// pinned. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
func ToDOT(s layout.State, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", num(s.Width), num(s.Height))
	buf.WriteString("  node [fixedsize=true, style=filled, fontname=\"Helvetica\", fontsize=10, penwidth=1];\n")
	buf.WriteString("  edge [color=\"#999999\"];\n")
	buf.WriteString("\n")

	if opts.Lanes {
		for i, d := range s.Dates {
			label := ""
			if opts.Labels {
				label = fmt.Sprintf("%s  $%s", d.FormattedDate, d.Total.StringFixed(2))
			}
			attrs := []string{
				"shape=box",
				fmt.Sprintf("label=%q", label),
				"labeljust=l",
				fmt.Sprintf("width=%s", inches(d.Width)),
				fmt.Sprintf("height=%s", inches(d.Height)),
				fmt.Sprintf("fillcolor=%q", d.Fill),
				"color=\"transparent\"",
				pos(d.X+d.Width/2, d.Y+d.Height/2, s.Height),
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", laneID(i), strings.Join(attrs, ", "))
		}
		buf.WriteString("\n")
	}

	for _, c := range s.Categories {
		label := ""
		if opts.Labels {
			label = c.Name
		}
		attrs := append(nodeAttrs(c.Size, c.Fill, label, c.Selected, c.Highlighted),
			pos(c.X, c.Y, s.Height))
		fmt.Fprintf(&buf, "  %q [%s];\n", categoryID(c.ID), strings.Join(attrs, ", "))
	}
	for _, e := range s.Expenses {
		label := ""
		if opts.Labels {
			label = e.Total.StringFixed(2)
		}
		attrs := append(nodeAttrs(e.Size, "#ffffff", label, e.Selected, e.Highlighted),
			"fontsize=7", pos(e.X, e.Y, s.Height))
		fmt.Fprintf(&buf, "  %q [%s];\n", expenseID(e.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range s.Links {
		c, e, ok := s.Ends(l)
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", categoryID(c.ID), expenseID(e.ID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(size float64, fill, label string, selected, highlighted bool) []string {
	attrs := []string{
		"shape=circle",
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%s", inches(2*size)),
		fmt.Sprintf("fillcolor=%q", fill),
	}
	switch {
	case selected:
		attrs = append(attrs, "penwidth=3", "color=\"#333333\"")
	case highlighted:
		attrs = append(attrs, "color=\"#333333\"")
	default:
		attrs = append(attrs, "color=\"#cccccc\"")
	}
	return attrs
}

// pos pins a node; layout y grows downward, Graphviz y upward.
func pos(x, y, height float64) string {
	return fmt.Sprintf("pos=\"%s,%s!\"", num(x), num(height-y))
}

func inches(px float64) string {
	return num(px / pointsPerInch)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func categoryID(id string) string { return "category:" + id }
func expenseID(id string) string  { return "expense:" + id }
func laneID(i int) string         { return "lane:" + strconv.Itoa(i) }

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
