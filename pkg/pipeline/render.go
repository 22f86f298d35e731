package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/spendgraph/pkg/graph"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/render"
	"github.com/matzehuels/spendgraph/pkg/render/nodelink"
)

// RenderFromState generates output artifacts in the requested formats.
// The SVG is produced once and reused for PNG and PDF.
func RenderFromState(ctx context.Context, state layout.State, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(state, nodelink.Options{Labels: opts.Labels, Lanes: true})
	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNGContext(ctx, data, opts.PNGScale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDFContext(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(graph.FromState(state))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
