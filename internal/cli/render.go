package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spendgraph/pkg/finance"
	"github.com/matzehuels/spendgraph/pkg/graph"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/pipeline"
)

// renderCommand creates the render command for drawing a dataset or a
// computed layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		fromLayout bool
	)
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [dataset.json | layout.json]",
		Short: "Render a weekly dataset to SVG, DOT, PNG, PDF or JSON",
		Long: `Render a weekly dataset to SVG, DOT, PNG, PDF or JSON.

The dataset is laid out first (or the layout is taken from the cache). With
--from-layout the input is a layout.json produced by 'layout' and is drawn as
is. Nodes are pinned at their computed positions, so Graphviz only draws.

PNG and PDF output need rsvg-convert from librsvg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Formats = parseFormats(formatsStr)
			opts, err := c.options(flags)
			if err != nil {
				return err
			}
			if fromLayout {
				return c.runRenderLayout(cmd.Context(), args[0], opts, output)
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&flags.Labels, "labels", false, "write category names, amounts and lane dates")
	cmd.Flags().Float64Var(&flags.PNGScale, "png-scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().BoolVar(&fromLayout, "from-layout", false, "input is a layout.json instead of a dataset")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// runRender lays out and renders a dataset.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	d, err := finance.ReadDatasetFile(input)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, d, nil, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     &result.Stats,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// runRenderLayout renders a precomputed layout.
func (c *CLI) runRenderLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	state, err := readStateFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, state, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}

// readStateFile loads a layout.json as an engine snapshot.
func readStateFile(path string) (layout.State, error) {
	l, err := graph.ReadLayoutFile(path)
	if err != nil {
		return layout.State{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	state, err := graph.ToState(l)
	if err != nil {
		return layout.State{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	return state, nil
}

// artifactWriteParams describes rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     *pipeline.Stats
	cacheHit  bool
}

// artifactExt is the file extension of a format. JSON artifacts are layouts
// and must not collide with the dataset they came from.
func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return "layout.json"
	}
	return format
}

// writeArtifacts writes one file per format. A single format goes to output
// verbatim when given; otherwise files are named <base>.<format>.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s artifact", format)
		}
		path := base + "." + artifactExt(format)
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if path == p.input {
			return fmt.Errorf("refusing to overwrite input %s, pass --output", path)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	if p.stats != nil {
		printStats(*p.stats, p.cacheHit)
	}
	return nil
}
