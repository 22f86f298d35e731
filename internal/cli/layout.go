package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/finance"
	"github.com/matzehuels/spendgraph/pkg/graph"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		prev   string
		saved  string
	)
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [dataset.json...]",
		Short: "Compute the graph layout of one or more weekly datasets",
		Long: `Compute the graph layout of one or more weekly datasets.

For every dataset the layout command writes <input>.layout.json with all node
positions and <input>.positions.json with the settled category positions.
Pass the positions file back with --saved to start the next pass where the
last one ended, and a previous layout with --prev to flag what changed.

Several datasets are laid out in parallel. Results are cached locally for
faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 && (output != "" || prev != "") {
				return fmt.Errorf("--output and --prev need a single dataset")
			}
			opts, err := c.options(flags)
			if err != nil {
				return err
			}
			if saved != "" {
				if opts.Saved, err = readPositionsFile(saved); err != nil {
					return err
				}
			}
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), args, opts, output, prev)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&prev, "prev", "", "previous layout.json to diff against")
	cmd.Flags().StringVar(&saved, "saved", "", "positions.json with saved category positions")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// layoutOutcome is the result of laying out one dataset.
type layoutOutcome struct {
	input     string
	layout    string
	positions string
	result    *pipeline.Result
}

// runLayout lays out every input concurrently and writes the outputs.
func (c *CLI) runLayout(ctx context.Context, inputs []string, opts pipeline.Options, output, prevPath string) error {
	var prev *layout.State
	if prevPath != "" {
		l, err := graph.ReadLayoutFile(prevPath)
		if err != nil {
			return fmt.Errorf("load previous layout %s: %w", prevPath, err)
		}
		state, err := graph.ToState(l)
		if err != nil {
			return fmt.Errorf("load previous layout %s: %w", prevPath, err)
		}
		prev = &state
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d dataset(s)...", len(inputs)))
	spinner.Start()

	outcomes := make([]layoutOutcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, input := range inputs {
		g.Go(func() error {
			d, err := finance.ReadDatasetFile(input)
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", input, err)
			}
			result, err := runner.Execute(gctx, d, prev, opts)
			if err != nil {
				return fmt.Errorf("layout %s: %w", input, err)
			}

			base := basePath(output, input)
			out := layoutOutcome{
				input:     input,
				layout:    base + ".layout.json",
				positions: base + ".positions.json",
				result:    result,
			}
			if output != "" {
				out.layout = output
			}
			if err := os.WriteFile(out.layout, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", out.layout, err)
			}
			if err := writePositionsFile(result.Persist, out.positions); err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Laid out %d dataset(s)", len(inputs)))

	for _, out := range outcomes {
		printSuccess("Layout complete: %s", out.input)
		printFile(out.layout)
		printFile(out.positions)
		printStats(out.result.Stats, out.result.CacheInfo.LayoutHit)
	}
	printNewline()
	printNextStep("Render", appName+" render "+outcomes[0].input)

	return nil
}

// readPositionsFile loads a persisted positions event.
func readPositionsFile(path string) (map[string]layout.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "positions %s", path)
		}
		return nil, err
	}
	var ev layout.PersistPositions
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode positions %s", path)
	}
	return ev.Saved(), nil
}

// writePositionsFile stores a persisted positions event.
func writePositionsFile(ev layout.PersistPositions, path string) error {
	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write positions %s: %w", path, err)
	}
	return nil
}
