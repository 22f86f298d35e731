package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/finance"
	"github.com/matzehuels/spendgraph/pkg/graph"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/pipeline"
)

// dragOpts holds the command-line flags for the drag command.
type dragOpts struct {
	expense    string // id of the expense to drag
	to         string // drop point "x,y"
	onto       string // drop on this category's centre instead of a point
	layoutPath string // layout.json the drag starts from
	output     string // write the drag snapshot here
	apply      bool   // write the reclassification back to the dataset
}

// dragCommand creates the drag command that drops an expense onto a category.
func (c *CLI) dragCommand() *cobra.Command {
	var do dragOpts
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "drag [dataset.json]",
		Short: "Drag an expense onto a category",
		Long: `Drag an expense onto a category.

The categories are laid out around the dragged expense as small drop targets,
the expense is moved to --to x,y (or onto the centre of --onto CATEGORY) and
dropped. If it lands inside a category the expense is added to it; with
--apply the dataset file is updated.

Without --layout the drag starts from a fresh layout of the dataset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if do.expense == "" {
				return fmt.Errorf("--expense is required")
			}
			if (do.to == "") == (do.onto == "") {
				return fmt.Errorf("exactly one of --to or --onto is required")
			}
			opts, err := c.options(flags)
			if err != nil {
				return err
			}
			return c.runDrag(cmd.Context(), args[0], opts, do)
		},
	}

	cmd.Flags().StringVarP(&do.expense, "expense", "e", "", "id of the expense to drag")
	cmd.Flags().StringVar(&do.to, "to", "", "drop point as x,y")
	cmd.Flags().StringVar(&do.onto, "onto", "", "drop on the centre of this category")
	cmd.Flags().StringVar(&do.layoutPath, "layout", "", "layout.json to start from")
	cmd.Flags().StringVarP(&do.output, "output", "o", "", "write the drag snapshot as layout.json")
	cmd.Flags().BoolVar(&do.apply, "apply", false, "write the reclassification back to the dataset")
	addLayoutFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runDrag(ctx context.Context, input string, opts pipeline.Options, do dragOpts) error {
	d, err := finance.ReadDatasetFile(input)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var current layout.State
	if do.layoutPath != "" {
		current, err = readStateFile(do.layoutPath)
	} else {
		current, err = runner.ComputeLayout(ctx, d, opts)
	}
	if err != nil {
		return err
	}

	session, err := runner.BeginDrag(ctx, d, &current, do.expense, opts)
	if err != nil {
		return fmt.Errorf("begin drag: %w", err)
	}

	x, y, err := dropPoint(session.State(), do)
	if err != nil {
		return err
	}
	snapshot := session.Move(x, y)
	if do.output != "" {
		if err := graph.WriteLayoutFile(graph.FromState(snapshot), do.output); err != nil {
			return fmt.Errorf("write output %s: %w", do.output, err)
		}
	}

	var target *finance.Dataset
	if do.apply {
		target = d
	}
	ev, changed, err := runner.Drop(ctx, session, target)
	if err != nil {
		return fmt.Errorf("drop: %w", err)
	}

	if ev == nil {
		printWarning("Dropped %s outside every category", do.expense)
		return nil
	}
	printSuccess("Dropped %s on %s", StyleHighlight.Render(ev.ExpenseID), StyleHighlight.Render(ev.CategoryID))
	if do.output != "" {
		printFile(do.output)
	}
	switch {
	case !do.apply:
		printNextStep("Apply", appName+" drag "+input+" --apply -e "+do.expense+" --onto "+ev.CategoryID)
	case changed:
		if err := finance.WriteDatasetFile(d, input); err != nil {
			return fmt.Errorf("write dataset %s: %w", input, err)
		}
		printFile(input)
	default:
		printInfo("%s is already in %s", ev.ExpenseID, ev.CategoryID)
	}
	return nil
}

// dropPoint resolves --to or --onto against the drag snapshot.
func dropPoint(s layout.State, do dragOpts) (float64, float64, error) {
	if do.onto != "" {
		cat, ok := s.Category(do.onto)
		if !ok {
			return 0, 0, errors.New(errors.ErrCodeCategoryNotFound, "category %q is not in the layout", do.onto)
		}
		return cat.X, cat.Y, nil
	}
	return parsePoint(do.to)
}

// parsePoint parses "x,y".
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "point %q must be x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q", s)
	}
	return x, y, nil
}
