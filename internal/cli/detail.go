package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spendgraph/pkg/finance"
)

// detailDateFormat matches the lane labels of the graph.
const detailDateFormat = "01/02 (Mon)"

// detailCommand creates the detail command listing the expenses of a category.
func (c *CLI) detailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detail [dataset.json] [category]",
		Short: "List the expenses of a category",
		Long: `List the expenses of a category with their date, name and amount,
followed by the category total. All expenses of the dataset are listed, not
only those of its week.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := finance.ReadDatasetFile(args[0])
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", args[0], err)
			}
			det, err := d.CategoryDetail(args[1])
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(det.Category.Name))
			fmt.Println(detailTable(det))
			printKeyValue("Total", StyleNumber.Render(det.Total.StringFixed(2)))
			return nil
		},
	}
}

// detailTable renders the rows of a category detail.
func detailTable(det finance.Detail) string {
	rows := make([][]string, len(det.Rows))
	for i, r := range det.Rows {
		rows[i] = []string{r.Date.Format(detailDateFormat), r.Name, r.Amount.StringFixed(2)}
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	amount := cell.Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Date", "Name", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 2:
				return amount
			default:
				return cell
			}
		}).
		String()
}
