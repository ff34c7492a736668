package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	gptable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabular/pkg/table"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	summaryKindStyle  = lipgloss.NewStyle().Faint(true)
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var (
		column string
		topK   int
	)

	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Show per-column summary statistics",
		Long: `Show summary statistics for every column of a data file.

Numeric columns report min/max/mean/median/std and quantiles, boolean
columns report true/false counts, temporal columns report their range,
and string columns report distinct counts. With --top-k the most
frequent values of each column are listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := loadManager(ctx, args[0], table.WithLogger(LoggerFrom(ctx)))
			if err != nil {
				return err
			}

			columns := m.GetColumnNames()
			if column != "" {
				columns = []string{column}
			}

			out := cmd.OutOrStdout()
			for _, name := range columns {
				s, err := m.GetSummary(ctx, name)
				if err != nil {
					return err
				}
				fieldType, dataType, err := m.GetFieldType(name)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s %s\n",
					summaryTitleStyle.Render(name),
					summaryKindStyle.Render(fmt.Sprintf("(%s, %s)", fieldType, dataType)))
				writeSummary(out, s)

				if topK > 0 {
					rows, err := m.CalculateTopKRows(ctx, name, topK)
					if err != nil {
						return err
					}
					writeTopK(out, rows)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "summarize only this column")
	cmd.Flags().IntVar(&topK, "top-k", 0, "also list the k most frequent values")

	return cmd
}

func writeSummary(w io.Writer, s table.Summary) {
	t := gptable.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(gptable.StyleLight)

	appendCount := func(label string, v *int64) {
		if v != nil {
			t.AppendRow(gptable.Row{label, *v})
		}
	}
	appendStat := func(label string, v any) {
		if v != nil {
			t.AppendRow(gptable.Row{label, fmt.Sprintf("%v", v)})
		}
	}

	appendCount("total", s.Total)
	appendCount("nulls", s.Nulls)
	appendCount("unique", s.Unique)
	appendCount("true", s.True)
	appendCount("false", s.False)
	appendStat("min", s.Min)
	appendStat("max", s.Max)
	appendStat("mean", s.Mean)
	appendStat("median", s.Median)
	appendStat("std", s.Std)
	appendStat("p5", s.P5)
	appendStat("p25", s.P25)
	appendStat("p75", s.P75)
	appendStat("p95", s.P95)

	t.Render()
}

func writeTopK(w io.Writer, rows []table.TopKRow) {
	t := gptable.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(gptable.StyleLight)
	t.AppendHeader(gptable.Row{"value", "count"})
	for _, r := range rows {
		value := "NULL"
		if r.Value != nil {
			value = strings.TrimSpace(fmt.Sprintf("%v", r.Value))
		}
		t.AppendRow(gptable.Row{value, r.Count})
	}
	t.Render()
}
