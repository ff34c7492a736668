package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabular/pkg/table"
)

// NewViewCommand creates the view command.
func NewViewCommand() *cobra.Command {
	var (
		columns  []string
		sortBy   string
		desc     bool
		search   string
		page     int
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Display a page of a data file",
		Long: `Display a page of a CSV or Parquet file as a table.

Rows can be filtered with a case-insensitive search, sorted by a column
(nulls always sort last), and paged with --page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ConfigFrom(ctx)

			m, err := loadManager(ctx, args[0], table.WithLogger(LoggerFrom(ctx)))
			if err != nil {
				return err
			}

			if len(columns) > 0 {
				if m, err = m.SelectColumns(ctx, columns); err != nil {
					return err
				}
			}
			if search != "" {
				if m, err = m.Search(ctx, search); err != nil {
					return err
				}
			}
			if sortBy != "" {
				if m, err = m.SortValues(ctx, sortBy, desc); err != nil {
					return err
				}
			}

			total, known, err := m.GetNumRows(ctx, false)
			if err != nil {
				return err
			}

			pageSize := cfg.Display.PageSize
			pageM, err := m.Take(ctx, pageSize, page*pageSize)
			if err != nil {
				return err
			}

			if err := writeTable(ctx, cmd.OutOrStdout(), pageM, markdown); err != nil {
				return err
			}
			if known {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d rows total\n", page, total)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "restrict output to these columns")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by this column")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&search, "search", "", "keep only rows containing this text")
	cmd.Flags().IntVar(&page, "page", 0, "zero-based page to display")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render as a Markdown table")

	return cmd
}
