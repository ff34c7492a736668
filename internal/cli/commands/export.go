package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabular/pkg/table"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		format  string
		output  string
		columns []string
		search  string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a data file as CSV, JSON, or Parquet",
		Long: `Export a data file in another format.

JSON export is value-faithful: integers outside the range JavaScript can
represent exactly are emitted as strings. The export respects the
export.max_rows config cap when one is set.`,
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
			if cfg.Export.MaxRows > 0 {
				if m, err = m.Take(ctx, cfg.Export.MaxRows, 0); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			return writeExport(ctx, w, m, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv, json, or parquet")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "export only these columns")
	cmd.Flags().StringVar(&search, "search", "", "export only rows containing this text")

	return cmd
}
