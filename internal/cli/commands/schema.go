package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	tbl "github.com/leapstack-labs/tabular/pkg/table"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	var samples bool

	cmd := &cobra.Command{
		Use:   "schema FILE",
		Short: "Show the columns and types of a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := loadManager(ctx, args[0], tbl.WithLogger(LoggerFrom(ctx)))
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)

			header := table.Row{"column", "type", "arrow type"}
			if samples {
				header = append(header, "samples")
			}
			t.AppendHeader(header)

			for _, name := range m.GetColumnNames() {
				fieldType, dataType, err := m.GetFieldType(name)
				if err != nil {
					return err
				}
				row := table.Row{name, fieldType, dataType}
				if samples {
					values, err := m.GetSampleValues(ctx, name)
					if err != nil {
						return err
					}
					row = append(row, formatSamples(values))
				}
				t.AppendRow(row)
			}

			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&samples, "samples", false, "include sample values per column")

	return cmd
}

func formatSamples(values []any) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v", v)
	}
	return s
}
