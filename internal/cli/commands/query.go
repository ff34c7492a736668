package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabular/pkg/frame/duckframe"
	"github.com/leapstack-labs/tabular/pkg/table"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		dbPath string
		plan   bool
	)

	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Run a SQL query against a DuckDB database",
		Long: `Run a SQL query against a DuckDB database and display a page of the
result. The query stays lazy: only the displayed page is materialized.
With --plan the query plan is printed instead of rows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ConfigFrom(ctx)

			db, err := duckframe.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			rel, err := duckframe.New(ctx, db, args[0])
			if err != nil {
				return err
			}

			if plan {
				p, err := rel.Plan(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			}

			page := rel.Head(int64(cfg.Display.PageSize))
			m := table.NewManager(page, table.WithLogger(LoggerFrom(ctx)))
			return writeTable(ctx, cmd.OutOrStdout(), m, false)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the DuckDB database (empty for in-memory)")
	cmd.Flags().BoolVar(&plan, "plan", false, "print the query plan instead of rows")

	return cmd
}
