// Package cli wires the tabular command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabular/internal/cli/commands"
	"github.com/leapstack-labs/tabular/internal/config"
)

// Version information, set at build time via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "tabular",
		Short: "Inspect, summarize, and export tabular data files",
		Long: `tabular is a viewer for tabular data.

It loads CSV, Parquet, and DuckDB sources behind a single interface and
offers paging, sorting, searching, per-column summary statistics, and
export to CSV, JSON, and Parquet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx := commands.WithConfig(cmd.Context(), cfg)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default ./"+config.ConfigFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("dataframes", "", "dataframe display mode: rich or plain")
	rootCmd.PersistentFlags().Int("page-size", 0, "rows per rendered table page")
	rootCmd.PersistentFlags().Int("max-rows", 0, "cap on exported rows (0 = no cap)")

	rootCmd.AddCommand(
		commands.NewViewCommand(),
		commands.NewSummaryCommand(),
		commands.NewSchemaCommand(),
		commands.NewExportCommand(),
		commands.NewQueryCommand(),
		commands.NewVersionCommand(Version, Commit, BuildDate),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
