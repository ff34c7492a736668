// Package commands implements the tabular subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/tabular/internal/config"
)

type configKey struct{}
type loggerKey struct{}

// WithConfig stores the loaded configuration on the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the configuration from the context, falling back to
// defaults when the command runs outside the root command's setup.
func ConfigFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// WithLogger stores the CLI logger on the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the logger from the context, or a discarding logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
