// Package config provides configuration for tabular's display and export
// behavior. It is decoupled from CLI concerns so the formatter registry
// and embedding hosts can load it directly.
package config

import (
	"fmt"
)

// DisplayConfig controls how dataframe values are rendered.
type DisplayConfig struct {
	// Dataframes selects "rich" (opinionated table formatters) or
	// "plain" (each library's default representation).
	Dataframes string `koanf:"dataframes"`

	// PageSize is the number of rows per rendered table page.
	PageSize int `koanf:"page_size"`
}

// ExportConfig bounds export behavior.
type ExportConfig struct {
	// MaxRows caps how many rows an export serializes. Zero means no cap.
	MaxRows int `koanf:"max_rows"`
}

// Config is the root configuration.
type Config struct {
	Display DisplayConfig `koanf:"display"`
	Export  ExportConfig  `koanf:"export"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Dataframes: "rich",
			PageSize:   10,
		},
		Export: ExportConfig{
			MaxRows: 0,
		},
	}
}

// Validate checks the configuration for values nothing can interpret.
func (c *Config) Validate() error {
	switch c.Display.Dataframes {
	case "rich", "plain":
	default:
		return fmt.Errorf("display.dataframes must be %q or %q, got %q", "rich", "plain", c.Display.Dataframes)
	}
	if c.Display.PageSize <= 0 {
		return fmt.Errorf("display.page_size must be positive, got %d", c.Display.PageSize)
	}
	if c.Export.MaxRows < 0 {
		return fmt.Errorf("export.max_rows must be non-negative, got %d", c.Export.MaxRows)
	}
	return nil
}
