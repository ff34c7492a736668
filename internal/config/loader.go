package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "tabular.yaml"

// envPrefix namespaces environment overrides, e.g.
// TABULAR_DISPLAY_DATAFRAMES=plain.
const envPrefix = "TABULAR_"

// flagKeys maps CLI flag names onto config keys. Flags outside this map
// never reach the configuration.
var flagKeys = map[string]string{
	"dataframes": "display.dataframes",
	"page-size":  "display.page_size",
	"max-rows":   "export.max_rows",
}

// Load builds the configuration by layering, in increasing precedence:
// built-in defaults, the config file (when present), TABULAR_* environment
// variables, and CLI flags (when given).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"display.dataframes": defaults.Display.Dataframes,
		"display.page_size":  defaults.Display.PageSize,
		"export.max_rows":    defaults.Export.MaxRows,
	}, "."), nil); err != nil {
		return nil, err
	}

	configPath := path
	if configPath == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			configPath = ConfigFileName
		}
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// TABULAR_DISPLAY_DATAFRAMES -> display.dataframes
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			return flagKeys[key], value
		}), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
