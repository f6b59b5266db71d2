package config

import (
	_ "embed"
)

//go:embed defaults/espipes.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Glyphs: "unicode",
			Color:  ColorAuto,
			Colors: ColorsConfig{
				Pipe:   "gray",
				Linked: "cyan",
				Route:  "bright_green",
				Start:  "bright_yellow",
				End:    "bright_magenta",
				Cursor: "bright_red",
			},
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/.espipes/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
