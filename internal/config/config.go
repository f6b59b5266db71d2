// Package config provides YAML-based configuration loading for the
// display and run-history settings.
package config

import (
	"fmt"

	"github.com/vovakirdan/espipes/internal/core"
	"github.com/vovakirdan/espipes/internal/games/pipes"
)

// Config is the complete espipes configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	History HistoryConfig `yaml:"history"`
}

// DisplayConfig controls how the board is drawn.
type DisplayConfig struct {
	Glyphs string       `yaml:"glyphs"` // "unicode" or "ascii"
	Color  ColorMode    `yaml:"color"`
	Colors ColorsConfig `yaml:"colors"`
}

// ColorsConfig names a colour for each board element.
type ColorsConfig struct {
	Pipe   string `yaml:"pipe"`
	Linked string `yaml:"linked"`
	Route  string `yaml:"route"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	Cursor string `yaml:"cursor"`
}

// HistoryConfig controls the sqlite run log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	switch c.Display.Glyphs {
	case pipes.UnicodeGlyphs.Name, pipes.ASCIIGlyphs.Name:
	default:
		return fmt.Errorf("config: display.glyphs must be %q or %q, got %q",
			pipes.UnicodeGlyphs.Name, pipes.ASCIIGlyphs.Name, c.Display.Glyphs)
	}
	if !c.Display.Color.Valid() {
		return fmt.Errorf("config: display.color must be auto, always or never, got %q", c.Display.Color)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("config: history.db_path is required when history is enabled")
	}
	return nil
}

// GlyphSet returns the configured glyph set.
func (c Config) GlyphSet() pipes.GlyphSet {
	return pipes.GlyphSetByName(c.Display.Glyphs)
}

// Palette resolves the configured colour names.
func (c Config) Palette() (pipes.Palette, error) {
	var p pipes.Palette
	fields := []struct {
		key  string
		name string
		dst  *core.Color
	}{
		{"pipe", c.Display.Colors.Pipe, &p.Pipe},
		{"linked", c.Display.Colors.Linked, &p.Linked},
		{"route", c.Display.Colors.Route, &p.Route},
		{"start", c.Display.Colors.Start, &p.Start},
		{"end", c.Display.Colors.End, &p.End},
		{"cursor", c.Display.Colors.Cursor, &p.Cursor},
	}
	for _, f := range fields {
		color, ok := core.ParseColor(f.name)
		if !ok {
			return pipes.Palette{}, fmt.Errorf("config: display.colors.%s: unknown colour %q", f.key, f.name)
		}
		*f.dst = color
	}
	return p, nil
}

// RenderOptions builds board render options from the display settings.
func (c Config) RenderOptions() (pipes.RenderOptions, error) {
	palette, err := c.Palette()
	if err != nil {
		return pipes.RenderOptions{}, err
	}
	opts := pipes.DefaultRenderOptions()
	opts.Glyphs = c.GlyphSet()
	opts.Palette = palette
	return opts, nil
}
