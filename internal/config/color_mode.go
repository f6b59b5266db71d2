package config

// ColorMode decides when coloured output is produced.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Valid reports whether m is a known mode.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Enabled resolves the mode for an output that may or may not be a terminal.
func (m ColorMode) Enabled(isTerminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
