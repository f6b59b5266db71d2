package core

// RuntimeConfig contains configuration passed to the front ends at startup.
type RuntimeConfig struct {
	ScreenW int  // Screen width in characters
	ScreenH int  // Screen height in characters
	Color   bool // Whether ANSI colour may be emitted
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Color:   true,
	}
}
