package pipes

// GlyphSet maps each of the 16 aperture combinations to a single rune.
// Runes are indexed by the aperture nibble N=8, W=4, S=2, E=1.
type GlyphSet struct {
	Name  string
	Runes [16]rune
	Fill  rune // Drawn between horizontally joined cells
}

// UnicodeGlyphs draws pipes with box-drawing characters.
var UnicodeGlyphs = GlyphSet{
	Name: "unicode",
	Runes: [16]rune{
		0x0: '·',
		0x1: '╶', // E
		0x2: '╷', // S
		0x3: '┌', // S+E
		0x4: '╴', // W
		0x5: '─', // W+E
		0x6: '┐', // W+S
		0x7: '┬', // W+S+E
		0x8: '╵', // N
		0x9: '└', // N+E
		0xA: '│', // N+S
		0xB: '├', // N+S+E
		0xC: '┘', // N+W
		0xD: '┴', // N+W+E
		0xE: '┤', // N+W+S
		0xF: '┼', // all
	},
	Fill: '─',
}

// ASCIIGlyphs is the fallback for terminals without box-drawing support.
// Corners, tees and crosses all share '+'.
var ASCIIGlyphs = GlyphSet{
	Name: "ascii",
	Runes: [16]rune{
		0x0: '.',
		0x1: '>',
		0x2: 'v',
		0x3: '+',
		0x4: '<',
		0x5: '-',
		0x6: '+',
		0x7: '+',
		0x8: '^',
		0x9: '+',
		0xA: '|',
		0xB: '+',
		0xC: '+',
		0xD: '+',
		0xE: '+',
		0xF: '+',
	},
	Fill: '-',
}

// GlyphSetByName returns the named glyph set, defaulting to unicode.
func GlyphSetByName(name string) GlyphSet {
	if name == ASCIIGlyphs.Name {
		return ASCIIGlyphs
	}
	return UnicodeGlyphs
}

// apertureNibble packs the four apertures of c into N=8, W=4, S=2, E=1.
func apertureNibble(c Cell) int {
	n := 0
	for i, d := range Directions {
		if c.HasAperture(d) {
			n |= 8 >> i
		}
	}
	return n
}

// Glyph returns the rune drawn for c.
func (gs GlyphSet) Glyph(c Cell) rune {
	return gs.Runes[apertureNibble(c)]
}

// ParseGlyph converts a unicode glyph back to a link-free cell.
// '.', ' ' and '·' are accepted as empty cells.
func ParseGlyph(r rune) (Cell, bool) {
	switch r {
	case '.', ' ':
		return 0, true
	}
	for nibble, g := range UnicodeGlyphs.Runes {
		if g != r {
			continue
		}
		var c Cell
		for i, d := range Directions {
			if nibble&(8>>i) != 0 {
				c |= apertureBit(d)
			}
		}
		return c, true
	}
	return 0, false
}
