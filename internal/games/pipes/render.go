package pipes

import (
	"fmt"

	"github.com/vovakirdan/espipes/internal/core"
)

const (
	labelWidth = 4 // Row number column, right aligned, plus a gap
	cellWidth  = 2 // Glyph plus the horizontal joint to the next cell
)

// Palette assigns colours to board elements.
type Palette struct {
	Pipe   core.Color // Pipes without any link
	Linked core.Color // Pipes joined to at least one neighbour
	Route  core.Color // Linked pipes reachable from the start pipe
	Start  core.Color
	End    core.Color
	Cursor core.Color
}

// DefaultPalette returns the built-in colours.
func DefaultPalette() Palette {
	return Palette{
		Pipe:   core.ColorGray,
		Linked: core.ColorCyan,
		Route:  core.ColorBrightGreen,
		Start:  core.ColorBrightYellow,
		End:    core.ColorBrightMagenta,
		Cursor: core.ColorBrightRed,
	}
}

// RenderOptions controls how a grid is drawn.
type RenderOptions struct {
	Glyphs  GlyphSet
	Palette Palette
	Cursor  *Coord // Highlighted cell, nil for none
	Legend  bool   // Draw the start/end legend below the board
}

// DefaultRenderOptions returns unicode glyphs, the default palette and a legend.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Glyphs:  UnicodeGlyphs,
		Palette: DefaultPalette(),
		Legend:  true,
	}
}

// headerRows returns how many lines the column labels take.
func headerRows(g *Grid) int {
	if g.width >= 10 {
		return 2
	}
	return 1
}

// BoardSize returns the screen area Render needs for g.
func BoardSize(g *Grid, legend bool) (w, h int) {
	w = labelWidth + g.width*cellWidth
	h = headerRows(g) + g.height
	if legend {
		h += 2
		w = core.Max(w, len(legendText(g)))
	}
	return w, h
}

// CellOrigin returns the screen position of the glyph for c when the board
// is drawn at (originX, originY).
func CellOrigin(g *Grid, c Coord, originX, originY int) (x, y int) {
	x = originX + labelWidth + (c.Col-1)*cellWidth
	y = originY + headerRows(g) + (c.Row - 1)
	return x, y
}

// CellAt maps a screen position back to a grid coordinate.
func CellAt(g *Grid, x, y, originX, originY int) (Coord, bool) {
	area := core.NewRect(originX+labelWidth, originY+headerRows(g), g.width*cellWidth, g.height)
	if !area.Contains(x, y) {
		return Coord{}, false
	}
	return At(y-area.Y+1, (x-area.X)/cellWidth+1), true
}

func legendText(g *Grid) string {
	return fmt.Sprintf("S start %v   E end %v", g.start, g.end)
}

// Render draws the grid with row and column labels at (originX, originY).
func Render(g *Grid, dst *core.Screen, originX, originY int, opts RenderOptions) {
	headers := headerRows(g)

	// Column labels: tens on their own line for wide grids
	for col := 1; col <= g.width; col++ {
		x, _ := CellOrigin(g, At(1, col), originX, originY)
		if headers == 2 && col >= 10 {
			dst.SetColored(x, originY, rune('0'+(col/10)%10), opts.Palette.Pipe)
		}
		dst.SetColored(x, originY+headers-1, rune('0'+col%10), opts.Palette.Pipe)
	}

	reach := g.Reachable()
	for row := 1; row <= g.height; row++ {
		_, y := CellOrigin(g, At(row, 1), originX, originY)
		dst.DrawTextColored(originX, y, fmt.Sprintf("%3d", row), opts.Palette.Pipe)

		for col := 1; col <= g.width; col++ {
			c := At(row, col)
			cell := g.cells[g.index(c)]
			x, _ := CellOrigin(g, c, originX, originY)
			color := cellColor(g, c, cell, reach, opts)

			dst.SetColored(x, y, opts.Glyphs.Glyph(cell), color)
			if cell.HasLink(East) {
				dst.SetColored(x+1, y, opts.Glyphs.Fill, linkColor(c, reach, opts.Palette))
			}
		}
	}

	if opts.Legend {
		y := originY + headers + g.height + 1
		dst.DrawTextColored(originX, y, legendText(g), opts.Palette.Pipe)
		dst.SetColored(originX, y, 'S', opts.Palette.Start)
		dst.SetColored(originX+len(fmt.Sprintf("S start %v   ", g.start)), y, 'E', opts.Palette.End)
	}
}

// cellColor picks the colour for a single glyph.
func cellColor(g *Grid, c Coord, cell Cell, reach map[Coord]bool, opts RenderOptions) core.Color {
	switch {
	case opts.Cursor != nil && *opts.Cursor == c:
		return opts.Palette.Cursor
	case c == g.start:
		return opts.Palette.Start
	case c == g.end:
		return opts.Palette.End
	case cell&LinkMask == 0:
		return opts.Palette.Pipe
	}
	return linkColor(c, reach, opts.Palette)
}

func linkColor(c Coord, reach map[Coord]bool, p Palette) core.Color {
	if reach[c] {
		return p.Route
	}
	return p.Linked
}

// RenderScreen draws g onto a screen sized exactly for it.
func RenderScreen(g *Grid, opts RenderOptions) *core.Screen {
	w, h := BoardSize(g, opts.Legend)
	s := core.NewScreen(w, h)
	Render(g, s, 0, 0, opts)
	return s
}

// RenderText draws g as plain text, one line per screen row.
func RenderText(g *Grid, opts RenderOptions) string {
	return RenderScreen(g, opts).TrimmedString()
}
