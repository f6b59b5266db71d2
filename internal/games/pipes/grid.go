package pipes

import (
	"errors"
	"fmt"
)

// Grid errors.
var (
	ErrOutOfRange  = errors.New("pipes: coordinate out of range")
	ErrPayloadSize = errors.New("pipes: map payload does not match grid size")
	ErrEmptyGrid   = errors.New("pipes: grid has no cells")
)

// Coord is a 1-indexed grid position as the player sees it.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the coordinate one step toward d.
func (c Coord) Step(d Direction) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Grid is the pipe board. Cells are stored row-major in a slice sized
// exactly height*width; all public accessors take 1-indexed coordinates.
type Grid struct {
	width  int
	height int
	cells  []Cell
	start  Coord
	end    Coord
}

// NewGrid builds a grid from a row-major map payload.
// Link bits present in the payload are discarded and connections are rebuilt.
func NewGrid(width, height int, payload []byte, start, end Coord) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	if len(payload) != width*height {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrPayloadSize, len(payload), width*height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		start:  start,
		end:    end,
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v", ErrOutOfRange, start)
	}
	if !g.InBounds(end) {
		return nil, fmt.Errorf("%w: end %v", ErrOutOfRange, end)
	}

	for i, b := range payload {
		g.cells[i] = Cell(b).ClearLinks()
	}
	g.RebuildConnections()
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Start returns the fixed start pipe position.
func (g *Grid) Start() Coord {
	return g.start
}

// End returns the fixed end pipe position.
func (g *Grid) End() Coord {
	return g.end
}

// InBounds reports whether c lies inside [1,height]x[1,width].
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 1 && c.Row <= g.height && c.Col >= 1 && c.Col <= g.width
}

// index converts a 1-indexed coordinate to a slice index.
// Callers must check InBounds first.
func (g *Grid) index(c Coord) int {
	return (c.Row-1)*g.width + (c.Col - 1)
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Cell, error) {
	return g.ValueAt(At(row, col))
}

// Set overwrites the cell at (row, col).
func (g *Grid) Set(row, col int, value Cell) error {
	return g.AssignAt(At(row, col), value)
}

// ValueAt returns the cell at c.
func (g *Grid) ValueAt(c Coord) (Cell, error) {
	if !g.InBounds(c) {
		return 0, fmt.Errorf("%w: %v outside %dx%d", ErrOutOfRange, c, g.height, g.width)
	}
	return g.cells[g.index(c)], nil
}

// AssignAt overwrites the cell at c.
func (g *Grid) AssignAt(c Coord, value Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v outside %dx%d", ErrOutOfRange, c, g.height, g.width)
	}
	g.cells[g.index(c)] = value
	return nil
}

// neighbor returns the cell adjacent to c toward d.
// Cells on the boundary have no neighbour on the outward side.
func (g *Grid) neighbor(c Coord, d Direction) (Cell, bool) {
	n := c.Step(d)
	if !g.InBounds(n) {
		return 0, false
	}
	return g.cells[g.index(n)], true
}

// RotateCell turns the pipe at (row, col) one quarter turn and rebuilds
// every connection. Start and end pipes must be rejected by the caller.
func (g *Grid) RotateCell(row, col int, clockwise bool) error {
	c := At(row, col)
	value, err := g.ValueAt(c)
	if err != nil {
		return err
	}

	rotated := value.ClearLinks().Rotate(clockwise)
	g.cells[g.index(c)] = rotated
	g.RebuildConnections()
	return nil
}

// RebuildConnections recomputes every link bit from the aperture bits.
// A link toward d is set iff the cell is open toward d, a neighbour exists
// toward d and that neighbour is open toward the opposite side. Only
// aperture bits are read, so the result does not depend on visiting order.
func (g *Grid) RebuildConnections() {
	for row := 1; row <= g.height; row++ {
		for col := 1; col <= g.width; col++ {
			c := At(row, col)
			i := g.index(c)
			value := g.cells[i].ClearLinks()

			for _, d := range Directions {
				if !value.HasAperture(d) {
					continue
				}
				n, ok := g.neighbor(c, d)
				if ok && n.HasAperture(d.Opposite()) {
					value = value.WithLink(d)
				}
			}
			g.cells[i] = value
		}
	}
}

// Payload returns the aperture bytes in row-major order, suitable for
// writing back as a map payload.
func (g *Grid) Payload() []byte {
	out := make([]byte, len(g.cells))
	for i, c := range g.cells {
		out[i] = byte(c.ClearLinks())
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
		start:  g.start,
		end:    g.end,
	}
}

// Equal returns true if two grids have the same dimensions, endpoints and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	if g.start != other.start || g.end != other.end {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
