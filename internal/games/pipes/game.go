package pipes

import (
	"errors"
	"fmt"
)

// ErrSolved is returned when a move is attempted on a finished puzzle.
var ErrSolved = errors.New("pipes: puzzle already solved")

// Game tracks one attempt at a puzzle: the live grid, the pristine layout
// used by restart, and the number of moves made so far.
type Game struct {
	grid     *Grid
	pristine *Grid
	moves    int
	solved   bool
}

// NewGame creates a game from a row-major map payload.
func NewGame(width, height int, payload []byte, start, end Coord) (*Game, error) {
	grid, err := NewGrid(width, height, payload, start, end)
	if err != nil {
		return nil, err
	}
	g := &Game{
		grid:     grid,
		pristine: grid.Clone(),
	}
	g.solved = grid.Connected()
	return g, nil
}

// Grid returns the live grid. Callers must not mutate it directly.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Moves returns the number of rotations made since the last restart.
func (g *Game) Moves() int {
	return g.moves
}

// Solved reports whether the start pipe is linked to the end pipe.
func (g *Game) Solved() bool {
	return g.solved
}

// Validate checks a rotate command against the grid without applying it.
func (g *Game) Validate(cmd Command) error {
	if cmd.Kind != CmdRotate {
		return nil
	}
	c := At(cmd.Row, cmd.Col)
	if c == g.grid.Start() || c == g.grid.End() {
		return fmt.Errorf("%w: %v", ErrFixedPipe, c)
	}
	if !g.grid.InBounds(c) {
		return fmt.Errorf("%w: %v outside %dx%d", ErrOutOfRange, c, g.grid.Height(), g.grid.Width())
	}
	return nil
}

// Rotate applies one rotation and counts it as a move.
// Rejected commands leave the grid and the move counter untouched.
func (g *Game) Rotate(row, col int, clockwise bool) error {
	if g.solved {
		return ErrSolved
	}
	cmd := Rotate(row, col, clockwise)
	if err := g.Validate(cmd); err != nil {
		return err
	}
	if err := g.grid.RotateCell(row, col, clockwise); err != nil {
		return err
	}
	g.moves++
	g.solved = g.grid.Connected()
	return nil
}

// Restart restores the original layout and resets the move counter.
func (g *Game) Restart() {
	g.grid = g.pristine.Clone()
	g.moves = 0
	g.solved = g.grid.Connected()
}

// Snapshot captures the observable game state for tests and logging.
type Snapshot struct {
	Moves  int
	Solved bool
	Route  []Coord
	Cells  []Cell
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	route, _ := g.grid.Route()
	cells := make([]Cell, len(g.grid.cells))
	copy(cells, g.grid.cells)
	return Snapshot{
		Moves:  g.moves,
		Solved: g.solved,
		Route:  route,
		Cells:  cells,
	}
}
