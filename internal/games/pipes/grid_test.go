package pipes

import (
	"errors"
	"math/rand"
	"testing"
)

// scenarioGrid is the 2x2 board: (1,1) E+S, (1,2) W, (2,1) N, (2,2) empty.
func scenarioGrid(t *testing.T) *Grid {
	t.Helper()
	payload := []byte{
		byte(CellFromSides(sidesOf(East, South))), byte(CellFromSides(sidesOf(West))),
		byte(CellFromSides(sidesOf(North))), 0,
	}
	g, err := NewGrid(2, 2, payload, At(1, 2), At(2, 1))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	return g
}

func TestGridScenarioLinks(t *testing.T) {
	g := scenarioGrid(t)

	want := map[Coord]Sides{
		At(1, 1): {East: true, South: true},
		At(1, 2): {West: true},
		At(2, 1): {North: true},
		At(2, 2): {},
	}
	for c, links := range want {
		cell, err := g.ValueAt(c)
		if err != nil {
			t.Fatalf("ValueAt(%v) failed: %v", c, err)
		}
		if cell.Links() != links {
			t.Errorf("links at %v = %+v, want %+v", c, cell.Links(), links)
		}
	}
}

func TestGridRebuildIdempotent(t *testing.T) {
	g := randomGrid(7, 5, 42)
	g.RebuildConnections()
	once := g.Clone()

	g.RebuildConnections()
	if !g.Equal(once) {
		t.Error("second RebuildConnections changed the grid")
	}
}

func TestGridLinkRule(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := randomGrid(4, 3, seed)

		for row := 1; row <= g.Height(); row++ {
			for col := 1; col <= g.Width(); col++ {
				c := At(row, col)
				cell, _ := g.ValueAt(c)
				for _, d := range Directions {
					n := c.Step(d)
					neighbour, err := g.ValueAt(n)
					want := cell.HasAperture(d) && err == nil && neighbour.HasAperture(d.Opposite())
					if cell.HasLink(d) != want {
						t.Fatalf("seed %d: link %v at %v = %v, want %v", seed, d, c, cell.HasLink(d), want)
					}
				}
			}
		}
	}
}

func TestGridBoundaryHasNoLinks(t *testing.T) {
	// Every cell fully open: only inward links may be set
	payload := make([]byte, 9)
	for i := range payload {
		payload[i] = byte(ApertureMask)
	}
	g, err := NewGrid(3, 3, payload, At(1, 1), At(3, 3))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	corner, _ := g.Get(1, 1)
	if corner.HasLink(North) || corner.HasLink(West) {
		t.Errorf("top-left corner links outward: %v", corner)
	}
	if !corner.HasLink(South) || !corner.HasLink(East) {
		t.Errorf("top-left corner missing inward links: %v", corner)
	}
	centre, _ := g.Get(2, 2)
	if centre.Links().Count() != 4 {
		t.Errorf("centre links = %v, want all four", centre)
	}
}

func TestGridLoadClearsStoredLinks(t *testing.T) {
	// Both cells claim links but face away from each other
	payload := []byte{0xFF, 0x11}
	g, err := NewGrid(2, 1, payload, At(1, 1), At(1, 2))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	right, _ := g.Get(1, 2)
	if right != 0 {
		t.Errorf("cell without apertures kept link bits: %v", right)
	}
	left, _ := g.Get(1, 1)
	if left.Links() != (Sides{}) {
		t.Errorf("left cell links = %+v, want none", left.Links())
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := scenarioGrid(t)

	coords := []Coord{At(0, 1), At(1, 0), At(3, 1), At(1, 3), At(-1, -1)}
	for _, c := range coords {
		if _, err := g.ValueAt(c); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValueAt(%v) error = %v, want ErrOutOfRange", c, err)
		}
		if err := g.AssignAt(c, 0xFF); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("AssignAt(%v) error = %v, want ErrOutOfRange", c, err)
		}
		if err := g.RotateCell(c.Row, c.Col, true); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("RotateCell(%v) error = %v, want ErrOutOfRange", c, err)
		}
	}

	before := scenarioGrid(t)
	if !g.Equal(before) {
		t.Error("rejected operations mutated the grid")
	}
}

func TestNewGridErrors(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		payload []byte
		start   Coord
		end     Coord
		want    error
	}{
		{"empty", 0, 2, nil, At(1, 1), At(1, 1), ErrEmptyGrid},
		{"short payload", 2, 2, []byte{0, 0, 0}, At(1, 1), At(2, 2), ErrPayloadSize},
		{"start outside", 2, 2, make([]byte, 4), At(0, 1), At(2, 2), ErrOutOfRange},
		{"end outside", 2, 2, make([]byte, 4), At(1, 1), At(2, 3), ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.w, tt.h, tt.payload, tt.start, tt.end)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewGrid() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGridRotateCellRebuilds(t *testing.T) {
	g := scenarioGrid(t)

	// Turning (2,1) from N to E breaks the vertical link
	if err := g.RotateCell(2, 1, true); err != nil {
		t.Fatalf("RotateCell() failed: %v", err)
	}
	top, _ := g.Get(1, 1)
	if top.HasLink(South) {
		t.Error("(1,1) still linked south after neighbour turned away")
	}
	bottom, _ := g.Get(2, 1)
	if bottom.Apertures() != (Sides{East: true}) {
		t.Errorf("(2,1) apertures = %+v, want East", bottom.Apertures())
	}
	if bottom.Links() != (Sides{}) {
		t.Errorf("(2,1) links = %+v, want none", bottom.Links())
	}
}

func TestGridLargerThanFixedBuffer(t *testing.T) {
	// 20x20 = 400 cells, well beyond a 50-byte static map buffer
	g := randomGrid(20, 20, 7)
	if len(g.Payload()) != 400 {
		t.Errorf("Payload() length = %d, want 400", len(g.Payload()))
	}
	if err := g.RotateCell(20, 20, false); err != nil {
		t.Errorf("RotateCell(20, 20) failed: %v", err)
	}
}

func TestGridPayloadStripsLinks(t *testing.T) {
	g := scenarioGrid(t)
	for i, b := range g.Payload() {
		if Cell(b)&LinkMask != 0 {
			t.Errorf("Payload()[%d] = %#x carries link bits", i, b)
		}
	}
}

// randomGrid builds a grid with random apertures from a fixed seed.
func randomGrid(w, h int, seed int64) *Grid {
	rng := rand.New(rand.NewSource(seed))
	payload := make([]byte, w*h)
	for i := range payload {
		payload[i] = byte(rng.Intn(256))
	}
	g, err := NewGrid(w, h, payload, At(1, 1), At(h, w))
	if err != nil {
		panic(err)
	}
	return g
}
