package pipes

import (
	"math/bits"
	"testing"
)

func TestCellSlots(t *testing.T) {
	tests := []struct {
		dir      Direction
		aperture Cell
		link     Cell
	}{
		{North, 0x80, 0x40},
		{West, 0x20, 0x10},
		{South, 0x08, 0x04},
		{East, 0x02, 0x01},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := apertureBit(tt.dir); got != tt.aperture {
				t.Errorf("apertureBit(%v) = %#x, want %#x", tt.dir, got, tt.aperture)
			}
			if got := linkBit(tt.dir); got != tt.link {
				t.Errorf("linkBit(%v) = %#x, want %#x", tt.dir, got, tt.link)
			}
		})
	}
}

func TestCellAperturesAndLinks(t *testing.T) {
	// N aperture+link, S aperture only, E aperture+link
	c := Cell(0x80 | 0x40 | 0x08 | 0x02 | 0x01)

	want := Sides{North: true, South: true, East: true}
	if got := c.Apertures(); got != want {
		t.Errorf("Apertures() = %+v, want %+v", got, want)
	}
	wantLinks := Sides{North: true, East: true}
	if got := c.Links(); got != wantLinks {
		t.Errorf("Links() = %+v, want %+v", got, wantLinks)
	}
	if got := c.ClearLinks(); got != 0x8A {
		t.Errorf("ClearLinks() = %#x, want 0x8a", got)
	}
	if c.ClearLinks().Links() != (Sides{}) {
		t.Error("ClearLinks() should leave no link set")
	}
}

func TestCellWithLinkRequiresAperture(t *testing.T) {
	c := CellFromSides(Sides{North: true})

	if got := c.WithLink(South); got != c {
		t.Errorf("WithLink(South) on closed side = %v, want unchanged %v", got, c)
	}
	if got := c.WithLink(North); !got.HasLink(North) {
		t.Errorf("WithLink(North) = %v, want north link", got)
	}
}

func TestCellRotateSingleOpening(t *testing.T) {
	tests := []struct {
		name      string
		from      Direction
		clockwise bool
		to        Direction
	}{
		{"north cw", North, true, East},
		{"east cw", East, true, South},
		{"south cw", South, true, West},
		{"west cw", West, true, North},
		{"north ccw", North, false, West},
		{"west ccw", West, false, South},
		{"south ccw", South, false, East},
		{"east ccw", East, false, North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CellFromSides(sidesOf(tt.from))
			want := CellFromSides(sidesOf(tt.to))
			if got := c.Rotate(tt.clockwise); got != want {
				t.Errorf("Rotate(%v) of %v = %v, want %v", tt.clockwise, c, got, want)
			}
		})
	}
}

func TestCellRotateConflictPaths(t *testing.T) {
	// North set: a clockwise shift truncates it
	if !wouldLoseBit(0x80, true) {
		t.Error("wouldLoseBit(N, cw) = false, want true")
	}
	if wouldLoseBit(0x80, false) {
		t.Error("wouldLoseBit(N, ccw) = true, want false")
	}
	// East set: a counter-clockwise shift truncates it
	if !wouldLoseBit(0x02, false) {
		t.Error("wouldLoseBit(E, ccw) = false, want true")
	}
	if wouldLoseBit(0x02, true) {
		t.Error("wouldLoseBit(E, cw) = true, want false")
	}

	// N+E corner clockwise becomes E+S
	if got := Cell(0x82).Rotate(true); got != 0x0A {
		t.Errorf("Rotate(cw) of N+E = %#x, want 0x0a", got)
	}
	// N+E corner counter-clockwise becomes N+W
	if got := Cell(0x82).Rotate(false); got != 0xA0 {
		t.Errorf("Rotate(ccw) of N+E = %#x, want 0xa0", got)
	}
}

func TestCellRotatePeriodicity(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := Cell(v).ClearLinks()

		cw, ccw := c, c
		for i := 0; i < 4; i++ {
			cw = cw.Rotate(true)
			ccw = ccw.Rotate(false)
		}
		if cw != c {
			t.Fatalf("4x clockwise of %v = %v", c, cw)
		}
		if ccw != c {
			t.Fatalf("4x counter-clockwise of %v = %v", c, ccw)
		}
		if back := c.Rotate(true).Rotate(false); back != c {
			t.Fatalf("cw then ccw of %v = %v", c, back)
		}
		if c.Rotate(true).Apertures().Count() != c.Apertures().Count() {
			t.Fatalf("rotation of %v changed the number of openings", c)
		}
	}
}

func TestCellRotateMatchesBitRotation(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := Cell(v).ClearLinks()

		if got, want := c.Rotate(true), Cell(bits.RotateLeft8(uint8(c), 2)); got != want {
			t.Fatalf("Rotate(cw) of %v = %v, want %v", c, got, want)
		}
		if got, want := c.Rotate(false), Cell(bits.RotateLeft8(uint8(c), -2)); got != want {
			t.Fatalf("Rotate(ccw) of %v = %v, want %v", c, got, want)
		}
	}
}

func TestCellString(t *testing.T) {
	c := Cell(0x80 | 0x40 | 0x08)
	if got := c.String(); got != "n.S. 0xc8" {
		t.Errorf("String() = %q, want %q", got, "n.S. 0xc8")
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, d.Opposite().Opposite())
		}
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr != -or || dc != -oc {
			t.Errorf("Delta of %v and its opposite do not cancel", d)
		}
	}
}

// sidesOf returns Sides with the given directions set.
func sidesOf(dirs ...Direction) Sides {
	var s Sides
	for _, d := range dirs {
		switch d {
		case North:
			s.North = true
		case West:
			s.West = true
		case South:
			s.South = true
		case East:
			s.East = true
		}
	}
	return s
}
