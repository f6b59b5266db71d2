package pipes

import "fmt"

// Cell is the packed state of one pipe segment.
//
// The byte holds four 2-bit slots ordered North, West, South, East from the
// high bits down. In each slot the high bit is the aperture (the segment is
// open toward that side) and the low bit is the link (the aperture currently
// meets a matching neighbour aperture). A link bit is only ever set together
// with its aperture bit.
type Cell uint8

const (
	northAperture Cell = 0x80
	eastAperture  Cell = 0x02

	// ApertureMask selects the four aperture bits.
	ApertureMask Cell = 0xAA
	// LinkMask selects the four link bits.
	LinkMask Cell = 0x55
)

// CellFromSides builds a link-free cell with the given apertures.
func CellFromSides(s Sides) Cell {
	var c Cell
	for _, d := range Directions {
		if s.Get(d) {
			c |= apertureBit(d)
		}
	}
	return c
}

func apertureBit(d Direction) Cell {
	return 1 << (d.slotShift() + 1)
}

func linkBit(d Direction) Cell {
	return 1 << d.slotShift()
}

// HasAperture reports whether the segment is open toward d.
func (c Cell) HasAperture(d Direction) bool {
	return c&apertureBit(d) != 0
}

// HasLink reports whether the aperture toward d is joined to a neighbour.
func (c Cell) HasLink(d Direction) bool {
	return c&linkBit(d) != 0
}

// WithLink returns the cell with the link toward d set.
// The link is only set when the matching aperture is open.
func (c Cell) WithLink(d Direction) Cell {
	if !c.HasAperture(d) {
		return c
	}
	return c | linkBit(d)
}

// Apertures extracts the four aperture bits.
func (c Cell) Apertures() Sides {
	return Sides{
		North: c.HasAperture(North),
		West:  c.HasAperture(West),
		South: c.HasAperture(South),
		East:  c.HasAperture(East),
	}
}

// Links extracts the four link bits.
func (c Cell) Links() Sides {
	return Sides{
		North: c.HasLink(North),
		West:  c.HasLink(West),
		South: c.HasLink(South),
		East:  c.HasLink(East),
	}
}

// ClearLinks zeroes every link bit and leaves the apertures untouched.
func (c Cell) ClearLinks() Cell {
	return c & ApertureMask
}

// IsEmpty reports whether the cell has no aperture at all.
func (c Cell) IsEmpty() bool {
	return c&ApertureMask == 0
}

// Rotate turns the segment one quarter turn.
//
// Clockwise moves every opening one slot along N->E->S->W->N, which is a
// shift toward the high bits; counter-clockwise is the reverse. The cell
// must already have its links cleared: a set link bit is shifted along with
// the apertures and may be truncated.
func (c Cell) Rotate(clockwise bool) Cell {
	if wouldLoseBit(c, clockwise) {
		return rotateWithCarry(c, clockwise)
	}
	return rotatePlain(c, clockwise)
}

// wouldLoseBit reports whether a plain two-bit shift truncates an aperture:
// the North aperture falls off the top when shifting clockwise, the East
// aperture falls off the bottom when shifting counter-clockwise.
func wouldLoseBit(c Cell, clockwise bool) bool {
	if clockwise {
		return c&northAperture != 0
	}
	return c&eastAperture != 0
}

func rotatePlain(c Cell, clockwise bool) Cell {
	if clockwise {
		return c << 2
	}
	return c >> 2
}

// rotateWithCarry shifts and re-inserts the truncated aperture in the slot
// vacated at the other end: North comes back as East, East as North.
func rotateWithCarry(c Cell, clockwise bool) Cell {
	if clockwise {
		return c<<2 | eastAperture
	}
	return c>>2 | northAperture
}

// String returns a compact representation like "N.S. 0x88".
func (c Cell) String() string {
	letters := [4]byte{'N', 'W', 'S', 'E'}
	out := make([]byte, 4)
	for i, d := range Directions {
		switch {
		case c.HasLink(d):
			out[i] = letters[i] + ('a' - 'A')
		case c.HasAperture(d):
			out[i] = letters[i]
		default:
			out[i] = '.'
		}
	}
	return fmt.Sprintf("%s 0x%02x", out, uint8(c))
}
