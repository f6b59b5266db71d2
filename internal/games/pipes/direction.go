// Package pipes implements the pipe-connection puzzle: the bit-packed cell
// codec, the grid engine that rebuilds connections, route finding between
// the start and end pipes, and the per-run game state.
// The package is UI-agnostic; rendering targets core.Screen.
package pipes

// Direction is one of the four apertures of a pipe cell.
// Values follow the slot order of the cell encoding, high bits first.
type Direction uint8

const (
	North Direction = iota
	West
	South
	East
)

// Directions lists every direction in slot order.
var Directions = [4]Direction{North, West, South, East}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case West:
		return "West"
	case South:
		return "South"
	case East:
		return "East"
	default:
		return "Unknown"
	}
}

// Opposite returns the direction facing back toward this one.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case West:
		return East
	case South:
		return North
	case East:
		return West
	default:
		return d
	}
}

// Delta returns the (drow, dcol) offset for one step in this direction.
// North decreases the row, East increases the column.
func (d Direction) Delta() (drow, dcol int) {
	switch d {
	case North:
		return -1, 0
	case West:
		return 0, -1
	case South:
		return 1, 0
	case East:
		return 0, 1
	default:
		return 0, 0
	}
}

// slotShift is the bit position of the link bit for this direction.
// The aperture bit sits directly above it.
func (d Direction) slotShift() uint {
	return uint(6 - 2*d)
}

// Sides holds one boolean per direction.
type Sides struct {
	North bool
	West  bool
	South bool
	East  bool
}

// Get returns the value stored for direction d.
func (s Sides) Get(d Direction) bool {
	switch d {
	case North:
		return s.North
	case West:
		return s.West
	case South:
		return s.South
	case East:
		return s.East
	default:
		return false
	}
}

// Count returns how many directions are set.
func (s Sides) Count() int {
	n := 0
	for _, d := range Directions {
		if s.Get(d) {
			n++
		}
	}
	return n
}
