package hex

import "fmt"

// Dir is one of the six hex directions.
type Dir uint8

const (
	NorthEast Dir = iota
	East
	SouthEast
	SouthWest
	West
	NorthWest
)

// NumDirs is the number of neighbours every tile has.
const NumDirs = 6

// dirToPosDiff is indexed by [row parity][direction].
var dirToPosDiff = [2][NumDirs]MapPos{
	// even rows
	{{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}},
	// odd rows
	{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1}},
}

// Dirs returns all six directions in enumeration order.
func Dirs() [NumDirs]Dir {
	return [NumDirs]Dir{NorthEast, East, SouthEast, SouthWest, West, NorthWest}
}

// String returns the name of the direction.
func (d Dir) String() string {
	switch d {
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// Opposite returns the direction pointing the other way.
func (d Dir) Opposite() Dir {
	return (d + 3) % NumDirs
}

// Neighbour returns the position one step from pos in direction dir.
// The result may be off the map; bounds checks are up to the caller.
func Neighbour(pos MapPos, dir Dir) MapPos {
	diff := dirToPosDiff[pos.parity()][dir]
	return MapPos{X: pos.X + diff.X, Y: pos.Y + diff.Y}
}

// Neighbours returns the six neighbours of pos in direction order.
func Neighbours(pos MapPos) [NumDirs]MapPos {
	var result [NumDirs]MapPos
	for _, d := range Dirs() {
		result[d] = Neighbour(pos, d)
	}
	return result
}

// IsAdjacent returns true if b is one of a's six neighbours.
func IsAdjacent(a, b MapPos) bool {
	_, ok := lookupDirection(a, b)
	return ok
}

// DirectionBetween returns the direction leading from one tile to an adjacent
// one. It panics if to is not a neighbour of from.
func DirectionBetween(from, to MapPos) Dir {
	d, ok := lookupDirection(from, to)
	if !ok {
		panic(fmt.Sprintf("hex: %s is not adjacent to %s", to, from))
	}
	return d
}

func lookupDirection(from, to MapPos) (Dir, bool) {
	diff := MapPos{X: to.X - from.X, Y: to.Y - from.Y}
	for i, d := range dirToPosDiff[from.parity()] {
		if d == diff {
			return Dir(i), true
		}
	}
	return 0, false
}
