// Package hex provides the offset hex-grid coordinate system used by the
// simulation: positions, directions, adjacency and distance.
// It has no dependencies and every function is pure.
package hex

import "fmt"

// MapPos is an offset hex coordinate. Even rows are shifted half a tile to
// the right of odd rows, so neighbour offsets depend on the parity of Y.
type MapPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// P is a convenience constructor for MapPos.
func P(x, y int) MapPos {
	return MapPos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p MapPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// parity returns 0 for even rows and 1 for odd rows, including negative ones.
func (p MapPos) parity() int {
	return p.Y & 1
}

// Size is the dimension of a rectangular hex map.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Contains returns true if the position lies on the map.
func (s Size) Contains(p MapPos) bool {
	return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H
}

// Area returns the number of tiles on the map.
func (s Size) Area() int {
	return s.W * s.H
}

// Index converts an on-map position to a row-major index.
func (s Size) Index(p MapPos) int {
	return p.Y*s.W + p.X
}

// String returns a string representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// AllPositions returns every on-map position ordered by row then column.
func (s Size) AllPositions() []MapPos {
	positions := make([]MapPos, 0, s.Area())
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			positions = append(positions, P(x, y))
		}
	}
	return positions
}
