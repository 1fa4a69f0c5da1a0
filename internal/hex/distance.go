package hex

// Distance returns the number of steps between two tiles.
// Offset coordinates are converted with u = x + y/2 before applying the
// axial distance formula; the neighbour table relies on exactly this scheme.
func Distance(a, b MapPos) int {
	du := (b.X + b.Y/2) - (a.X + a.Y/2)
	dy := b.Y - a.Y
	return (abs(du) + abs(dy) + abs(du-dy)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
