package maze

// ResolveStart returns the two directions leading from Start onto the loop.
//
// A direction qualifies when the neighbor in that direction is a pipe that
// a walker moving that way could enter, i.e. the pipe opens back towards
// Start. Neighbors outside the grid are skipped. Directions are returned in
// [Directions] order.
//
// Anything other than exactly two qualifying neighbors yields an
// *AmbiguousStartError.
func ResolveStart(g *Grid) ([2]Direction, error) {
	start := g.Start()
	var found []Direction
	for d, n := range g.Neighbors(start) {
		if n.OK && n.Tile.Connects(Direction(d).Opposite()) {
			found = append(found, Direction(d))
		}
	}
	if len(found) != 2 {
		return [2]Direction{}, &AmbiguousStartError{Start: start, Found: found}
	}
	return [2]Direction{found[0], found[1]}, nil
}
