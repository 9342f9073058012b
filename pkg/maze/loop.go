package maze

// Loop summarizes the closed loop through Start.
type Loop struct {
	Start      Coord        `json:"start"`
	Directions [2]Direction `json:"directions"` // facings the two walkers left Start with
	Meet       Coord        `json:"meet"`       // cell where the walkers met
	Rounds     int          `json:"rounds"`     // lock-step rounds until the meeting
	Farthest   int          `json:"farthest"`   // steps from Start to the farthest loop cell
	Length     int          `json:"length"`     // number of cells on the loop
}

// Solve measures the loop through Start.
//
// Two walkers leave Start in the resolved directions and step in lock-step,
// so they traverse the loop in opposite senses. Loops on a square grid
// always have even length, so the walkers meet on the cell opposite Start;
// the number of rounds is the farthest distance and the loop length is
// twice that.
//
// The walk is bounded by rows×cols+1 rounds. A walker returning to Start
// before the meeting, or running past the bound, yields a *BrokenLoopError.
//
// Complexity: O(loop length) time, O(1) extra memory.
func Solve(g *Grid) (*Loop, error) {
	dirs, err := ResolveStart(g)
	if err != nil {
		return nil, err
	}
	a := NewWalker(g, g.Start(), dirs[0])
	b := NewWalker(g, g.Start(), dirs[1])

	limit := g.Rows()*g.Cols() + 1
	for round := 1; round <= limit; round++ {
		if err := a.Step(); err != nil {
			return nil, err
		}
		if err := b.Step(); err != nil {
			return nil, err
		}
		if a.Pos() == b.Pos() {
			if a.AtStart() {
				return nil, &BrokenLoopError{Pos: a.Pos(), Reason: "walkers returned to start without meeting"}
			}
			return &Loop{
				Start:      g.Start(),
				Directions: dirs,
				Meet:       a.Pos(),
				Rounds:     round,
				Farthest:   round,
				Length:     2 * round,
			}, nil
		}
		if a.AtStart() || b.AtStart() {
			return nil, &BrokenLoopError{Pos: g.Start(), Reason: "walkers returned to start without meeting"}
		}
	}
	return nil, &BrokenLoopError{Pos: a.Pos(), Reason: "loop did not close"}
}

// Trace returns every loop cell in the order the first walker visits them,
// beginning with Start.
func Trace(g *Grid) ([]Coord, error) {
	dirs, err := ResolveStart(g)
	if err != nil {
		return nil, err
	}
	w := NewWalker(g, g.Start(), dirs[0])
	path := []Coord{g.Start()}
	for c := range w.Path() {
		path = append(path, c)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return path, nil
}

// LoopLength parses text and returns the length of the loop through Start.
func LoopLength(text string) (int, error) {
	l, err := solveText(text)
	if err != nil {
		return 0, err
	}
	return l.Length, nil
}

// FarthestDistance parses text and returns the number of steps from Start
// to the loop cell farthest from it, i.e. half the loop length.
func FarthestDistance(text string) (int, error) {
	l, err := solveText(text)
	if err != nil {
		return 0, err
	}
	return l.Farthest, nil
}

func solveText(text string) (*Loop, error) {
	g, err := ParseString(text)
	if err != nil {
		return nil, err
	}
	return Solve(g)
}
