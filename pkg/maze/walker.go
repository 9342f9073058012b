package maze

import "iter"

// Walker is a traversal cursor on a grid's loop. It holds the current cell
// and the direction it is moving in; each step turns according to the
// transition table and then moves one cell.
//
// A Walker is not safe for concurrent use. Create a new one to restart.
type Walker struct {
	grid   *Grid
	pos    Coord
	facing Direction
	steps  int
	err    error
}

// NewWalker returns a walker standing on start, about to move in facing.
func NewWalker(g *Grid, start Coord, facing Direction) *Walker {
	return &Walker{grid: g, pos: start, facing: facing}
}

// Pos returns the current cell.
func (w *Walker) Pos() Coord { return w.pos }

// Facing returns the direction of the last move, or the initial facing
// before the first step.
func (w *Walker) Facing() Direction { return w.facing }

// Steps returns the number of successful steps taken.
func (w *Walker) Steps() int { return w.steps }

// AtStart reports whether the walker stands on the grid's Start tile.
func (w *Walker) AtStart() bool { return w.pos == w.grid.Start() }

// Err returns the error that stopped the walker, if any.
func (w *Walker) Err() error { return w.err }

// Step turns according to the current tile and moves one cell.
//
// Leaving the grid, or arriving on a tile that does not open towards the
// walker, is a *BrokenLoopError. Once a step fails the walker stays put and
// every further call returns the same error.
func (w *Walker) Step() error {
	if w.err != nil {
		return w.err
	}
	tile, ok := w.grid.At(w.pos)
	if !ok {
		w.err = &BrokenLoopError{Pos: w.pos, Reason: "walker is outside the grid"}
		return w.err
	}
	exit, err := Exit(tile, w.facing)
	if err != nil {
		w.err = err
		return err
	}
	next := w.pos.Move(exit)
	nt, ok := w.grid.At(next)
	if !ok {
		w.err = &BrokenLoopError{Pos: next, Reason: "pipe leads off the grid moving " + exit.String()}
		return w.err
	}
	if !Accepts(nt, exit) {
		w.err = &BrokenLoopError{Pos: next, Reason: "tile " + string(nt.Rune()) + " does not connect moving " + exit.String()}
		return w.err
	}
	w.pos, w.facing = next, exit
	w.steps++
	return nil
}

// Next advances one step and reports whether the walker is on a new loop
// cell. It returns false once the walker re-enters Start or a step fails;
// check Err to tell the two apart.
//
//	for w.Next() {
//	    visit(w.Pos())
//	}
//	if err := w.Err(); err != nil { ... }
func (w *Walker) Next() bool {
	if w.Step() != nil {
		return false
	}
	return !w.AtStart()
}

// Path yields each loop cell the walker visits, stopping before Start.
// The walk is bounded by the grid size; exceeding it records a
// *BrokenLoopError in Err.
func (w *Walker) Path() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		limit := w.grid.Rows() * w.grid.Cols()
		for w.Next() {
			if w.steps > limit {
				w.err = &BrokenLoopError{Pos: w.pos, Reason: "loop did not close"}
				return
			}
			if !yield(w.pos) {
				return
			}
		}
	}
}
