package maze

import (
	"fmt"

	"github.com/matzehuels/pipeloop/pkg/errors"
)

// NoPos marks errors that concern the whole grid rather than one cell.
var NoPos = Coord{Row: -1, Col: -1}

// StructuralError reports text that does not form a valid grid.
type StructuralError struct {
	Pos    Coord  // offending cell, or the start of the offending row
	Char   rune   // offending symbol, zero when not applicable
	Reason string // what is wrong
}

func (e *StructuralError) Error() string {
	if e.Pos == NoPos {
		return "maze: " + e.Reason
	}
	if e.Char != 0 {
		return fmt.Sprintf("maze: %s %q at %s", e.Reason, e.Char, e.Pos)
	}
	return fmt.Sprintf("maze: %s at %s", e.Reason, e.Pos)
}

// Code classifies the error for pkg/errors.
func (e *StructuralError) Code() errors.Code { return errors.ErrCodeInvalidGrid }

// AmbiguousStartError reports a Start tile without exactly two connected
// neighbors.
type AmbiguousStartError struct {
	Start Coord
	Found []Direction // directions whose neighbor connects back to Start
}

func (e *AmbiguousStartError) Error() string {
	return fmt.Sprintf("maze: start at %s has %d connected neighbors %v, want 2", e.Start, len(e.Found), e.Found)
}

// Code classifies the error for pkg/errors.
func (e *AmbiguousStartError) Code() errors.Code { return errors.ErrCodeAmbiguousStart }

// BrokenLoopError reports a walk that cannot close back on Start.
type BrokenLoopError struct {
	Pos    Coord
	Reason string
}

func (e *BrokenLoopError) Error() string {
	return fmt.Sprintf("maze: broken loop at %s: %s", e.Pos, e.Reason)
}

// Code classifies the error for pkg/errors.
func (e *BrokenLoopError) Code() errors.Code { return errors.ErrCodeBrokenLoop }

// InvalidTransitionError reports a transition-table lookup for a move the
// tile cannot make. Walkers check [Accepts] before entering a cell, so this
// only surfaces when the table is used directly.
type InvalidTransitionError struct {
	Tile   Tile
	Facing Direction
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("maze: %s tile %q cannot be entered moving %s", e.Tile, e.Tile.Rune(), e.Facing)
}

// Code classifies the error for pkg/errors.
func (e *InvalidTransitionError) Code() errors.Code { return errors.ErrCodeInvalidTransition }
