// Package maze solves pipe-network loops on a rectangular tile grid.
//
// A grid holds one Start tile (S) sitting on a single closed loop of pipe
// tiles. The package finds the loop length by walking the loop from Start
// in both directions at once, without searching the rest of the grid.
//
// # Tiles
//
// Each symbol names the two compass directions its pipe connects:
//
//	S  start           .  ground (never traversed)
//	|  north-south     -  east-west
//	L  north-east      J  north-west
//	7  south-west      F  south-east
//
// # Algorithm
//
//  1. [NewGrid] validates the text (rectangular, known symbols, one Start).
//  2. [ResolveStart] finds the two neighbors whose pipes point back at Start.
//  3. Two [Walker] values leave Start in those directions. Each step consults
//     the transition table ([Exit]) to turn, then moves one cell.
//  4. [Solve] steps both walkers in lock-step until they stand on the same
//     cell. The number of rounds is the farthest distance from Start and the
//     loop length is twice that.
//
// The walk is bounded by rows×cols+1 rounds, so malformed input fails with
// a [BrokenLoopError] instead of spinning. Pipes not connected to the Start
// loop are never visited.
//
// # Errors
//
// All failures are returned as typed errors carrying the offending
// coordinate or symbol:
//
//   - [StructuralError]: non-rectangular text, unknown symbol, zero or
//     several Start tiles.
//   - [AmbiguousStartError]: Start does not have exactly two connected
//     neighbors.
//   - [BrokenLoopError]: a walker leaves the grid, runs into a pipe that does
//     not connect, or the walk exceeds its bound.
//   - [InvalidTransitionError]: the transition table was asked about a move
//     the tile cannot make.
//
// Each type implements Code() so pkg/errors can classify it.
//
// # Example
//
//	n, err := maze.LoopLength("..F7.\n.FJ|.\nSJ.L7\n|F--J\nLJ...")
//	// n == 16
package maze
