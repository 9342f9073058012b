package maze

import (
	"io"
	"strings"
)

// Grid is an immutable row-major table of tiles with exactly one Start.
// It is safe for concurrent readers.
type Grid struct {
	rows, cols int
	tiles      []Tile
	start      Coord
}

// Neighbor is the tile one step away from a cell in a given direction.
// OK is false when that step leaves the grid.
type Neighbor struct {
	Pos  Coord
	Tile Tile
	OK   bool
}

// NewGrid builds a Grid from rows of tile symbols.
// It returns a *StructuralError if the input is empty, the rows differ in
// length, a symbol is not in [Symbols], or the number of Start tiles is not
// exactly one.
// Complexity: O(R×C) time and memory.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || rows[0] == "" {
		return nil, &StructuralError{Pos: NoPos, Reason: "grid must have at least one row and one column"}
	}
	width := len([]rune(rows[0]))
	g := &Grid{
		rows:  len(rows),
		cols:  width,
		tiles: make([]Tile, 0, len(rows)*width),
	}
	starts := 0
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, &StructuralError{
				Pos:    Coord{Row: r},
				Reason: "row length differs from first row",
			}
		}
		for c, ch := range runes {
			t, ok := ParseTile(ch)
			if !ok {
				return nil, &StructuralError{Pos: Coord{Row: r, Col: c}, Char: ch, Reason: "unrecognized tile"}
			}
			if t == Start {
				starts++
				if starts > 1 {
					return nil, &StructuralError{Pos: Coord{Row: r, Col: c}, Char: ch, Reason: "second start tile"}
				}
				g.start = Coord{Row: r, Col: c}
			}
			g.tiles = append(g.tiles, t)
		}
	}
	if starts == 0 {
		return nil, &StructuralError{Pos: NoPos, Reason: "no start tile"}
	}
	return g, nil
}

// Parse reads newline-delimited rows from r and builds a Grid.
// Rows have no length limit. Errors from r are returned unchanged; every
// problem with the text itself is a *StructuralError.
func Parse(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString builds a Grid from an in-memory text block.
// Both LF and CRLF line endings are accepted; a single trailing line
// break is ignored.
func ParseString(s string) (*Grid, error) {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return NewGrid(nil)
	}
	rows := strings.Split(s, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSuffix(row, "\r")
	}
	return NewGrid(rows)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Start returns the coordinate of the Start tile.
func (g *Grid) Start() Coord { return g.start }

// InBounds reports whether c lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the tile at c. The second result is false when c is outside
// the grid.
// Complexity: O(1).
func (g *Grid) At(c Coord) (Tile, bool) {
	if !g.InBounds(c) {
		return Ground, false
	}
	return g.tiles[g.index(c)], true
}

// Neighbors returns the four cells around c, indexed by Direction.
func (g *Grid) Neighbors(c Coord) [4]Neighbor {
	var out [4]Neighbor
	for _, d := range Directions {
		p := c.Move(d)
		t, ok := g.At(p)
		out[d] = Neighbor{Pos: p, Tile: t, OK: ok}
	}
	return out
}

// String renders the grid back to its text form, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for i, t := range g.tiles {
		if i > 0 && i%g.cols == 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(t.Rune())
	}
	return b.String()
}

// index maps c to its row-major position: row*cols + col.
func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}
