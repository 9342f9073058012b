package maze

import "fmt"

// Tile is the pipe shape occupying one grid cell.
type Tile uint8

const (
	Ground Tile = iota
	Start
	Vertical
	Horizontal
	BendNE
	BendNW
	BendSW
	BendSE
)

// Symbols lists every accepted tile symbol.
const Symbols = "S.|-LJ7F"

var tileRunes = [...]rune{
	Ground:     '.',
	Start:      'S',
	Vertical:   '|',
	Horizontal: '-',
	BendNE:     'L',
	BendNW:     'J',
	BendSW:     '7',
	BendSE:     'F',
}

var tileNames = [...]string{
	Ground:     "ground",
	Start:      "start",
	Vertical:   "vertical",
	Horizontal: "horizontal",
	BendNE:     "bend-ne",
	BendNW:     "bend-nw",
	BendSW:     "bend-sw",
	BendSE:     "bend-se",
}

// ends holds the two directions each pipe opens towards.
var ends = [...][2]Direction{
	Vertical:   {North, South},
	Horizontal: {East, West},
	BendNE:     {North, East},
	BendNW:     {North, West},
	BendSW:     {South, West},
	BendSE:     {South, East},
}

// ParseTile maps a symbol to its tile. The second result is false for
// symbols outside [Symbols].
func ParseTile(r rune) (Tile, bool) {
	for t, tr := range tileRunes {
		if tr == r {
			return Tile(t), true
		}
	}
	return Ground, false
}

// Rune returns the tile's symbol.
func (t Tile) Rune() rune {
	if int(t) >= len(tileRunes) {
		return '?'
	}
	return tileRunes[t]
}

func (t Tile) String() string {
	if int(t) >= len(tileNames) {
		return fmt.Sprintf("Tile(%d)", uint8(t))
	}
	return tileNames[t]
}

// IsPipe reports whether t is one of the six pipe shapes.
func (t Tile) IsPipe() bool {
	return t >= Vertical && t <= BendSE
}

// Connects reports whether the pipe opens towards d. Start and Ground
// connect nowhere on their own.
func (t Tile) Connects(d Direction) bool {
	if !t.IsPipe() {
		return false
	}
	e := ends[t]
	return e[0] == d || e[1] == d
}
