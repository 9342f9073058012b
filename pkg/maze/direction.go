package maze

import "fmt"

// Direction is a compass direction used as a walker's facing.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the fixed order used for neighbor
// arrays and resolver output.
var Directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"north", "east", "south", "west"}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the row and column offsets of a single step in d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	default:
		return 0, -1
	}
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name, e.g. "north".
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("maze: invalid direction %d", uint8(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText decodes a direction name produced by MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if string(b) == name {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("maze: unknown direction %q", b)
}

// Coord addresses a grid cell by row and column, both zero-based.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move returns the coordinate one step away in d. The result may lie
// outside any grid; bounds are checked by [Grid.At].
func (c Coord) Move(d Direction) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
