package maze

// move is one entry of the transition table.
type move struct {
	exit Direction
	ok   bool
}

// exits[tile][facing] is the direction a walker leaves tile by after
// entering it while moving in facing. Built once; read-only afterwards.
var exits = buildExits()

func buildExits() [len(tileRunes)][4]move {
	var table [len(tileRunes)][4]move
	for _, d := range Directions {
		table[Start][d] = move{exit: d, ok: true}
	}
	for t := Vertical; t <= BendSE; t++ {
		e := ends[t]
		// Moving in d enters through the side facing d.Opposite().
		table[t][e[0].Opposite()] = move{exit: e[1], ok: true}
		table[t][e[1].Opposite()] = move{exit: e[0], ok: true}
	}
	return table
}

// Exit returns the direction a walker leaves tile by, having entered it
// while moving in facing. Start keeps the facing unchanged so that it can
// serve as the loop terminal without knowing its hidden pipe shape.
//
// A move the tile cannot make yields an *InvalidTransitionError.
func Exit(tile Tile, facing Direction) (Direction, error) {
	if int(tile) >= len(exits) || !facing.Valid() || !exits[tile][facing].ok {
		return facing, &InvalidTransitionError{Tile: tile, Facing: facing}
	}
	return exits[tile][facing].exit, nil
}

// Accepts reports whether a walker moving in facing may enter tile.
func Accepts(tile Tile, facing Direction) bool {
	return int(tile) < len(exits) && facing.Valid() && exits[tile][facing].ok
}
