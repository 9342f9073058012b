package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/matzehuels/pipeloop/pkg/errors"
)

func TestExit(t *testing.T) {
	tests := []struct {
		tile   Tile
		facing Direction
		want   Direction
	}{
		{Vertical, North, North},
		{Vertical, South, South},
		{Horizontal, East, East},
		{Horizontal, West, West},
		{BendNE, South, East},
		{BendNE, West, North},
		{BendNW, South, West},
		{BendNW, East, North},
		{BendSW, North, West},
		{BendSW, East, South},
		{BendSE, North, East},
		{BendSE, West, South},
		{Start, North, North},
		{Start, East, East},
		{Start, South, South},
		{Start, West, West},
	}

	for _, tt := range tests {
		t.Run(string(tt.tile.Rune())+"/"+tt.facing.String(), func(t *testing.T) {
			got, err := Exit(tt.tile, tt.facing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, Accepts(tt.tile, tt.facing))
		})
	}
}

func TestExitInvalid(t *testing.T) {
	valid := 0
	for tile := Ground; tile <= BendSE; tile++ {
		for _, d := range Directions {
			_, err := Exit(tile, d)
			if err == nil {
				valid++
				continue
			}
			var te *InvalidTransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tile, te.Tile)
			assert.Equal(t, d, te.Facing)
			assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeInvalidTransition))
			assert.False(t, Accepts(tile, d))
		}
	}
	// Six pipes with two entries each, plus Start in all four directions.
	assert.Equal(t, 16, valid)
}

func TestExitReversible(t *testing.T) {
	// Walking a pipe backwards must retrace the same two openings.
	for tile := Vertical; tile <= BendSE; tile++ {
		for _, d := range Directions {
			exit, err := Exit(tile, d)
			if err != nil {
				continue
			}
			back, err := Exit(tile, exit.Opposite())
			require.NoError(t, err)
			assert.Equal(t, d.Opposite(), back, "tile %q entered moving %s", tile.Rune(), d)
		}
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
	assert.Equal(t, Coord{Row: 2, Col: 3}, Coord{Row: 2, Col: 2}.Move(East))
	assert.Equal(t, Coord{Row: -1, Col: 0}, Coord{}.Move(North))

	b, err := West.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "west", string(b))

	var d Direction
	require.NoError(t, d.UnmarshalText([]byte("south")))
	assert.Equal(t, South, d)
	assert.Error(t, d.UnmarshalText([]byte("up")))
}
