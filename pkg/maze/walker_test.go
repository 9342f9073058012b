package maze

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkerStep(t *testing.T) {
	g, err := ParseString(squareLoop)
	require.NoError(t, err)

	w := NewWalker(g, g.Start(), East)
	want := []struct {
		pos    Coord
		facing Direction
	}{
		{Coord{1, 2}, East},
		{Coord{1, 3}, East},
		{Coord{2, 3}, South},
		{Coord{3, 3}, South},
		{Coord{3, 2}, West},
		{Coord{3, 1}, West},
		{Coord{2, 1}, North},
		{Coord{1, 1}, North},
	}
	for i, step := range want {
		require.NoError(t, w.Step(), "step %d", i+1)
		assert.Equal(t, step.pos, w.Pos(), "step %d", i+1)
		assert.Equal(t, step.facing, w.Facing(), "step %d", i+1)
	}
	assert.True(t, w.AtStart())
	assert.Equal(t, 8, w.Steps())
}

func TestWalkerNextStopsAtStart(t *testing.T) {
	g, err := ParseString(squareLoop)
	require.NoError(t, err)

	w := NewWalker(g, g.Start(), South)
	var visited []Coord
	for w.Next() {
		visited = append(visited, w.Pos())
	}
	require.NoError(t, w.Err())
	assert.Len(t, visited, 7)
	assert.NotContains(t, visited, g.Start())
	assert.True(t, w.AtStart())
}

func TestWalkerBrokenLoop(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		facing Direction
		steps  int
		pos    Coord
	}{
		{"off the grid", "S-\n|.", East, 1, Coord{Row: 0, Col: 2}},
		{"into ground", "S-7\n|.|\nL-.", East, 3, Coord{Row: 2, Col: 2}},
		{"pipe turned away", "S-L\n|..", East, 1, Coord{Row: 0, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseString(tt.text)
			require.NoError(t, err)

			w := NewWalker(g, g.Start(), tt.facing)
			for w.Next() {
			}
			err = w.Err()
			require.Error(t, err)

			var be *BrokenLoopError
			require.True(t, errors.As(err, &be), "want *BrokenLoopError, got %T", err)
			assert.Equal(t, tt.pos, be.Pos)
			assert.Equal(t, tt.steps, w.Steps())

			// A failed walker stays put.
			before := w.Pos()
			assert.Equal(t, err, w.Step())
			assert.Equal(t, before, w.Pos())
		})
	}
}

func TestWalkerPathsAreReverses(t *testing.T) {
	for _, text := range []string{
		squareLoop,
		"..F7.\n.FJ|.\nSJ.L7\n|F--J\nLJ...",
		"7-F7-\n.FJ|7\nSJLL7\n|F--J\nLJ.LJ",
	} {
		g, err := ParseString(text)
		require.NoError(t, err)
		dirs, err := ResolveStart(g)
		require.NoError(t, err)

		a := NewWalker(g, g.Start(), dirs[0])
		b := NewWalker(g, g.Start(), dirs[1])
		pathA := slices.Collect(a.Path())
		pathB := slices.Collect(b.Path())
		require.NoError(t, a.Err())
		require.NoError(t, b.Err())

		slices.Reverse(pathB)
		assert.Equal(t, pathA, pathB)
	}
}

func TestWalkerPathEarlyBreak(t *testing.T) {
	g, err := ParseString(squareLoop)
	require.NoError(t, err)

	w := NewWalker(g, g.Start(), East)
	n := 0
	for range w.Path() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, w.Steps())
	assert.Equal(t, Coord{Row: 2, Col: 3}, w.Pos())
}
