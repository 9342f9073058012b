package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pipeloop/pkg/maze"
	"github.com/matzehuels/pipeloop/pkg/pipeline"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		InputHash: "abc123",
		Rows:      5,
		Cols:      5,
		Loop: maze.Loop{
			Start:      maze.Coord{Row: 2, Col: 0},
			Directions: [2]maze.Direction{maze.East, maze.South},
			Meet:       maze.Coord{Row: 2, Col: 4},
			Rounds:     8,
			Farthest:   8,
			Length:     16,
		},
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord(sampleResult())

	assert.True(t, ValidID(rec.ID))
	assert.Equal(t, "abc123", rec.InputHash)
	assert.Equal(t, 16, rec.Length)
	assert.Equal(t, 8, rec.Farthest)
	assert.Equal(t, maze.Coord{Row: 2, Col: 0}, rec.Start)
	assert.Equal(t, [2]string{"east", "south"}, rec.Directions)
	assert.False(t, rec.CreatedAt.IsZero())

	other := NewRecord(sampleResult())
	assert.NotEqual(t, rec.ID, other.ID)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("6f1c2a8e-5b0d-4c1e-9f3a-2d7b8e4c0a11"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("not-a-uuid"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close(ctx)

	rec := NewRecord(sampleResult())
	require.NoError(t, st.Save(ctx, rec))
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := NewRecord(sampleResult())
	require.NoError(t, st.Save(ctx, rec))
	rec.Length = 0

	got, err := st.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Length)
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewMemoryStore()
	assert.ErrorIs(t, st.Save(ctx, NewRecord(sampleResult())), context.Canceled)
	_, err := st.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := NewRecord(sampleResult())
			if err := st.Save(ctx, rec); err != nil {
				t.Error(err)
				return
			}
			if _, err := st.Get(ctx, rec.ID); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, st.Len())
}
