// Package store persists solve runs for the HTTP API.
//
// Every successful POST /v1/solve produces a [Record] with a fresh UUID.
// The record is saved in a [Store] and can be fetched again by ID.
//
// Two backends are provided:
//   - [MemoryStore]: process-local map, for development and tests
//   - [MongoStore]: MongoDB collection, for deployments that share runs
//
// # Usage
//
//	st := store.NewMemoryStore()
//	rec := store.NewRecord(result)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, rec.ID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // unknown run
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pipeloop/pkg/maze"
	"github.com/matzehuels/pipeloop/pkg/pipeline"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Record is a stored solve run.
type Record struct {
	ID         string     `json:"id" bson:"_id"`
	InputHash  string     `json:"input_hash" bson:"input_hash"`
	Rows       int        `json:"rows" bson:"rows"`
	Cols       int        `json:"cols" bson:"cols"`
	Length     int        `json:"length" bson:"length"`
	Farthest   int        `json:"farthest" bson:"farthest"`
	Start      maze.Coord `json:"start" bson:"start"`
	Meet       maze.Coord `json:"meet" bson:"meet"`
	Directions [2]string  `json:"directions" bson:"directions"`
	Cached     bool       `json:"cached" bson:"cached"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
}

// NewRecord builds a record for res with a new random ID.
func NewRecord(res *pipeline.Result) *Record {
	return &Record{
		ID:         uuid.NewString(),
		InputHash:  res.InputHash,
		Rows:       res.Rows,
		Cols:       res.Cols,
		Length:     res.Loop.Length,
		Farthest:   res.Loop.Farthest,
		Start:      res.Loop.Start,
		Meet:       res.Loop.Meet,
		Directions: [2]string{res.Loop.Directions[0].String(), res.Loop.Directions[1].String()},
		Cached:     res.Cached,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Save stores a record. Saving an existing ID replaces it.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// ValidID reports whether id is a well-formed run ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
