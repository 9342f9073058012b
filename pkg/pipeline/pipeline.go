// Package pipeline provides the solve pipeline shared by the CLI and the
// HTTP API.
//
// The pipeline validates raw grid text, normalizes it, looks the result up
// in the cache, and otherwise parses the grid and walks the loop with the
// maze package. Centralizing this keeps caching, logging and hook emission
// identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Solve(ctx, input, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Loop.Length)
//
// Errors from the maze package are returned unwrapped in meaning: use
// errors.As for the typed maze errors or pkg/errors.GetCode for the code.
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipeloop/pkg/cache"
	"github.com/matzehuels/pipeloop/pkg/maze"
)

// ResultVersion is stored in cache keys; bump it when Result's JSON changes.
const ResultVersion = 1

// Options configures a single pipeline run.
type Options struct {
	// Refresh skips cache reads; the fresh result is still written.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the cache TTL. Zero means cache.DefaultTTL.
	TTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

func (o Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return cache.DefaultTTL
}

// Result is the outcome of a successful solve.
type Result struct {
	// InputHash is the SHA-256 of the normalized grid text.
	InputHash string `json:"input_hash"`

	// Rows and Cols are the grid dimensions.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Loop describes the loop through Start.
	Loop maze.Loop `json:"loop"`

	// Cached reports whether the result came from the cache.
	Cached bool `json:"-"`

	// Duration is the wall time of the run, including cache lookups.
	Duration time.Duration `json:"-"`
}

// TraceResult is the outcome of a successful trace.
type TraceResult struct {
	InputHash string       `json:"input_hash"`
	Path      []maze.Coord `json:"path"`
	Cached    bool         `json:"-"`
}

// Normalize canonicalizes grid text so that equivalent inputs share a
// cache entry: CRLF becomes LF and trailing line breaks are dropped.
func Normalize(input []byte) string {
	s := strings.ReplaceAll(string(input), "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}
