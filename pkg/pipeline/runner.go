package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipeloop/pkg/cache"
	"github.com/matzehuels/pipeloop/pkg/errors"
	"github.com/matzehuels/pipeloop/pkg/maze"
	"github.com/matzehuels/pipeloop/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve measures the loop described by input, consulting the cache first.
// Only successful results are cached.
func (r *Runner) Solve(ctx context.Context, input []byte, opts Options) (*Result, error) {
	logger := r.logger(opts)
	start := time.Now()

	if err := errors.ValidateInput(input); err != nil {
		return nil, err
	}
	text := Normalize(input)
	hash := cache.Hash([]byte(text))
	key := r.Keyer.SolveKey(hash, cache.SolveKeyOpts{Version: ResultVersion})

	observability.Solve().OnSolveStart(ctx, hash)

	if !opts.Refresh {
		var cached Result
		if r.lookup(ctx, "solve", key, &cached) {
			cached.Cached = true
			cached.Duration = time.Since(start)
			logger.Debug("solve cache hit", "hash", short(hash))
			observability.Solve().OnSolveComplete(ctx, hash, cached.Loop.Length, cached.Duration, nil)
			return &cached, nil
		}
	}

	g, err := maze.ParseString(text)
	if err != nil {
		observability.Solve().OnSolveComplete(ctx, hash, 0, time.Since(start), err)
		return nil, err
	}
	loop, err := maze.Solve(g)
	if err != nil {
		observability.Solve().OnSolveComplete(ctx, hash, 0, time.Since(start), err)
		return nil, err
	}

	result := &Result{
		InputHash: hash,
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		Loop:      *loop,
	}
	r.store(ctx, "solve", key, result, opts.ttl())
	result.Duration = time.Since(start)

	logger.Debug("solved loop",
		"hash", short(hash),
		"rows", g.Rows(),
		"cols", g.Cols(),
		"length", loop.Length,
		"duration", result.Duration)
	observability.Solve().OnSolveComplete(ctx, hash, loop.Length, result.Duration, nil)

	return result, nil
}

// Trace returns the cells of the loop in traversal order, starting at Start.
func (r *Runner) Trace(ctx context.Context, input []byte, opts Options) (*TraceResult, error) {
	logger := r.logger(opts)

	if err := errors.ValidateInput(input); err != nil {
		return nil, err
	}
	text := Normalize(input)
	hash := cache.Hash([]byte(text))
	key := r.Keyer.TraceKey(hash)

	if !opts.Refresh {
		var cached TraceResult
		if r.lookup(ctx, "trace", key, &cached) {
			cached.Cached = true
			return &cached, nil
		}
	}

	g, err := maze.ParseString(text)
	if err != nil {
		return nil, err
	}
	path, err := maze.Trace(g)
	if err != nil {
		return nil, err
	}

	result := &TraceResult{InputHash: hash, Path: path}
	r.store(ctx, "trace", key, result, opts.ttl())
	logger.Debug("traced loop", "hash", short(hash), "cells", len(path))
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup decodes a cached value into v. Backend errors and undecodable
// entries count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "err", err)
	}
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store writes v to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "key_type", keyType, "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
