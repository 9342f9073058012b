// Package cache provides result caching for solved grids.
//
// Solving is cheap but the HTTP API may see the same grid many times, so
// results are cached by a hash of the input text. Three backends exist:
//   - FileCache: JSON files under ~/.cache/pipeloop/ for CLI usage
//   - RedisCache: shared cache for multi-instance API deployments
//   - NullCache: disables caching
//
// Keys are produced by a Keyer so that deployments can namespace them (see
// ScopedKeyer).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// DefaultTTL is how long solve results stay cached when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores opaque byte values by key with an optional TTL.
// A zero TTL means the entry never expires.
type Cache interface {
	// Get returns the value for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// SolveKey returns the key for the solve result of an input with the
	// given content hash.
	SolveKey(inputHash string, opts SolveKeyOpts) string
	// TraceKey returns the key for the traced loop of an input.
	TraceKey(inputHash string) string
}

// SolveKeyOpts holds options that change a solve result.
type SolveKeyOpts struct {
	Version int `json:"v"` // bump when the result format changes
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolveKey implements Keyer.
func (DefaultKeyer) SolveKey(inputHash string, opts SolveKeyOpts) string {
	return hashKey("solve", inputHash, opts)
}

// TraceKey implements Keyer.
func (DefaultKeyer) TraceKey(inputHash string) string {
	return "trace:" + inputHash
}

// Hash returns the hex SHA-256 of data. Inputs are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "kind:<sha256 of the JSON-encoded parts>".
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
