package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SolveKey generates a prefixed key for solve results.
func (k *ScopedKeyer) SolveKey(inputHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(inputHash, opts)
}

// TraceKey generates a prefixed key for traced loops.
func (k *ScopedKeyer) TraceKey(inputHash string) string {
	return k.prefix + k.inner.TraceKey(inputHash)
}
