package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one cache backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "structviz:staging:")
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

// FrameKey generates a prefixed frame key.
func (k *ScopedKeyer) FrameKey(structure, stateHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(structure, stateHash, opts)
}

// ExportKey generates a prefixed export key.
func (k *ScopedKeyer) ExportKey(stateHash, format string) string {
	return k.prefix + k.inner.ExportKey(stateHash, format)
}
