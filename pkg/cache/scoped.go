package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The
// server uses it to keep per-tenant entries apart when several projects
// share one Redis instance.
//
// Example usage:
//
//	// Project-specific keys on a shared backend
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:billing:")
//
//	// Unscoped keys for single-user CLI runs
//	localKeyer := NewDefaultKeyer()
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

// TreeKey generates a prefixed key for parsed tree caching.
func (k *ScopedKeyer) TreeKey(sourceHash string) string {
	return k.prefix + k.inner.TreeKey(sourceHash)
}

// DashboardKey generates a prefixed key for rendered document caching.
func (k *ScopedKeyer) DashboardKey(treeHash string, opts DashboardKeyOpts) string {
	return k.prefix + k.inner.DashboardKey(treeHash, opts)
}
