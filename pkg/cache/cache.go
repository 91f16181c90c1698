// Package cache provides the byte-level cache used by the build pipeline,
// with file-backed, Redis-backed and no-op implementations, plus the key
// derivation scheme that ties cached artifacts to their inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per artifact class.
const (
	// TreeTTL bounds how long a parsed input tree stays cached.
	TreeTTL = 1 * time.Hour

	// DashboardTTL bounds how long a rendered document stays cached.
	// Compilation is deterministic, so entries only go stale when the
	// toolchain itself changes; the key embeds the schema version for
	// that reason.
	DashboardTTL = 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// DashboardKeyOpts captures every compile input that affects the rendered
// output. Two builds with equal tree hashes and equal opts produce
// byte-identical documents.
type DashboardKeyOpts struct {
	DefaultsHash  string
	UID           string
	Pretty        bool
	SchemaVersion int
}

// Keyer derives cache keys for the pipeline's artifact classes.
type Keyer interface {
	// TreeKey identifies a parsed input tree by its raw source bytes.
	TreeKey(sourceHash string) string

	// DashboardKey identifies a rendered document by its tree hash and
	// the compile options that shaped it.
	DashboardKey(treeHash string, opts DashboardKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a class prefix followed by a
// SHA-256 over the identifying components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for parsed tree caching.
func (k *DefaultKeyer) TreeKey(sourceHash string) string {
	return hashKey("tree", sourceHash)
}

// DashboardKey generates a key for rendered document caching.
func (k *DefaultKeyer) DashboardKey(treeHash string, opts DashboardKeyOpts) string {
	return hashKey("dashboard", treeHash, opts.DefaultsHash, opts.UID, opts.Pretty, opts.SchemaVersion)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// hashKey builds a "<class>:<sha256>" key over the identifying parts.
// The parts go through JSON so mixed types (strings, bools, ints) hash
// stably, and the full 64-hex-char digest keeps collisions out of reach.
func hashKey(class string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", class, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. The
// pipeline uses it to fingerprint canonical tree bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
