// Package cache provides content-addressed caching for layouts and
// rendered artifacts.
//
// Rendering is deterministic, so a control-flow tree plus its render
// options fully determines every output. Keys are therefore derived by
// hashing the input JSON and the options; see [Keyer]. Three backends
// implement [Cache]:
//
//   - [FileCache]: directory-based, for the CLI
//   - [RedisCache]: shared, for the rendering service
//   - [NullCache]: disabled caching, for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// Default TTLs per key type. Layouts and artifacts are immutable for a
// given key, so the TTLs only bound disk/memory growth.
const (
	DefaultLayoutTTL   = 30 * 24 * time.Hour
	DefaultArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with TTL expiry.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Derivation
// =============================================================================

// LayoutKeyOpts are the options that influence computed geometry.
type LayoutKeyOpts struct {
	// Measurer identifies the text measurer (e.g. "monospace-8").
	Measurer string
}

// ArtifactKeyOpts are the options that influence rendered output.
type ArtifactKeyOpts struct {
	Format string
	Style  string
}

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// LayoutKey returns the key for a computed geometry tree.
	// treeHash is the [Hash] of the control-flow tree's wire JSON.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact derived from
	// the layout identified by layoutKey.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (*DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts.Measurer)
}

// ArtifactKey implements [Keyer].
func (*DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts.Format, opts.Style)
}

// =============================================================================
// Null Cache
// =============================================================================

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
