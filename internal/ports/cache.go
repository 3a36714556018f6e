package ports

import (
	"context"
	"time"
)

// ProbeKey identifies one version of a file on disk
type ProbeKey struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// CachedProbe is a stored probe result
type CachedProbe struct {
	Key        ProbeKey
	FrameRate  float64
	Detectable bool
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// ProbeCache persists frame rate probe results between runs.
type ProbeCache interface {
	// Get retrieves a cached probe, returning domain.ErrCacheMiss if absent.
	Get(ctx context.Context, key ProbeKey) (*CachedProbe, error)

	// Set stores a probe result.
	Set(ctx context.Context, item *CachedProbe) error

	// CleanExpired removes all expired items and returns the count removed.
	CleanExpired(ctx context.Context) (int, error)

	// Clear removes all cached items.
	Clear(ctx context.Context) error

	// Dir returns the cache root, also handed to strategies as scratch space.
	Dir() string

	// Stats returns cache statistics: item count and total size in bytes.
	Stats(ctx context.Context) (itemCount int, totalSize int64, err error)
}
