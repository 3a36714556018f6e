package application

import (
	"context"

	"github.com/devbush/autoedit/internal/ports"
)

// CacheStats holds probe cache statistics
type CacheStats struct {
	Dir       string
	ItemCount int
	TotalSize int64
}

// CacheService handles probe cache maintenance
type CacheService struct {
	cache ports.ProbeCache
}

// NewCacheService creates a new cache service
func NewCacheService(cache ports.ProbeCache) *CacheService {
	return &CacheService{cache: cache}
}

// Stats returns cache statistics
func (s *CacheService) Stats(ctx context.Context) (*CacheStats, error) {
	count, size, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CacheStats{
		Dir:       s.cache.Dir(),
		ItemCount: count,
		TotalSize: size,
	}, nil
}

// CleanExpired removes expired probe results
func (s *CacheService) CleanExpired(ctx context.Context) (int, error) {
	return s.cache.CleanExpired(ctx)
}

// Clear removes every cached probe result
func (s *CacheService) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
