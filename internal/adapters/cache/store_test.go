package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/ports"
)

func testKey(path string) ports.ProbeKey {
	return ports.ProbeKey{
		Path:    path,
		Size:    1024,
		ModTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileCache_SetGet(t *testing.T) {
	tmpDir := t.TempDir()
	cache := NewFileCache(tmpDir, 24*time.Hour)

	ctx := context.Background()
	item := &ports.CachedProbe{
		Key:        testKey("/videos/talk.mp4"),
		FrameRate:  29.97,
		Detectable: true,
		CreatedAt:  time.Now(),
	}

	if err := cache.Set(ctx, item); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, testKey("/videos/talk.mp4"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.FrameRate != 29.97 || !got.Detectable {
		t.Errorf("Get() = %+v, want 29.97 detectable", got)
	}
	if got.ExpiresAt.IsZero() {
		t.Error("ExpiresAt should default from TTL")
	}
}

func TestFileCache_KeyIncludesModTime(t *testing.T) {
	cache := NewFileCache(t.TempDir(), time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, &ports.CachedProbe{Key: testKey("/v/a.mp4"), Detectable: true, CreatedAt: time.Now()})

	changed := testKey("/v/a.mp4")
	changed.ModTime = changed.ModTime.Add(time.Second)

	if _, err := cache.Get(ctx, changed); err != domain.ErrCacheMiss {
		t.Errorf("Get() after modification error = %v, want ErrCacheMiss", err)
	}
}

func TestFileCache_GetMiss(t *testing.T) {
	cache := NewFileCache(t.TempDir(), time.Hour)

	_, err := cache.Get(context.Background(), testKey("nonexistent"))
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestFileCache_GetExpired(t *testing.T) {
	cache := NewFileCache(t.TempDir(), time.Hour)

	ctx := context.Background()
	item := &ports.CachedProbe{
		Key:       testKey("expired.mp4"),
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}
	_ = cache.Set(ctx, item)

	if _, err := cache.Get(ctx, testKey("expired.mp4")); err != domain.ErrCacheExpired {
		t.Errorf("Get() error = %v, want ErrCacheExpired", err)
	}
}

func TestFileCache_CleanExpiredKeepsEngineScratch(t *testing.T) {
	tmpDir := t.TempDir()
	cache := NewFileCache(tmpDir, time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, &ports.CachedProbe{
		Key:       testKey("willexpire.mp4"),
		CreatedAt: time.Now().Add(-1 * time.Hour),
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	})
	scratch := filepath.Join(tmpDir, "engine-scratch")
	if err := os.MkdirAll(scratch, 0755); err != nil {
		t.Fatal(err)
	}

	cleaned, err := cache.CleanExpired(ctx)
	if err != nil {
		t.Fatalf("CleanExpired() error = %v", err)
	}
	if cleaned != 1 {
		t.Errorf("CleanExpired() = %d, want 1", cleaned)
	}
	if _, err := os.Stat(scratch); err != nil {
		t.Errorf("engine scratch dir removed: %v", err)
	}
}

func TestFileCache_ClearAndStats(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "cache")
	cache := NewFileCache(tmpDir, time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, &ports.CachedProbe{Key: testKey("a.mp4"), CreatedAt: time.Now()})
	_ = cache.Set(ctx, &ports.CachedProbe{Key: testKey("b.mp4"), CreatedAt: time.Now()})
	scratch := filepath.Join(tmpDir, "engine-scratch")
	if err := os.MkdirAll(scratch, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(scratch, "chunk.wav"), []byte("pcm"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	count, size, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if count != 2 || size == 0 {
		t.Errorf("Stats() = %d items, %d bytes", count, size)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if count, _, _ := cache.Stats(ctx); count != 0 {
		t.Errorf("Stats() after Clear = %d items, want 0", count)
	}
}
