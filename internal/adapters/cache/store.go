package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/ports"
)

const probePrefix = "probe-"

// FileCache stores probe results as <baseDir>/probe-<hash>/meta.json. Other
// directories under baseDir belong to the editing engine.
type FileCache struct {
	baseDir string
	ttl     time.Duration
}

func NewFileCache(baseDir string, ttl time.Duration) *FileCache {
	return &FileCache{
		baseDir: baseDir,
		ttl:     ttl,
	}
}

type metaFile struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModTime    time.Time `json:"mod_time"`
	FrameRate  float64   `json:"frame_rate"`
	Detectable bool      `json:"detectable"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// KeyID hashes a probe key into a stable directory-safe identifier
func KeyID(key ports.ProbeKey) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", key.Path, key.Size, key.ModTime.UnixNano())))
	return hex.EncodeToString(sum[:12])
}

func (c *FileCache) Dir() string {
	return c.baseDir
}

func (c *FileCache) entryDir(key ports.ProbeKey) string {
	return filepath.Join(c.baseDir, probePrefix+KeyID(key))
}

func (c *FileCache) metaPath(key ports.ProbeKey) string {
	return filepath.Join(c.entryDir(key), "meta.json")
}

func (c *FileCache) Get(ctx context.Context, key ports.ProbeKey) (*ports.CachedProbe, error) {
	return c.read(c.metaPath(key))
}

func (c *FileCache) read(metaPath string) (*ports.CachedProbe, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var meta metaFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	if time.Now().After(meta.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	return &ports.CachedProbe{
		Key: ports.ProbeKey{
			Path:    meta.Path,
			Size:    meta.Size,
			ModTime: meta.ModTime,
		},
		FrameRate:  meta.FrameRate,
		Detectable: meta.Detectable,
		CreatedAt:  meta.CreatedAt,
		ExpiresAt:  meta.ExpiresAt,
	}, nil
}

func (c *FileCache) Set(ctx context.Context, item *ports.CachedProbe) error {
	dir := c.entryDir(item.Key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	expires := item.ExpiresAt
	if expires.IsZero() {
		expires = item.CreatedAt.Add(c.ttl)
	}

	meta := metaFile{
		Path:       item.Key.Path,
		Size:       item.Key.Size,
		ModTime:    item.Key.ModTime,
		FrameRate:  item.FrameRate,
		Detectable: item.Detectable,
		CreatedAt:  item.CreatedAt,
		ExpiresAt:  expires,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.metaPath(item.Key), data, 0644)
}

func (c *FileCache) CleanExpired(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), probePrefix) {
			continue
		}

		dir := filepath.Join(c.baseDir, entry.Name())
		_, err := c.read(filepath.Join(dir, "meta.json"))
		if err == domain.ErrCacheExpired {
			if err := os.RemoveAll(dir); err == nil {
				cleaned++
			}
		}
	}

	return cleaned, nil
}

// Clear removes the whole cache directory, engine scratch included
func (c *FileCache) Clear(ctx context.Context) error {
	if err := os.RemoveAll(c.baseDir); err != nil {
		return err
	}
	return nil
}

// Stats counts probe entries only. The size covers everything under the
// cache directory, engine scratch included.
func (c *FileCache) Stats(ctx context.Context) (itemCount int, totalSize int64, err error) {
	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), probePrefix) {
			itemCount++
		}

		dirPath := filepath.Join(c.baseDir, entry.Name())
		_ = filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				totalSize += info.Size()
			}
			return nil
		})
	}

	return itemCount, totalSize, nil
}

var _ ports.ProbeCache = (*FileCache)(nil)
