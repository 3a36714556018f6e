package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/logging"
	"github.com/devbush/autoedit/internal/ports"
)

// ConstantFPS is the frame rate variable-rate inputs are re-encoded to
const ConstantFPS = 30

// Corrector makes sure a video input has a detectable frame rate before a
// strategy sees it, replacing it with a constant frame rate copy otherwise.
type Corrector struct {
	fs      afero.Fs
	decoder ports.Decoder
	cache   ports.ProbeCache // nil disables caching
	log     *logging.Logger
}

func NewCorrector(fs afero.Fs, decoder ports.Decoder, cache ports.ProbeCache, log *logging.Logger) *Corrector {
	return &Corrector{
		fs:      fs,
		decoder: decoder,
		cache:   cache,
		log:     log,
	}
}

// Ensure probes in and, when no frame rate is found, re-encodes it into
// work. The returned input supersedes in for every later step.
func (c *Corrector) Ensure(ctx context.Context, in domain.ResolvedInput, work *WorkDir) (domain.ResolvedInput, error) {
	info, err := c.fs.Stat(in.Path)
	if err != nil {
		return in, fmt.Errorf("%w: could not locate file: %s", domain.ErrDecodeFailed, in.Path)
	}
	key := ports.ProbeKey{Path: in.Path, Size: info.Size(), ModTime: info.ModTime()}

	detectable, err := c.detectable(ctx, key)
	if err != nil {
		return in, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	if detectable {
		return in, nil
	}

	c.log.Warn("Frame rate detection failed for %s", filepath.Base(in.Path))
	c.log.Warn("If your video has a variable frame rate, ignore this message.")

	dir, err := work.Acquire()
	if err != nil {
		return in, fmt.Errorf("%w: create work dir: %v", domain.ErrDecodeFailed, err)
	}

	ext := filepath.Ext(in.Path)
	stem := strings.TrimSuffix(filepath.Base(in.Path), ext)
	fixed := filepath.Join(dir, stem+"_constant"+ext)

	c.log.Info("Re-encoding %s at %d fps", filepath.Base(in.Path), ConstantFPS)
	if err := c.decoder.ReEncode(ctx, in.Path, fixed, ConstantFPS); err != nil {
		return in, fmt.Errorf("%w (%w): %v", domain.ErrDecodeFailed, domain.ErrUndetectableFrameRate, err)
	}

	return in.WithPath(fixed), nil
}

func (c *Corrector) detectable(ctx context.Context, key ports.ProbeKey) (bool, error) {
	if c.cache != nil {
		if hit, err := c.cache.Get(ctx, key); err == nil {
			c.log.Debug("Probe cache hit for %s", key.Path)
			return hit.Detectable, nil
		}
	}

	res, err := c.decoder.Probe(ctx, key.Path)
	if err != nil {
		return false, err
	}
	c.log.Debug("FFmpeg test:\n%s", res.Output)
	if res.Detectable {
		c.log.Debug("Frame rate: %v", res.FrameRate)
	}

	if c.cache != nil {
		item := &ports.CachedProbe{
			Key:        key,
			FrameRate:  res.FrameRate,
			Detectable: res.Detectable,
			CreatedAt:  time.Now(),
		}
		if err := c.cache.Set(ctx, item); err != nil {
			c.log.Debug("Probe cache write failed: %v", err)
		}
	}

	return res.Detectable, nil
}
