package application

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/ports"
)

type fakeDecoder struct {
	fs          afero.Fs
	rates       map[string]float64 // absent means undetectable
	probes      int
	probeErr    error
	reEncodeErr error
	reEncoded   []string
	fps         int
	concatErr   error
	concatIn    []string
}

func newFakeDecoder(fs afero.Fs) *fakeDecoder {
	return &fakeDecoder{fs: fs, rates: map[string]float64{}}
}

func (d *fakeDecoder) Probe(ctx context.Context, input string) (*ports.ProbeResult, error) {
	d.probes++
	if d.probeErr != nil {
		return nil, d.probeErr
	}
	rate, ok := d.rates[input]
	return &ports.ProbeResult{FrameRate: rate, Detectable: ok, Output: "Input #0"}, nil
}

func (d *fakeDecoder) ReEncode(ctx context.Context, input, output string, fps int) error {
	if d.reEncodeErr != nil {
		return d.reEncodeErr
	}
	d.reEncoded = append(d.reEncoded, input)
	d.fps = fps
	return afero.WriteFile(d.fs, output, []byte("cfr"), 0644)
}

func (d *fakeDecoder) Concat(ctx context.Context, inputs []string, output string) error {
	if d.concatErr != nil {
		return d.concatErr
	}
	d.concatIn = inputs
	return afero.WriteFile(d.fs, output, []byte("concat"), 0644)
}

func (d *fakeDecoder) Path() string  { return "/usr/bin/ffmpeg" }
func (d *fakeDecoder) Bundled() bool { return false }

type fakeDownloader struct {
	fs   afero.Fs
	dir  string
	err  error
	urls []string
}

func (d *fakeDownloader) Download(ctx context.Context, url, baseName string) (string, error) {
	d.urls = append(d.urls, url)
	path := filepath.Join(d.dir, baseName+".mp4")
	if d.err != nil {
		return path, d.err
	}
	return path, afero.WriteFile(d.fs, path, []byte("remote"), 0644)
}

func (d *fakeDownloader) IsAvailable() bool                                              { return true }
func (d *fakeDownloader) GetBinaryPath() string                                          { return "/usr/bin/yt-dlp" }
func (d *fakeDownloader) Install(ctx context.Context, progress func(int64, int64)) error { return nil }
func (d *fakeDownloader) Update(ctx context.Context) error                               { return nil }

// fakeRunner writes each requested output unless the input is marked failing
// or skipWrite is set.
type fakeRunner struct {
	fs        afero.Fs
	fail      map[string]bool
	skipWrite bool
	calls     []ports.StrategyRequest
	previews  []ports.StrategyRequest
}

func newFakeRunner(fs afero.Fs) *fakeRunner {
	return &fakeRunner{fs: fs, fail: map[string]bool{}}
}

func (r *fakeRunner) Run(ctx context.Context, req ports.StrategyRequest) error {
	r.calls = append(r.calls, req)
	if r.fail[req.Input] {
		return errors.New("engine exited with status 1")
	}
	if r.skipWrite {
		return nil
	}
	return afero.WriteFile(r.fs, req.Output, []byte("edited"), 0644)
}

func (r *fakeRunner) Preview(ctx context.Context, req ports.StrategyRequest) error {
	r.previews = append(r.previews, req)
	return nil
}

func (r *fakeRunner) choices() []domain.StrategyChoice {
	out := make([]domain.StrategyChoice, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Choice
	}
	return out
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

type fakeCache struct {
	items map[string]*ports.CachedProbe
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]*ports.CachedProbe{}}
}

func (c *fakeCache) Get(ctx context.Context, key ports.ProbeKey) (*ports.CachedProbe, error) {
	if item, ok := c.items[key.Path]; ok {
		return item, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, item *ports.CachedProbe) error {
	c.sets++
	c.items[item.Key.Path] = item
	return nil
}

func (c *fakeCache) CleanExpired(ctx context.Context) (int, error) { return 0, nil }
func (c *fakeCache) Clear(ctx context.Context) error               { return nil }
func (c *fakeCache) Dir() string                                   { return "/cache" }
func (c *fakeCache) Stats(ctx context.Context) (int, int64, error) { return len(c.items), 0, nil }

func writeFiles(t interface{ Fatalf(string, ...any) }, fs afero.Fs, paths ...string) {
	for _, p := range paths {
		if err := afero.WriteFile(fs, p, []byte("media"), 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}
