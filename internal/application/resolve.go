package application

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/logging"
	"github.com/devbush/autoedit/internal/ports"
)

// Resolver expands input references into an ordered queue of local files
type Resolver struct {
	fs         afero.Fs
	downloader ports.Downloader
	decoder    ports.Decoder
	log        *logging.Logger
	combined   string
}

// NewResolver creates a resolver. Combined batches are written to
// combinedPath.
func NewResolver(fs afero.Fs, downloader ports.Downloader, decoder ports.Decoder, log *logging.Logger, combinedPath string) *Resolver {
	if combinedPath == "" {
		combinedPath = "combined.mp4"
	}
	return &Resolver{
		fs:         fs,
		downloader: downloader,
		decoder:    decoder,
		log:        log,
		combined:   combinedPath,
	}
}

// Resolve returns one entry per file, in reference order, with directory
// contents sorted by name. Any reference that is not an existing path or an
// http(s) URL aborts resolution with domain.ErrInvalidInput.
func (r *Resolver) Resolve(ctx context.Context, refs []string) ([]domain.ResolvedInput, error) {
	if len(refs) == 0 {
		return nil, domain.ErrNoInput
	}

	var queue []domain.ResolvedInput
	for _, raw := range refs {
		ref, err := domain.ParseInputReference(raw)
		if err != nil {
			return nil, err
		}

		info, statErr := r.fs.Stat(ref.Raw)
		switch {
		case statErr == nil && info.IsDir():
			files, err := r.expandDir(ref.Raw)
			if err != nil {
				return nil, err
			}
			queue = append(queue, files...)
		case statErr == nil && info.Mode().IsRegular():
			queue = append(queue, domain.NewResolvedInput(ref.Raw))
		case ref.Kind == domain.RefURL:
			queue = append(queue, domain.NewResolvedInput(r.download(ctx, ref.Raw)))
		default:
			return nil, fmt.Errorf("%w: could not find file: %s", domain.ErrInvalidInput, ref.Raw)
		}
	}

	if len(queue) == 0 {
		return nil, fmt.Errorf("%w: no media files found", domain.ErrInvalidInput)
	}
	return queue, nil
}

func (r *Resolver) expandDir(dir string) ([]domain.ResolvedInput, error) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read directory %s: %v", domain.ErrInvalidInput, dir, err)
	}

	var files []domain.ResolvedInput
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !entry.Mode().IsRegular() {
			r.log.Warn("Skipping %s: not a file", path)
			continue
		}
		files = append(files, domain.NewResolvedInput(path))
	}
	return files, nil
}

// download fetches url and returns where the file is expected. A failed
// download is only logged; the missing file fails its own item later.
func (r *Resolver) download(ctx context.Context, url string) string {
	r.log.Info("URL detected, downloading from webpage: %s", url)
	path, err := r.downloader.Download(ctx, url, domain.DownloadName(url))
	if err != nil {
		r.log.Warn("Download reported an error: %v", err)
	}
	return path
}

// Combine concatenates the queue into one file and returns the collapsed queue
func (r *Resolver) Combine(ctx context.Context, queue []domain.ResolvedInput) ([]domain.ResolvedInput, error) {
	paths := make([]string, len(queue))
	for i, in := range queue {
		paths[i] = in.Path
	}

	r.log.Info("Combining %d files into %s", len(paths), r.combined)
	if err := r.decoder.Concat(ctx, paths, r.combined); err != nil {
		return nil, fmt.Errorf("combine files: %w", err)
	}
	return []domain.ResolvedInput{domain.NewResolvedInput(r.combined)}, nil
}
