package ports

import "context"

// Downloader fetches remote media to a local file.
type Downloader interface {
	// Download fetches url into <baseName>.mp4 and returns that path. The
	// exit status of the external tool is reported but the path is always
	// returned, so callers can decide whether to trust it.
	Download(ctx context.Context, url, baseName string) (string, error)

	// IsAvailable checks if the download tool is installed.
	IsAvailable() bool

	// GetBinaryPath returns the path to the download tool.
	GetBinaryPath() string

	// Install downloads and installs the tool, reporting progress via callback.
	Install(ctx context.Context, progress func(downloaded, total int64)) error

	// Update updates the tool to its latest version.
	Update(ctx context.Context) error
}
