package ytdlp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"github.com/devbush/autoedit/internal/config"
	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/ports"
)

const formatSelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/mp4"

// Downloader implements ports.Downloader using yt-dlp
type Downloader struct {
	binPath    string
	configured string
	ffmpegPath string
	destDir    string
	stdout     io.Writer
	stderr     io.Writer
}

// NewDownloader creates a yt-dlp downloader. configured overrides binary
// lookup; a non-empty ffmpegPath is passed on as --ffmpeg-location.
func NewDownloader(configured, ffmpegPath, destDir string) *Downloader {
	if destDir == "" {
		destDir = "."
	}
	return &Downloader{
		configured: configured,
		ffmpegPath: ffmpegPath,
		destDir:    destDir,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func (d *Downloader) findBinary() string {
	if d.configured != "" {
		return d.configured
	}

	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (d *Downloader) GetBinaryPath() string {
	if d.binPath != "" {
		return d.binPath
	}
	d.binPath = d.findBinary()
	return d.binPath
}

func (d *Downloader) IsAvailable() bool {
	return d.GetBinaryPath() != ""
}

// downloadArgs builds the yt-dlp command line writing <base>.mp4
func (d *Downloader) downloadArgs(url, base string) []string {
	args := []string{
		"-f", formatSelector,
		url,
		"--output", base + ".%(ext)s",
		"--merge-output-format", "mp4",
		"--no-check-certificate",
	}
	if d.ffmpegPath != "" {
		args = append(args, "--ffmpeg-location", d.ffmpegPath)
	}
	return args
}

func (d *Downloader) Download(ctx context.Context, url, baseName string) (string, error) {
	base := filepath.Join(d.destDir, baseName)
	path := base + ".mp4"

	binPath := d.GetBinaryPath()
	if binPath == "" {
		return path, domain.ErrDownloaderNotFound
	}

	cmd := exec.CommandContext(ctx, binPath, d.downloadArgs(url, base)...)
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr
	if err := cmd.Run(); err != nil {
		return path, errors.Wrapf(err, "yt-dlp failed for %s", url)
	}

	return path, nil
}

func (d *Downloader) Install(ctx context.Context, progress func(downloaded, total int64)) error {
	binDir := config.BinDir()
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}

	downloadURL := d.getDownloadURL()
	destPath := filepath.Join(binDir, binaryName())

	// Use context-aware HTTP request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	// Track success to clean up partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(destPath)
		}
	}()

	total := resp.ContentLength
	var downloaded int64

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			_, writeErr := out.Write(buf[:n])
			if writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	// Make executable on Unix
	if runtime.GOOS != "windows" {
		if err := os.Chmod(destPath, 0755); err != nil {
			return err
		}
	}

	success = true
	d.binPath = destPath
	return nil
}

func (d *Downloader) getDownloadURL() string {
	base := "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

	switch runtime.GOOS {
	case "windows":
		return base + "yt-dlp.exe"
	case "darwin":
		return base + "yt-dlp_macos"
	default:
		return base + "yt-dlp"
	}
}

func (d *Downloader) Update(ctx context.Context) error {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return domain.ErrDownloaderNotFound
	}

	cmd := exec.CommandContext(ctx, binPath, "-U")
	return cmd.Run()
}

// Ensure Downloader implements interface
var _ ports.Downloader = (*Downloader)(nil)
