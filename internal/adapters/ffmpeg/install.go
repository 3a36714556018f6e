package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/pkg/errors"

	"github.com/devbush/autoedit/internal/config"
	"github.com/devbush/autoedit/internal/domain"
)

const windowsBuildURL = "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.7z"

// Instructions returns platform-specific installation instructions, or ""
// when Install can fetch ffmpeg itself.
func Instructions() string {
	switch runtime.GOOS {
	case "windows":
		return ""
	case "darwin":
		return "ffmpeg not found. Install it with: brew install ffmpeg"
	default:
		return "ffmpeg not found. Install it with your package manager, e.g.: sudo apt install ffmpeg"
	}
}

// Install downloads a static ffmpeg build into BinDir (Windows only)
func Install(ctx context.Context, progress func(downloaded, total int64)) (string, error) {
	if runtime.GOOS != "windows" {
		return "", errors.WithMessage(domain.ErrFFmpegNotFound, Instructions())
	}

	binDir := config.BinDir()
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return "", err
	}

	archive := filepath.Join(binDir, "ffmpeg.7z.tmp")
	defer os.Remove(archive)

	if err := download(ctx, windowsBuildURL, archive, progress); err != nil {
		return "", err
	}

	dest := filepath.Join(binDir, binaryName())
	if err := extractBinary(archive, binaryName(), dest); err != nil {
		return "", err
	}
	return dest, nil
}

func download(ctx context.Context, url, destPath string, progress func(downloaded, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download ffmpeg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download ffmpeg: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

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
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// extractBinary copies the first "bin/<name>" entry of a 7z archive to dest
func extractBinary(archive, name, dest string) error {
	r, err := sevenzip.OpenReader(archive)
	if err != nil {
		return errors.Wrap(err, "open ffmpeg archive")
	}
	defer r.Close()

	for _, f := range r.File {
		if !isBinaryEntry(f.Name, name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, "open %s", f.Name)
		}
		defer rc.Close()

		out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			os.Remove(dest)
			return errors.Wrap(err, "extract ffmpeg")
		}
		return out.Close()
	}

	return fmt.Errorf("%s not found in archive", name)
}

func isBinaryEntry(entry, name string) bool {
	entry = strings.ReplaceAll(entry, `\`, "/")
	return strings.HasSuffix(entry, "/bin/"+name)
}
