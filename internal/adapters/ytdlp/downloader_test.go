package ytdlp

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/devbush/autoedit/internal/domain"
)

func TestYtDlpBinaryName(t *testing.T) {
	name := binaryName()

	if runtime.GOOS == "windows" {
		if name != "yt-dlp.exe" {
			t.Errorf("binaryName() = %s, want yt-dlp.exe on Windows", name)
		}
	} else {
		if name != "yt-dlp" {
			t.Errorf("binaryName() = %s, want yt-dlp", name)
		}
	}
}

func TestDownloadArgs(t *testing.T) {
	d := NewDownloader("", "", "")
	args := strings.Join(d.downloadArgs("https://x.io/v", "https-x-io-v"), " ")

	if !strings.Contains(args, "-f "+formatSelector) {
		t.Errorf("missing format selector: %s", args)
	}
	if !strings.Contains(args, "--output https-x-io-v.%(ext)s") {
		t.Errorf("missing output template: %s", args)
	}
	if strings.Contains(args, "--ffmpeg-location") {
		t.Errorf("system ffmpeg should not be passed explicitly: %s", args)
	}

	bundled := NewDownloader("", "/home/u/.auto-editor/bin/ffmpeg", "")
	args = strings.Join(bundled.downloadArgs("https://x.io/v", "https-x-io-v"), " ")
	if !strings.Contains(args, "--ffmpeg-location /home/u/.auto-editor/bin/ffmpeg") {
		t.Errorf("missing ffmpeg location: %s", args)
	}
}

func TestDownload_PathReturnedOnFailure(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(filepath.Join(dir, "no-such-yt-dlp"), "", dir)

	path, err := d.Download(context.Background(), "https://x.io/v", "https-x-io-v")
	if err == nil {
		t.Fatal("expected error from missing binary")
	}
	if want := filepath.Join(dir, "https-x-io-v.mp4"); path != want {
		t.Errorf("Download() path = %q, want %q", path, want)
	}
	if errors.Is(err, domain.ErrDownloaderNotFound) {
		t.Errorf("configured binary should be attempted, got %v", err)
	}
}
