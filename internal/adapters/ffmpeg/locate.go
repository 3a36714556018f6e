package ffmpeg

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/devbush/autoedit/internal/config"
)

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

// Location is where the ffmpeg binary was found
type Location struct {
	Path string
	// Bundled is true when Path is an explicit location (bundled or
	// configured) that other tools must be told about.
	Bundled bool
}

// Locate picks the ffmpeg binary: a configured path, then the bundled copy
// in BinDir unless useSystem is set, then PATH. When nothing is found the
// bare name is returned so the failure surfaces at the first invocation.
func Locate(configured string, useSystem bool) Location {
	if configured != "" {
		return Location{Path: configured, Bundled: true}
	}

	if !useSystem {
		bundled := filepath.Join(config.BinDir(), binaryName())
		if _, err := os.Stat(bundled); err == nil {
			return Location{Path: bundled, Bundled: true}
		}
	}

	if path, err := exec.LookPath(binaryName()); err == nil {
		return Location{Path: path}
	}

	return Location{Path: binaryName()}
}

// Available reports whether loc points at something runnable
func (loc Location) Available() bool {
	if loc.Bundled {
		_, err := os.Stat(loc.Path)
		return err == nil
	}
	_, err := exec.LookPath(loc.Path)
	return err == nil
}
