package application

import (
	"github.com/spf13/afero"
)

// WorkDir is the ephemeral directory for frame rate repairs. It is created
// on first Acquire and removed by Release; only the orchestrator owns one.
type WorkDir struct {
	fs     afero.Fs
	parent string
	prefix string
	path   string
}

// NewWorkDir prepares a work dir under parent ("" means the OS temp dir)
func NewWorkDir(fs afero.Fs, parent, prefix string) *WorkDir {
	return &WorkDir{fs: fs, parent: parent, prefix: prefix}
}

// Acquire returns the directory, creating it the first time
func (w *WorkDir) Acquire() (string, error) {
	if w.path != "" {
		return w.path, nil
	}
	dir, err := afero.TempDir(w.fs, w.parent, w.prefix)
	if err != nil {
		return "", err
	}
	w.path = dir
	return dir, nil
}

// Path returns the directory, or "" if it was never acquired
func (w *WorkDir) Path() string {
	return w.path
}

// Release removes the directory and its contents. Safe to call repeatedly.
func (w *WorkDir) Release() error {
	if w.path == "" {
		return nil
	}
	if err := w.fs.RemoveAll(w.path); err != nil {
		return err
	}
	w.path = ""
	return nil
}
