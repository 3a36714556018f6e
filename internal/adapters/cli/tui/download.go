package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DownloadProgress renders a single self-overwriting line for a binary
// download. It is safe to pass Update as an install progress callback.
type DownloadProgress struct {
	w          io.Writer
	label      string
	quiet      bool
	mu         sync.Mutex
	lastRender time.Time
	rendered   bool
}

// NewDownloadProgress creates a progress line prefixed by label
func NewDownloadProgress(w io.Writer, label string, quiet bool) *DownloadProgress {
	return &DownloadProgress{w: w, label: label, quiet: quiet}
}

// Update records current/total bytes. Renders are throttled to avoid flicker.
func (p *DownloadProgress) Update(current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.quiet || time.Since(p.lastRender) < 100*time.Millisecond {
		return
	}
	p.render(current, total)
}

func (p *DownloadProgress) render(current, total int64) {
	p.lastRender = time.Now()
	p.rendered = true

	if total <= 0 {
		fmt.Fprintf(p.w, "\r%s... %s", p.label, FormatSize(current))
		return
	}
	pct := float64(current) / float64(total) * 100
	bar := renderProgressBar(int(current/1024), int(total/1024), 20)
	fmt.Fprintf(p.w, "\r%s... %s %.1f%% (%s / %s)", p.label, bar, pct, FormatSize(current), FormatSize(total))
}

// Done ends the progress line
func (p *DownloadProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rendered && !p.quiet {
		fmt.Fprintln(p.w)
	}
}
