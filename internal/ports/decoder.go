package ports

import "context"

// ProbeResult is the outcome of a metadata-only decoder run
type ProbeResult struct {
	FrameRate  float64 // zero when undetectable
	Detectable bool
	Output     string // combined stdout/stderr, shown in debug mode
}

// Decoder wraps the external media decoder/encoder (ffmpeg).
type Decoder interface {
	// Probe runs the decoder in info-only mode and scans for a "tbr" marker.
	// An absent marker is reported through Detectable, not as an error.
	Probe(ctx context.Context, input string) (*ProbeResult, error)

	// ReEncode writes a constant frame rate copy of input to output.
	ReEncode(ctx context.Context, input, output string, fps int) error

	// Concat stream-copies inputs, in order, into one output file.
	Concat(ctx context.Context, inputs []string, output string) error

	// Path returns the decoder binary in use.
	Path() string

	// Bundled reports whether Path points at a bundled binary rather than PATH.
	Bundled() bool
}
