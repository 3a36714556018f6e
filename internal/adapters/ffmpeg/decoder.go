package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/devbush/autoedit/internal/ports"
)

// Decoder implements ports.Decoder by running the ffmpeg binary
type Decoder struct {
	bin     string
	bundled bool
	debug   bool
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
}

// NewDecoder creates a decoder for bin. The fs is used for the concat
// manifest; debug tees ffmpeg's own output to the terminal.
func NewDecoder(bin string, bundled bool, debug bool, fs afero.Fs) *Decoder {
	return &Decoder{
		bin:     bin,
		bundled: bundled,
		debug:   debug,
		fs:      fs,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

func (d *Decoder) Path() string  { return d.bin }
func (d *Decoder) Bundled() bool { return d.bundled }

var frameRatePattern = regexp.MustCompile(`\s([\d.]+)\stbr`)

// ParseFrameRate extracts the first "<number> tbr" marker from decoder text
func ParseFrameRate(output string) (float64, bool) {
	m := frameRatePattern.FindStringSubmatch(output)
	if len(m) != 2 {
		return 0, false
	}
	fps, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return fps, true
}

func (d *Decoder) Probe(ctx context.Context, input string) (*ports.ProbeResult, error) {
	cmd := exec.CommandContext(ctx, d.bin, "-i", input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// ffmpeg exits non-zero without an output file; only a failure
		// to start the process is an error here.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.Wrapf(err, "run %s", d.bin)
		}
	}

	text := string(out)
	fps, ok := ParseFrameRate(text)
	return &ports.ProbeResult{
		FrameRate:  fps,
		Detectable: ok,
		Output:     text,
	}, nil
}

// reEncodeArgs builds the constant frame rate re-encode command line
func reEncodeArgs(input, output string, fps int, debug bool) []string {
	global := []string{"-hide_banner"}
	if !debug {
		global = append(global, "-nostats", "-loglevel", "0")
	}
	return ffmpeggo.Input(input).
		Output(output, ffmpeggo.KwArgs{"filter:v": fmt.Sprintf("fps=fps=%d", fps)}).
		GlobalArgs(global...).
		OverWriteOutput().
		GetArgs()
}

func (d *Decoder) ReEncode(ctx context.Context, input, output string, fps int) error {
	if err := d.run(ctx, reEncodeArgs(input, output, fps, d.debug)); err != nil {
		return errors.Wrapf(err, "re-encode %s", filepath.Base(input))
	}
	return nil
}

// concatArgs builds the stream-copy concat command line for manifest
func concatArgs(manifest, output string) []string {
	return ffmpeggo.Input(manifest, ffmpeggo.KwArgs{"f": "concat", "safe": "0"}).
		Output(output, ffmpeggo.KwArgs{"c": "copy"}).
		OverWriteOutput().
		GetArgs()
}

// manifestLine quotes path for the concat demuxer
func manifestLine(path string) string {
	return fmt.Sprintf("file '%s'\n", strings.ReplaceAll(path, "'", `'\''`))
}

func (d *Decoder) Concat(ctx context.Context, inputs []string, output string) error {
	var sb strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			abs = in
		}
		sb.WriteString(manifestLine(abs))
	}

	manifest := filepath.Join(filepath.Dir(output), "combine_files.txt")
	if err := afero.WriteFile(d.fs, manifest, []byte(sb.String()), 0644); err != nil {
		return errors.Wrap(err, "write concat manifest")
	}
	defer d.fs.Remove(manifest)

	if err := d.run(ctx, concatArgs(manifest, output)); err != nil {
		return errors.Wrap(err, "concat")
	}
	return nil
}

func (d *Decoder) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, d.bin, args...)

	var stderrBuf bytes.Buffer
	if d.debug {
		cmd.Stdout = d.stdout
		cmd.Stderr = io.MultiWriter(&stderrBuf, d.stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "ffmpeg failed: %s", lastLine(stderrBuf.String()))
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

var _ ports.Decoder = (*Decoder)(nil)
