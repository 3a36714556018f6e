// Package engine runs the external editing engine that implements the
// fast-audio, fast-video, original and Premiere export pipelines.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pkg/errors"

	"github.com/devbush/autoedit/internal/config"
	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/ports"
)

const previewMode = "preview"

// Runner implements ports.StrategyRunner by invoking the engine binary
// with the pipeline name as its first argument.
type Runner struct {
	configured string
	stdout     io.Writer
	stderr     io.Writer
}

// NewRunner creates a runner; configured overrides binary lookup
func NewRunner(configured string) *Runner {
	return &Runner{
		configured: configured,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "auto-editor-engine.exe"
	}
	return "auto-editor-engine"
}

// BinaryPath returns the engine binary, or "" if none is installed
func (r *Runner) BinaryPath() string {
	if r.configured != "" {
		return r.configured
	}

	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Args builds the engine command line for mode. Only the options that the
// pipeline consumes are passed.
func Args(mode string, req ports.StrategyRequest) []string {
	o := req.Options
	args := []string{
		mode,
		"--ffmpeg", req.Tool,
		"--input", req.Input,
		"--silent-threshold", formatFloat(o.SilentThreshold),
		"--frame-margin", strconv.Itoa(o.FrameMargin),
		"--sample-rate", strconv.Itoa(o.SampleRate),
		"--video-speed", formatFloat(o.VideoSpeed),
		"--silent-speed", formatFloat(o.SilentSpeed),
	}
	if req.Output != "" {
		args = append(args, "--output", req.Output)
	}

	switch domain.StrategyChoice(mode) {
	case domain.StrategyPremiereExport:
		args = append(args, "--zoom-threshold", formatFloat(o.ZoomThreshold))
	case domain.StrategyAudioFast:
		args = append(args, "--audio-bitrate", o.AudioBitrate)
	case domain.StrategyVideoFast:
		args = append(args,
			"--audio-bitrate", o.AudioBitrate,
			"--cut-by-this-track", strconv.Itoa(o.CutByThisTrack),
		)
		if o.KeepTracksSeparate {
			args = append(args, "--keep-tracks-separate")
		}
	case domain.StrategyOriginalFull:
		args = append(args,
			"--audio-bitrate", o.AudioBitrate,
			"--zoom-threshold", formatFloat(o.ZoomThreshold),
			"--cut-by-this-track", strconv.Itoa(o.CutByThisTrack),
			"--background-volume", formatFloat(o.BackgroundVolume),
			"--cache", o.CacheDir,
		)
		if o.BackgroundMusic != "" {
			args = append(args, "--background-music", o.BackgroundMusic)
		}
		if o.CutByThisAudio != "" {
			args = append(args, "--cut-by-this-audio", o.CutByThisAudio)
		}
		if o.CutByAllTracks {
			args = append(args, "--cut-by-all-tracks")
		}
		if o.KeepTracksSeparate {
			args = append(args, "--keep-tracks-separate")
		}
		if o.HardwareAccel != "" {
			args = append(args, "--hardware-accel", o.HardwareAccel)
		}
	case previewMode:
		args = append(args,
			"--zoom-threshold", formatFloat(o.ZoomThreshold),
			"--cut-by-this-track", strconv.Itoa(o.CutByThisTrack),
			"--audio-bitrate", o.AudioBitrate,
			"--cache", o.CacheDir,
		)
	}

	if o.Debug {
		args = append(args, "--debug")
	}
	return args
}

func (r *Runner) exec(ctx context.Context, mode string, req ports.StrategyRequest) error {
	bin := r.BinaryPath()
	if bin == "" {
		return fmt.Errorf("%w: %s not found", domain.ErrStrategyFailure, binaryName())
	}

	cmd := exec.CommandContext(ctx, bin, Args(mode, req)...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStrategyFailure, errors.Wrapf(err, "%s on %s", mode, filepath.Base(req.Input)))
	}
	return nil
}

func (r *Runner) Run(ctx context.Context, req ports.StrategyRequest) error {
	return r.exec(ctx, string(req.Choice), req)
}

func (r *Runner) Preview(ctx context.Context, req ports.StrategyRequest) error {
	return r.exec(ctx, previewMode, req)
}

var _ ports.StrategyRunner = (*Runner)(nil)
