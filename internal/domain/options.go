package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxSpeed also stands for "cut entirely" when used as the silent speed
	MaxSpeed = 99999

	DefaultFrameMargin      = 4
	DefaultSilentThreshold  = 0.04
	DefaultZoomThreshold    = 1.01
	DefaultSampleRate       = 48000
	DefaultAudioBitrate     = "160k"
	DefaultBackgroundVolume = -8.0
)

// JobOptions is the configuration snapshot shared read-only by every stage
// of a run. Build it once with Validate and pass it by value.
type JobOptions struct {
	FrameMargin     int
	SilentThreshold float64
	ZoomThreshold   float64
	VideoSpeed      float64
	SilentSpeed     float64
	SampleRate      int
	AudioBitrate    string

	BackgroundMusic  string
	BackgroundVolume float64

	CutByThisAudio     string
	CutByThisTrack     int
	CutByAllTracks     bool
	KeepTracksSeparate bool

	HardwareAccel  string
	CombineFiles   bool
	ExportPremiere bool
	NoOpen         bool
	Debug          bool

	CacheDir string
}

// DefaultJobOptions returns options matching the command line defaults
func DefaultJobOptions() JobOptions {
	return JobOptions{
		FrameMargin:      DefaultFrameMargin,
		SilentThreshold:  DefaultSilentThreshold,
		ZoomThreshold:    DefaultZoomThreshold,
		VideoSpeed:       1,
		SilentSpeed:      MaxSpeed,
		SampleRate:       DefaultSampleRate,
		AudioBitrate:     DefaultAudioBitrate,
		BackgroundVolume: DefaultBackgroundVolume,
	}
}

// Validate checks cross-field constraints and returns a normalized copy
func (o JobOptions) Validate() (JobOptions, error) {
	if o.CutByAllTracks && o.KeepTracksSeparate {
		return o, fmt.Errorf("%w: --cut-by-all-tracks and --keep-tracks-separate are mutually exclusive", ErrInvalidInput)
	}
	if o.CutByThisTrack < 0 {
		return o, fmt.Errorf("%w: track index must not be negative", ErrInvalidInput)
	}
	if o.SampleRate <= 0 {
		return o, fmt.Errorf("%w: sample rate must be positive", ErrInvalidInput)
	}
	o.VideoSpeed = ClampSpeed(o.VideoSpeed)
	o.SilentSpeed = ClampSpeed(o.SilentSpeed)
	return o, nil
}

// WantsZoom reports whether the zoom threshold can ever be reached
func (o JobOptions) WantsZoom() bool {
	return o.ZoomThreshold <= 1
}

// ClampSpeed maps out-of-range speeds to MaxSpeed
func ClampSpeed(speed float64) float64 {
	if speed <= 0 || speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// ParsePercent parses "0.04" or "4%"
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage: %s", s)
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return v, nil
}

// ParseSampleRate parses "48000", "48000 Hz" or "44.1 kHz"
func ParseSampleRate(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, " kHz"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, " kHz"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid sample rate: %s", s)
		}
		return int(v * 1000), nil
	case strings.HasSuffix(s, " Hz"):
		s = strings.TrimSuffix(s, " Hz")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid sample rate: %s", s)
	}
	return v, nil
}
