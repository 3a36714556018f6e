package domain

import "errors"

var (
	// Input resolution errors (batch-fatal)
	ErrInvalidInput = errors.New("invalid input")
	ErrNoInput      = errors.New("no input provided")

	// Frame rate repair
	ErrUndetectableFrameRate = errors.New("frame rate could not be detected")
	ErrDecodeFailed          = errors.New("decode failed")

	// Per-item processing errors
	ErrStrategyFailure = errors.New("strategy failed")

	// Post-run errors
	ErrOutputMissing = errors.New("output file was not created")
	ErrOpenFailure   = errors.New("could not open output file")

	// Cache errors
	ErrCacheExpired = errors.New("cache expired")
	ErrCacheMiss    = errors.New("cache miss")

	// Dependency errors
	ErrFFmpegNotFound     = errors.New("ffmpeg not found")
	ErrDownloaderNotFound = errors.New("yt-dlp not found")
)
