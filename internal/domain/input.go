package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ReferenceKind tells how an InputReference is resolved to local files
type ReferenceKind int

const (
	RefPath ReferenceKind = iota
	RefURL
)

// InputReference is a user-supplied file path, directory path or URL
type InputReference struct {
	Raw  string
	Kind ReferenceKind
}

// ParseInputReference classifies a raw reference string. Whether a path
// exists is decided by the resolver, not here.
func ParseInputReference(raw string) (InputReference, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return InputReference{}, fmt.Errorf("%w: empty reference", ErrInvalidInput)
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return InputReference{Raw: trimmed, Kind: RefURL}, nil
	}

	return InputReference{Raw: trimmed, Kind: RefPath}, nil
}

// Classification is the media kind of a resolved input
type Classification int

const (
	ClassUnknown Classification = iota
	ClassVideo
	ClassAudio
)

func (c Classification) String() string {
	switch c {
	case ClassVideo:
		return "video"
	case ClassAudio:
		return "audio"
	default:
		return "unknown"
	}
}

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".aiff": true,
	".wma":  true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".m4v":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".ts":   true,
	".m2ts": true,
	".mpg":  true,
	".mpeg": true,
	".ogv":  true,
}

// Classify tags a path by its extension (case-insensitive)
func Classify(path string) Classification {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case audioExtensions[ext]:
		return ClassAudio
	case videoExtensions[ext]:
		return ClassVideo
	default:
		return ClassUnknown
	}
}

// ResolvedInput is a local media file ready for processing. A corrected
// input replaces its original in the queue; Original keeps the path the
// user's reference resolved to.
type ResolvedInput struct {
	Path     string
	Class    Classification
	Original string
}

// NewResolvedInput classifies path once
func NewResolvedInput(path string) ResolvedInput {
	return ResolvedInput{
		Path:     path,
		Class:    Classify(path),
		Original: path,
	}
}

// WithPath returns the input superseded by a corrected copy at path
func (r ResolvedInput) WithPath(path string) ResolvedInput {
	r.Path = path
	return r
}

// Corrected reports whether the input was replaced by a repaired copy
func (r ResolvedInput) Corrected() bool {
	return r.Path != r.Original
}

var nonWordRun = regexp.MustCompile(`\W+`)

// DownloadName derives a local file stem from url by collapsing every run
// of non-word characters to a single "-".
func DownloadName(url string) string {
	return nonWordRun.ReplaceAllString(url, "-")
}
