package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devbush/autoedit/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Paths    PathsConfig    `yaml:"paths"`
}

// DefaultsConfig holds default values for editing options. FrameMargin and
// SilentThreshold are pointers because zero is a legal setting for both.
type DefaultsConfig struct {
	FrameMargin     *int     `yaml:"frame_margin"`
	SilentThreshold *float64 `yaml:"silent_threshold"`
	SampleRate      int      `yaml:"sample_rate"`
	AudioBitrate    string   `yaml:"audio_bitrate"`
	CacheTTL        string   `yaml:"cache_ttl"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	FFmpeg string `yaml:"ffmpeg"`
	YtDlp  string `yaml:"yt_dlp"`
	Engine string `yaml:"engine"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	margin, threshold := domain.DefaultFrameMargin, domain.DefaultSilentThreshold
	return &Config{
		Defaults: DefaultsConfig{
			FrameMargin:     &margin,
			SilentThreshold: &threshold,
			SampleRate:      domain.DefaultSampleRate,
			AudioBitrate:    domain.DefaultAudioBitrate,
			CacheTTL:        "7d",
		},
	}
}

// AppDir returns the application directory (~/.auto-editor)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auto-editor"
	}
	return filepath.Join(home, ".auto-editor")
}

// CacheDir returns the cache directory
func CacheDir() string {
	return filepath.Join(AppDir(), "cache")
}

// BinDir returns the directory of bundled binaries
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), CacheDir(), BinDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Defaults.CacheTTL)
}

var durationPattern = regexp.MustCompile(`^(\d+)(h|d)$`)

// ParseDuration parses duration strings like "24h", "7d", "30d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
