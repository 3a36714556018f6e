package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/devbush/autoedit/internal/domain"
)

// fsys is the filesystem flag values and input files are checked against
var fsys afero.Fs = afero.NewOsFs()

// percentValue accepts plain numbers or percentages ("4%" is 0.04)
type percentValue float64

func newPercentValue(def float64, p *float64) *percentValue {
	*p = def
	return (*percentValue)(p)
}

func (v *percentValue) String() string { return strconv.FormatFloat(float64(*v), 'f', -1, 64) }
func (v *percentValue) Type() string   { return "number" }

func (v *percentValue) Set(s string) error {
	f, err := domain.ParsePercent(s)
	if err != nil {
		return err
	}
	*v = percentValue(f)
	return nil
}

// sampleRateValue accepts "48000", "48000 Hz" or "44.1 kHz"
type sampleRateValue int

func newSampleRateValue(def int, p *int) *sampleRateValue {
	*p = def
	return (*sampleRateValue)(p)
}

func (v *sampleRateValue) String() string { return strconv.Itoa(int(*v)) }
func (v *sampleRateValue) Type() string   { return "rate" }

func (v *sampleRateValue) Set(s string) error {
	n, err := domain.ParseSampleRate(s)
	if err != nil {
		return err
	}
	*v = sampleRateValue(n)
	return nil
}

// fileValue only accepts paths to existing regular files
type fileValue string

func (v *fileValue) String() string { return string(*v) }
func (v *fileValue) Type() string   { return "file" }

func (v *fileValue) Set(s string) error {
	info, err := fsys.Stat(s)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: could not locate file: %s", domain.ErrInvalidInput, s)
	}
	*v = fileValue(s)
	return nil
}

var flagAliases = map[string]string{
	"sounded-speed":        "video-speed",
	"keep-tracks-seperate": "keep-tracks-separate",
	"verbose":              "debug",
	"output-file":          "output",
}

// normalizeFlag accepts the historical underscore spellings and aliases
func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if alias, ok := flagAliases[name]; ok {
		name = alias
	}
	return pflag.NormalizedName(name)
}

var (
	_ pflag.Value = (*percentValue)(nil)
	_ pflag.Value = (*sampleRateValue)(nil)
	_ pflag.Value = (*fileValue)(nil)
)
