package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devbush/autoedit/internal/adapters/cli/tui"
	"github.com/devbush/autoedit/internal/application"
	"github.com/devbush/autoedit/internal/config"
	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/logging"
)

// newApp is swapped in tests
var newApp = NewApp

// rootOptions holds the values of the editing flags
type rootOptions struct {
	frameMargin     int
	silentThreshold float64
	videoSpeed      float64
	silentSpeed     float64
	outputs         []string

	noOpen        bool
	zoomThreshold float64
	combineFiles  bool
	hardwareAccel string

	sampleRate       int
	audioBitrate     string
	backgroundMusic  fileValue
	backgroundVolume float64

	cutByThisAudio     fileValue
	cutByThisTrack     int
	cutByAllTracks     bool
	keepTracksSeparate bool

	clearCache bool
	myFFmpeg   bool
	version    bool
	debug      bool

	preview        bool
	exportPremiere bool
	inputFile      string
	noCache        bool
}

// NewRootCmd creates the root command
func NewRootCmd(version string) *cobra.Command {
	cmd, _ := newRootCmd(version)
	return cmd
}

func newRootCmd(version string) (*cobra.Command, *rootOptions) {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "auto-editor [input ...] [options]",
		Short: "Remove silent parts from video and audio files",
		Long: `auto-editor cuts the silent sections out of media files.

Inputs may be files, folders (every file inside, in name order) or
http(s) URLs, which are downloaded first.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, o, version, args)
		},
	}

	f := rootCmd.Flags()
	f.SetNormalizeFunc(normalizeFlag)

	f.IntVarP(&o.frameMargin, "frame-margin", "m", domain.DefaultFrameMargin, `how many "silent" frames on either side of "loud" sections to keep`)
	f.VarP(newPercentValue(domain.DefaultSilentThreshold, &o.silentThreshold), "silent-threshold", "t", "volume a frame must surpass to be sounded (0-1)")
	f.VarP(newPercentValue(1, &o.videoSpeed), "video-speed", "v", `speed of "loud" sections`)
	f.VarP(newPercentValue(domain.MaxSpeed, &o.silentSpeed), "silent-speed", "s", `speed of "silent" sections (99999 cuts them)`)
	f.StringArrayVarP(&o.outputs, "output", "o", nil, "name of the new output, repeat for each input")

	f.BoolVar(&o.noOpen, "no-open", false, "do not open the file after editing is done")
	f.Var(newPercentValue(domain.DefaultZoomThreshold, &o.zoomThreshold), "zoom-threshold", "volume that must be surpassed to zoom in (0-1)")
	f.BoolVar(&o.combineFiles, "combine-files", false, "combine all inputs into one file before editing")
	f.StringVar(&o.hardwareAccel, "hardware-accel", "", "hardware used for gpu acceleration")

	f.VarP(newSampleRateValue(domain.DefaultSampleRate, &o.sampleRate), "sample-rate", "r", "sample rate of the input and output")
	f.StringVar(&o.audioBitrate, "audio-bitrate", domain.DefaultAudioBitrate, "bits per second for audio")
	f.Var(&o.backgroundMusic, "background-music", "audio file added as background music")
	f.Float64Var(&o.backgroundVolume, "background-volume", domain.DefaultBackgroundVolume, "dB louder or softer than the track that bases the cuts")

	f.Var(&o.cutByThisAudio, "cut-by-this-audio", "base cuts on this audio file instead of the input's audio")
	f.IntVar(&o.cutByThisTrack, "cut-by-this-track", 0, "base cuts on a different audio track")
	f.BoolVar(&o.cutByAllTracks, "cut-by-all-tracks", false, "mix all audio tracks before basing cuts")
	f.BoolVar(&o.keepTracksSeparate, "keep-tracks-separate", false, "do not mix audio tracks (exclusive with --cut-by-all-tracks)")

	f.BoolVar(&o.clearCache, "clear-cache", false, "delete the cache folder and all its contents")
	f.BoolVar(&o.myFFmpeg, "my-ffmpeg", false, "use ffmpeg from PATH instead of the bundled one")
	f.BoolVar(&o.version, "version", false, "show which auto-editor you have")
	f.BoolVar(&o.debug, "debug", false, "show helpful debugging values")

	f.BoolVar(&o.preview, "preview", false, "show stats on how the input will be cut")
	f.BoolVar(&o.exportPremiere, "export-to-premiere", false, "export an XML file for Adobe Premiere Pro instead of media")
	f.StringVar(&o.inputFile, "input-file", "", "file listing inputs, one per line")
	f.BoolVar(&o.noCache, "no-cache", false, "skip the frame rate probe cache")

	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewVersionCmd(version))

	return rootCmd, o
}

// jobOptions builds the run options. Flags the user did not set fall back to
// the config file defaults.
func (o *rootOptions) jobOptions(flags *pflag.FlagSet, cfg *config.Config) domain.JobOptions {
	opts := domain.JobOptions{
		FrameMargin:        o.frameMargin,
		SilentThreshold:    o.silentThreshold,
		ZoomThreshold:      o.zoomThreshold,
		VideoSpeed:         o.videoSpeed,
		SilentSpeed:        o.silentSpeed,
		SampleRate:         o.sampleRate,
		AudioBitrate:       o.audioBitrate,
		BackgroundMusic:    string(o.backgroundMusic),
		BackgroundVolume:   o.backgroundVolume,
		CutByThisAudio:     string(o.cutByThisAudio),
		CutByThisTrack:     o.cutByThisTrack,
		CutByAllTracks:     o.cutByAllTracks,
		KeepTracksSeparate: o.keepTracksSeparate,
		HardwareAccel:      o.hardwareAccel,
		CombineFiles:       o.combineFiles,
		ExportPremiere:     o.exportPremiere,
		NoOpen:             o.noOpen,
		Debug:              o.debug,
	}
	if cfg == nil {
		return opts
	}

	d := cfg.Defaults
	if !flags.Changed("frame-margin") && d.FrameMargin != nil {
		opts.FrameMargin = *d.FrameMargin
	}
	if !flags.Changed("silent-threshold") && d.SilentThreshold != nil {
		opts.SilentThreshold = *d.SilentThreshold
	}
	if !flags.Changed("sample-rate") && d.SampleRate > 0 {
		opts.SampleRate = d.SampleRate
	}
	if !flags.Changed("audio-bitrate") && d.AudioBitrate != "" {
		opts.AudioBitrate = d.AudioBitrate
	}
	return opts
}

func runRoot(cmd *cobra.Command, o *rootOptions, version string, args []string) error {
	out := cmd.OutOrStdout()
	if o.version {
		fmt.Fprintf(out, "Auto-Editor version: %s\n", version)
		return nil
	}

	app, err := newApp(AppSettings{UseSystemFFmpeg: o.myFFmpeg, Debug: o.debug})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	noInput := len(args) == 0 && o.inputFile == ""
	if o.clearCache {
		if err := app.CacheSvc.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "Removed cache.")
		if noInput {
			return nil
		}
	}

	if o.debug {
		printEnvironment(out, app, version)
		if noInput {
			return nil
		}
	}

	refs, err := CollectInputs(fsys, args, o.inputFile)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("%w: auto-editor needs the path to a video or audio file to work on", domain.ErrNoInput)
	}

	opts := o.jobOptions(cmd.Flags(), app.Config)
	opts.CacheDir = app.Cache.Dir()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	req := application.RunRequest{
		Inputs:  refs,
		Outputs: o.outputs,
		Options: opts,
		NoCache: o.noCache,
	}

	if o.preview {
		return app.Orchestrator.Preview(ctx, req)
	}

	report, err := app.Orchestrator.Run(ctx, req)
	if report != nil && len(report.Items) > 1 {
		summarize(report).Render(out)
	}
	return err
}

func summarize(report *application.RunReport) *tui.BatchSummary {
	s := tui.NewBatchSummary(false)
	for _, item := range report.Items {
		line := tui.BatchLine{
			Name:     filepath.Base(item.Input.Original),
			Strategy: string(item.Choice),
			Output:   item.Output,
			Duration: item.Duration,
		}
		if item.Err != nil {
			line.ErrMsg = item.Err.Error()
		}
		s.Add(line)
	}
	return s
}

func printEnvironment(w io.Writer, app *App, version string) {
	fmt.Fprintf(w, "Go version: %s %s\n", runtime.Version(), runtime.GOARCH)
	fmt.Fprintf(w, "Platform: %s\n", runtime.GOOS)
	fmt.Fprintf(w, "FFmpeg path: %s\n", app.FFmpeg.Path)
	fmt.Fprintf(w, "yt-dlp path: %s\n", orNotFound(app.Downloader.GetBinaryPath()))
	fmt.Fprintf(w, "Engine path: %s\n", orNotFound(app.Engine.BinaryPath()))
	fmt.Fprintf(w, "Cache: %s\n", app.Cache.Dir())
	fmt.Fprintf(w, "Auto-Editor version: %s\n", version)
}

func orNotFound(path string) string {
	if path == "" {
		return "not found"
	}
	return path
}

// Execute runs the CLI and exits non-zero on failure
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		logging.NewStd(false).Error("%v", err)
		os.Exit(1)
	}
}
