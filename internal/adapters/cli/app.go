package cli

import (
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/autoedit/internal/adapters/cache"
	"github.com/devbush/autoedit/internal/adapters/engine"
	"github.com/devbush/autoedit/internal/adapters/ffmpeg"
	"github.com/devbush/autoedit/internal/adapters/opener"
	"github.com/devbush/autoedit/internal/adapters/ytdlp"
	"github.com/devbush/autoedit/internal/application"
	"github.com/devbush/autoedit/internal/config"
	"github.com/devbush/autoedit/internal/logging"
	"github.com/devbush/autoedit/internal/ports"
)

// probeMemoSize bounds the in-run probe memo
const probeMemoSize = 256

// App holds all application dependencies
type App struct {
	Config     *config.Config
	Log        *logging.Logger
	FFmpeg     ffmpeg.Location
	Decoder    *ffmpeg.Decoder
	Downloader *ytdlp.Downloader
	Engine     *engine.Runner
	Cache      ports.ProbeCache

	CacheSvc     *application.CacheService
	Orchestrator *application.Orchestrator
}

// AppSettings are the command line switches that change wiring
type AppSettings struct {
	UseSystemFFmpeg bool
	Debug           bool
}

// NewApp creates and wires up all dependencies
func NewApp(s AppSettings) (*App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	log := logging.NewStd(s.Debug)

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		log.Warn("Invalid cache_ttl %q, using 7d", cfg.Defaults.CacheTTL)
		ttl = 7 * 24 * time.Hour
	}

	fs := afero.NewOsFs()
	loc := ffmpeg.Locate(cfg.Paths.FFmpeg, s.UseSystemFFmpeg)
	decoder := ffmpeg.NewDecoder(loc.Path, loc.Bundled, s.Debug, fs)

	// yt-dlp finds a PATH ffmpeg on its own
	downloaderFFmpeg := ""
	if loc.Bundled {
		downloaderFFmpeg = loc.Path
	}
	downloader := ytdlp.NewDownloader(cfg.Paths.YtDlp, downloaderFFmpeg, ".")

	store := cache.NewFileCache(config.CacheDir(), ttl)
	memo, err := cache.NewMemo(store, probeMemoSize)
	if err != nil {
		return nil, err
	}

	runner := engine.NewRunner(cfg.Paths.Engine)
	resolver := application.NewResolver(fs, downloader, decoder, log, "combined.mp4")
	orch := application.NewOrchestrator(fs, resolver, decoder, memo, runner, opener.New(), log)

	return &App{
		Config:       cfg,
		Log:          log,
		FFmpeg:       loc,
		Decoder:      decoder,
		Downloader:   downloader,
		Engine:       runner,
		Cache:        memo,
		CacheSvc:     application.NewCacheService(memo),
		Orchestrator: orch,
	}, nil
}
