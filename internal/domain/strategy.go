package domain

// StrategyChoice names one of the mutually exclusive processing pipelines
type StrategyChoice string

const (
	StrategyPremiereExport StrategyChoice = "premiere"
	StrategyAudioFast      StrategyChoice = "fast-audio"
	StrategyVideoFast      StrategyChoice = "fast-video"
	StrategyOriginalFull   StrategyChoice = "original"
)

// SelectStrategy maps an input to its pipeline. The first matching rule wins:
// editor export, audio-only input, the cheap video path when nothing needs
// the full method, then the full method.
func SelectStrategy(class Classification, opts JobOptions) StrategyChoice {
	if opts.ExportPremiere {
		return StrategyPremiereExport
	}
	if class == ClassAudio {
		return StrategyAudioFast
	}
	if opts.BackgroundMusic == "" && opts.CutByThisAudio == "" && !opts.WantsZoom() {
		return StrategyVideoFast
	}
	return StrategyOriginalFull
}
