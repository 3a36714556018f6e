package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/logging"
	"github.com/devbush/autoedit/internal/ports"
)

// RunRequest is one batch invocation
type RunRequest struct {
	Inputs  []string // raw references: paths, directories or URLs
	Outputs []string // positional output names, may be shorter than the queue
	Options domain.JobOptions
	NoCache bool
}

// ItemResult records what happened to one queue entry
type ItemResult struct {
	Input    domain.ResolvedInput
	Output   string
	Choice   domain.StrategyChoice
	Err      error
	Duration time.Duration
}

// Failed reports whether the item failed at any stage
func (r ItemResult) Failed() bool {
	return r.Err != nil
}

// RunReport summarizes a batch
type RunReport struct {
	RunID       string
	Items       []ItemResult
	Duration    time.Duration
	FinalOutput string
}

// Succeeded counts items whose strategy returned without error
func (r *RunReport) Succeeded() int {
	n := 0
	for _, item := range r.Items {
		if !item.Failed() {
			n++
		}
	}
	return n
}

// Orchestrator drives a batch: resolve, name, correct, dispatch, report.
type Orchestrator struct {
	fs         afero.Fs
	resolver   *Resolver
	decoder    ports.Decoder
	cache      ports.ProbeCache
	strategies ports.StrategyRunner
	opener     ports.Opener
	log        *logging.Logger

	workParent string
	now        func() time.Time
}

// NewOrchestrator wires the batch pipeline. cache may be nil.
func NewOrchestrator(
	fs afero.Fs,
	resolver *Resolver,
	decoder ports.Decoder,
	cache ports.ProbeCache,
	strategies ports.StrategyRunner,
	opener ports.Opener,
	log *logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		fs:         fs,
		resolver:   resolver,
		decoder:    decoder,
		cache:      cache,
		strategies: strategies,
		opener:     opener,
		log:        log,
		now:        time.Now,
	}
}

// SetWorkParent places the ephemeral work dir under dir instead of the OS temp dir
func (o *Orchestrator) SetWorkParent(dir string) {
	o.workParent = dir
}

func (o *Orchestrator) corrector(noCache bool) *Corrector {
	cache := o.cache
	if noCache {
		cache = nil
	}
	return NewCorrector(o.fs, o.decoder, cache, o.log)
}

func (o *Orchestrator) newWorkDir(runID string) *WorkDir {
	return NewWorkDir(o.fs, o.workParent, "auto-editor-"+runID[:8]+"-")
}

func (o *Orchestrator) release(work *WorkDir) {
	if err := work.Release(); err != nil {
		o.log.Warn("Could not remove work dir %s: %v", work.Path(), err)
	}
}

// Run processes every input in order. Per item failures are recorded in the
// report and do not stop the batch; a returned error means the batch as a
// whole failed (bad input, or the final output never appeared).
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunReport, error) {
	start := o.now()
	report := &RunReport{RunID: uuid.NewString()}

	opts, err := req.Options.Validate()
	if err != nil {
		return report, err
	}

	work := o.newWorkDir(report.RunID)
	defer o.release(work)

	queue, err := o.resolver.Resolve(ctx, req.Inputs)
	if err != nil {
		return report, err
	}
	if opts.CombineFiles {
		if queue, err = o.resolver.Combine(ctx, queue); err != nil {
			return report, err
		}
	}

	paths := make([]string, len(queue))
	for i, in := range queue {
		paths[i] = in.Path
	}
	outputs := domain.FillOutputs(paths, req.Outputs, opts.ExportPremiere)

	if opts.BackgroundMusic == "" && opts.BackgroundVolume != domain.DefaultBackgroundVolume {
		o.log.Warn("Background volume specified, but background music was not provided.")
	}

	corrector := o.corrector(req.NoCache)
	for i, in := range queue {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		o.log.Info("[%d/%d] %s", i+1, len(queue), filepath.Base(in.Path))
		itemStart := o.now()
		item := o.processItem(ctx, corrector, work, in, outputs[i], opts)
		item.Duration = o.now().Sub(itemStart)
		report.Items = append(report.Items, item)
		if item.Choice != "" {
			report.FinalOutput = item.Output
		}
	}

	report.Duration = o.now().Sub(start)
	o.log.Success("Finished.")
	o.log.Info("Took %v seconds (%s)", domain.RoundSeconds(report.Duration), domain.FormatClock(report.Duration))

	if report.FinalOutput == "" {
		return report, fmt.Errorf("%w: no item reached a processing pipeline", domain.ErrOutputMissing)
	}
	exists, err := afero.Exists(o.fs, report.FinalOutput)
	if err != nil || !exists {
		return report, fmt.Errorf("%w: the file %s was not created", domain.ErrOutputMissing, report.FinalOutput)
	}

	if !opts.NoOpen && !opts.ExportPremiere {
		if err := o.opener.Open(report.FinalOutput); err != nil {
			o.log.Warn("Could not open output file: %v", err)
		}
	}

	return report, nil
}

// processItem runs one queue entry. Choice stays empty when the item never
// reached a strategy.
func (o *Orchestrator) processItem(ctx context.Context, corrector *Corrector, work *WorkDir, in domain.ResolvedInput, output string, opts domain.JobOptions) ItemResult {
	item := ItemResult{Input: in, Output: output}
	choice := domain.SelectStrategy(in.Class, opts)

	if choice == domain.StrategyVideoFast || choice == domain.StrategyOriginalFull {
		fixed, err := corrector.Ensure(ctx, in, work)
		if err != nil {
			o.log.Error("%v", err)
			item.Err = err
			return item
		}
		item.Input = fixed
		if fixed.Corrected() {
			o.log.Debug("Using constant frame rate copy %s", fixed.Path)
		}
	}

	o.log.Debug("Strategy %s: %s -> %s", choice, item.Input.Path, output)
	item.Choice = choice
	err := o.strategies.Run(ctx, ports.StrategyRequest{
		Choice:  choice,
		Tool:    o.decoder.Path(),
		Input:   item.Input.Path,
		Output:  output,
		Options: opts,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrStrategyFailure) {
			err = fmt.Errorf("%w: %v", domain.ErrStrategyFailure, err)
		}
		o.log.Error("%v", err)
		item.Err = err
	}
	return item
}

// Preview reports cut statistics for the first resolved input. Nothing is
// written and no output file is expected.
func (o *Orchestrator) Preview(ctx context.Context, req RunRequest) error {
	opts, err := req.Options.Validate()
	if err != nil {
		return err
	}

	queue, err := o.resolver.Resolve(ctx, req.Inputs)
	if err != nil {
		return err
	}
	if len(queue) > 1 {
		o.log.Debug("Preview only reads the first of %d inputs", len(queue))
	}

	return o.strategies.Preview(ctx, ports.StrategyRequest{
		Tool:    o.decoder.Path(),
		Input:   queue[0].Path,
		Options: opts,
	})
}
