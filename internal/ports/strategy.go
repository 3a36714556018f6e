package ports

import (
	"context"

	"github.com/devbush/autoedit/internal/domain"
)

// StrategyRequest is everything a processing pipeline receives for one input
type StrategyRequest struct {
	Choice  domain.StrategyChoice
	Tool    string // decoder binary path
	Input   string
	Output  string
	Options domain.JobOptions
}

// StrategyRunner invokes the external processing pipelines. The orchestrator
// never inspects their internals, only whether the output file appears.
type StrategyRunner interface {
	// Run executes the pipeline named by req.Choice.
	Run(ctx context.Context, req StrategyRequest) error

	// Preview reports how input would be cut, without writing media.
	Preview(ctx context.Context, req StrategyRequest) error
}
