package ats

import (
	"context"
	"sync/atomic"

	"github.com/jonathan/resume-builder/internal/types"
)

// Runner guards an Analyzer with a busy flag: while one analysis is outstanding,
// further triggers are rejected with ErrBusy rather than queued.
type Runner struct {
	analyzer Analyzer
	busy     atomic.Bool
}

// NewRunner wraps analyzer.
func NewRunner(analyzer Analyzer) *Runner {
	return &Runner{analyzer: analyzer}
}

// Run starts an analysis unless one is already running.
func (r *Runner) Run(ctx context.Context, req Request) (*types.AnalysisResult, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)
	return r.analyzer.Analyze(ctx, req)
}

// Busy reports whether an analysis is outstanding.
func (r *Runner) Busy() bool {
	return r.busy.Load()
}
