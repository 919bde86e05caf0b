package taso

import (
	"context"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/rewrite"
)

// CostFunc maps a circuit to the scalar cost the search minimises
// (spec §4.5's K : circuit -> usize, "typically the count of two-qubit
// gates"). Must be pure and safe to call from multiple goroutines
// concurrently (spec §5 "The cost function K must be callable from
// multiple threads").
type CostFunc func(*core.Circuit) int

// Run searches for a low-cost circuit reachable from c0 by repeated
// rewrites (spec §4.5, C5). It dispatches to a single-threaded loop when
// Config.NumThreads == 1, or an N-worker-plus-coordinator loop otherwise;
// ctx cancellation is honoured the same way a Config.Timeout deadline is.
func Run(ctx context.Context, c0 *core.Circuit, rewriter rewrite.Rewriter, strategy rewrite.Strategy, cost CostFunc, opts ...Option) (Result, error) {
	if c0 == nil {
		return Result{}, ErrNilHost
	}
	if rewriter == nil {
		return Result{}, ErrNilRewriter
	}
	if strategy == nil {
		return Result{}, ErrNilStrategy
	}
	if cost == nil {
		return Result{}, ErrNilCostFunc
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.NumThreads <= 1 {
		return runSingle(ctx, c0, rewriter, strategy, cost, cfg)
	}
	return runMultiThreaded(ctx, c0, rewriter, strategy, cost, cfg)
}
