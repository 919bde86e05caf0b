package taso

import "errors"

// ErrAllWorkersGone is returned by Run (multi-threaded mode) when every
// worker goroutine has exited — typically because all of them panicked —
// leaving nothing to drain the work queue (spec §7 "Driver: AllWorkersGone").
var ErrAllWorkersGone = errors.New("taso: all workers gone")

// ErrNilCostFunc is returned by Run when cost is nil.
var ErrNilCostFunc = errors.New("taso: cost function is nil")

// ErrNilRewriter is returned by Run when rewriter is nil.
var ErrNilRewriter = errors.New("taso: rewriter is nil")

// ErrNilHost is returned by Run when the initial circuit is nil.
var ErrNilHost = errors.New("taso: host circuit is nil")

// ErrNilStrategy is returned by Run when strategy is nil.
var ErrNilStrategy = errors.New("taso: strategy is nil")
