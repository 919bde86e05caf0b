// Package taso implements the best-first priority-queue search driver
// (spec §4.5, C5): given a host circuit, a rewrite.Rewriter, a
// rewrite.Strategy and a cost function, it explores circuits reachable by
// repeated pattern-driven rewrites and returns the cheapest one found
// before its deadline.
//
// Run dispatches to a single-threaded loop or an N-worker-plus-coordinator
// loop depending on Config.NumThreads; both share the same deduplication
// and haircut semantics described in spec §4.5/§5. They differ in
// termination: the single-threaded loop also stops when its queue is
// empty, while the multi-threaded loop stops only on the deadline, ctx
// cancellation or the loss of every worker, and does not detect an
// exhausted search.
package taso
