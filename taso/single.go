package taso

import (
	"container/heap"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/rewrite"
)

// runSingle implements spec §4.5's single-threaded loop.
func runSingle(ctx context.Context, c0 *core.Circuit, rewriter rewrite.Rewriter, strategy rewrite.Strategy, cost CostFunc, cfg Config) (Result, error) {
	runID := uuid.New()
	start := time.Now()

	h0 := c0.Hash()
	seen := map[uint64]bool{h0: true}
	pq := &entryHeap{}
	heap.Init(pq)
	best := entry{hash: h0, circuit: c0, cost: cost(c0)}
	heap.Push(pq, best)

	var deadline <-chan time.Time
	if cfg.Timeout > 0 {
		timer := time.NewTimer(cfg.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	timedOut := false

loop:
	for pq.Len() > 0 {
		select {
		case <-deadline:
			timedOut = true
			break loop
		case <-ctx.Done():
			timedOut = true
			break loop
		default:
		}

		cur := heap.Pop(pq).(entry)
		if cur.cost < best.cost {
			best = cur
			recordBest(cfg, runID, best)
		}

		rewrites, err := rewriter.GetRewrites(cur.circuit)
		if err != nil {
			return Result{}, err
		}
		successors, errs := strategy.ApplyRewrites(rewrites, cur.circuit)
		for _, e := range errs {
			cfg.Logger.Printf("run %s: dropped rewrite: %v", runID, e)
		}
		for _, succ := range successors {
			h := succ.Hash()
			if seen[h] {
				continue
			}
			seen[h] = true
			heap.Push(pq, entry{hash: h, circuit: succ, cost: cost(succ)})
		}

		if pq.Len() >= cfg.QueueCapacity {
			haircut(pq, cfg.QueueCapacity/2)
			cfg.Logger.Printf("run %s: haircut: queue size %d", runID, pq.Len())
		}
	}

	cfg.Logger.Printf("run %s: END RESULT: cost=%d", runID, best.cost)
	return Result{
		RunID:     runID,
		Circuit:   best.circuit,
		Cost:      best.cost,
		TimedOut:  timedOut,
		Elapsed:   time.Since(start),
		SeenCount: len(seen),
	}, nil
}

// recordBest logs an improvement and writes it to the CSV/result-store
// sinks, if configured (spec §6 "Optional best-candidate CSV log").
func recordBest(cfg Config, runID uuid.UUID, best entry) {
	now := time.Now()
	cfg.Logger.Printf("run %s: new best cost=%d", runID, best.cost)
	circLen := best.circuit.NumNodes()
	if cfg.CSVSink != nil {
		if err := cfg.CSVSink.Write(circLen, now); err != nil {
			cfg.Logger.Printf("run %s: csv sink write failed: %v", runID, err)
		}
	}
	if cfg.ResultStore != nil {
		if err := cfg.ResultStore.SaveBest(runID.String(), circLen, best.cost, now); err != nil {
			cfg.Logger.Printf("run %s: result store write failed: %v", runID, err)
		}
	}
}
