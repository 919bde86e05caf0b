package taso

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/rewrite"
)

// workerBatchSize bounds how many items a worker pulls from the work queue
// per PopBatch call, so one slow rewrite batch doesn't starve every other
// worker waiting on the same queue.
const workerBatchSize = 8

// resultBatch is what a worker sends back on the result channel (buffered
// to 2*NumThreads batches, not unbounded: a worker's send waits while the
// buffer is full): every successor it produced from one PopBatch's worth of
// work (spec §4.5 "send the batch of (hash', circuit') results back").
type resultBatch struct {
	results []entry
}

// coordinatorState is shared between the coordinator and every worker
// purely to detect spec §7's AllWorkersGone condition: the last worker to
// exit (normally or via panic) closes allGone exactly once.
type coordinatorState struct {
	workersAlive int32
	allGone      chan struct{}
	allGoneOnce  sync.Once

	// jobsSent/jobsCompleted are progress counters, not a termination
	// signal: per spec §9 Open Question §9.1 a production driver could use
	// jobsSent==jobsCompleted (with an empty work queue) as an early-quiescence
	// check, but this implementation only surfaces them in the log.
	jobsSent      int64
	jobsCompleted int64
}

func (s *coordinatorState) workerExited() {
	if atomic.AddInt32(&s.workersAlive, -1) == 0 {
		s.allGoneOnce.Do(func() { close(s.allGone) })
	}
}

// runMultiThreaded implements spec §4.5's multi-threaded loop: N workers
// and one coordinator exchanging batches over a bounded work queue and a
// result channel buffered to 2*NumThreads batches. It returns only on the
// deadline, ctx cancellation or the loss of every worker; an exhausted
// search (empty work queue, idle workers) does not end the loop.
func runMultiThreaded(ctx context.Context, c0 *core.Circuit, rewriter rewrite.Rewriter, strategy rewrite.Strategy, cost CostFunc, cfg Config) (Result, error) {
	runID := uuid.New()
	start := time.Now()

	h0 := c0.Hash()
	seen := map[uint64]bool{h0: true}
	best := entry{hash: h0, circuit: c0, cost: cost(c0)}

	wq := newWorkQueue(cfg.QueueCapacity * cfg.NumThreads)
	resultCh := make(chan resultBatch, cfg.NumThreads*2)
	wq.Push([]entry{best})

	state := &coordinatorState{workersAlive: int32(cfg.NumThreads), allGone: make(chan struct{})}
	atomic.AddInt64(&state.jobsSent, 1)
	var wg sync.WaitGroup
	for i := 0; i < cfg.NumThreads; i++ {
		wg.Add(1)
		go worker(wq, resultCh, rewriter, strategy, cost, cfg, runID, state, &wg)
	}

	var deadline <-chan time.Time
	if cfg.Timeout > 0 {
		timer := time.NewTimer(cfg.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	timedOut := false
	allWorkersGone := false

loop:
	for {
		select {
		case b := <-resultCh:
			var fresh []entry
			for _, e := range b.results {
				if e.cost < best.cost {
					best = e
					recordBest(cfg, runID, best)
				}
				if !seen[e.hash] {
					seen[e.hash] = true
					fresh = append(fresh, e)
				}
			}
			if len(fresh) > 0 {
				atomic.AddInt64(&state.jobsSent, int64(len(fresh)))
				wq.Push(fresh)
			}
		case <-deadline:
			timedOut = true
			break loop
		case <-ctx.Done():
			timedOut = true
			break loop
		case <-state.allGone:
			allWorkersGone = true
			break loop
		}
	}

	// Keep draining resultCh while workers wind down: a worker blocked on
	// PopBatch's Close-triggered wakeup may still be mid-send on resultCh,
	// and the coordinator must not stop consuming before wg.Wait() returns
	// or that send would block forever.
	wq.Close()
	workersDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(workersDone)
	}()
drain:
	for {
		select {
		case b := <-resultCh:
			for _, e := range b.results {
				if e.cost < best.cost {
					best = e
					recordBest(cfg, runID, best)
				}
			}
		case <-workersDone:
			break drain
		}
	}
	// One more non-blocking pass: a send racing the workersDone close may
	// have landed in resultCh's buffer after the select above already took
	// that branch.
final:
	for {
		select {
		case b := <-resultCh:
			for _, e := range b.results {
				if e.cost < best.cost {
					best = e
					recordBest(cfg, runID, best)
				}
			}
		default:
			break final
		}
	}

	cfg.Logger.Printf("run %s: END RESULT: cost=%d jobs_sent=%d jobs_completed=%d", runID, best.cost,
		atomic.LoadInt64(&state.jobsSent), atomic.LoadInt64(&state.jobsCompleted))
	result := Result{
		RunID:     runID,
		Circuit:   best.circuit,
		Cost:      best.cost,
		TimedOut:  timedOut,
		Elapsed:   time.Since(start),
		SeenCount: len(seen),
	}
	if allWorkersGone {
		cfg.Logger.Printf("run %s: all workers gone", runID)
		return result, ErrAllWorkersGone
	}
	return result, nil
}

// worker repeatedly pulls a batch of (hash, circuit) items from wq,
// computes each one's rewrites and successors, and sends the produced
// successors back on resultCh (spec §4.5 "A worker repeatedly: receive a
// batch... send the batch of results back"). Workers perform no
// deduplication; the coordinator owns the authoritative seen set.
func worker(wq *workQueue, resultCh chan<- resultBatch, rewriter rewrite.Rewriter, strategy rewrite.Strategy, cost CostFunc, cfg Config, runID uuid.UUID, state *coordinatorState, wg *sync.WaitGroup) {
	defer func() {
		if r := recover(); r != nil {
			cfg.Logger.Printf("run %s: worker panicked: %v", runID, r)
		}
		state.workerExited()
		wg.Done()
	}()

	for {
		items, ok := wq.PopBatch(workerBatchSize)
		if !ok {
			return
		}
		var produced []entry
		for _, it := range items {
			rewrites, err := rewriter.GetRewrites(it.circuit)
			if err != nil {
				continue
			}
			successors, _ := strategy.ApplyRewrites(rewrites, it.circuit)
			for _, succ := range successors {
				h := succ.Hash()
				produced = append(produced, entry{hash: h, circuit: succ, cost: cost(succ)})
			}
			atomic.AddInt64(&state.jobsCompleted, 1)
		}
		resultCh <- resultBatch{results: produced}
	}
}
