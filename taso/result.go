package taso

import (
	"time"

	"github.com/google/uuid"

	"github.com/qcopt/taso/core"
)

// Result is what Run returns: the best circuit found and bookkeeping about
// the run that found it (spec §6 "Outputs... Final optimised circuit").
type Result struct {
	// RunID stamps this run, threaded through every log line and
	// result-store row so concurrent runs against a shared sink stay
	// distinguishable. CSV rows do not carry it (their schema is
	// circ_len, time).
	RunID uuid.UUID
	// Circuit is the best (lowest-cost) circuit found.
	Circuit *core.Circuit
	// Cost is K(Circuit).
	Cost int
	// TimedOut reports whether the run stopped because of Config.Timeout
	// rather than queue exhaustion.
	TimedOut bool
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
	// SeenCount is the final size of the seen set (spec §8 testable
	// property #6, surfaced for diagnostics).
	SeenCount int
}
