package rewrite

import "github.com/qcopt/taso/core"

// ExhaustiveStrategy applies every proposed rewrite independently, yielding
// one successor circuit per proposal (spec §4.4, "Strategy... Exhaustive:
// apply every found match"). It does no pruning or ranking; that is the
// search driver's job (package taso).
type ExhaustiveStrategy struct{}

// ApplyRewrites applies each of rewrites to host and returns the resulting
// circuits, in order, for every rewrite that applied cleanly. Per spec §7
// ("a rewrite-application failure aborts that rewrite only, not the run"),
// a single malformed (match, replacement) pair is skipped rather than
// failing the whole batch; Errs collects the skipped rewrites' errors for
// the caller to log, since Strategy itself has no logger.
func (ExhaustiveStrategy) ApplyRewrites(rewrites []RewriteSpec, host *core.Circuit) ([]*core.Circuit, []error) {
	out := make([]*core.Circuit, 0, len(rewrites))
	var errs []error
	for _, rw := range rewrites {
		c, err := ApplyRewrite(host, rw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, c)
	}
	return out, errs
}
