// errors.go — sentinel errors for pattern construction (spec §4.2, §7).
package pattern

import "errors"

// ErrEmptyPattern is returned by TryFromCircuit when the source circuit has
// no non-boundary gate node.
var ErrEmptyPattern = errors.New("pattern: no non-boundary gate node")

// ErrNotConnected is returned by TryFromCircuit when some non-boundary node
// is not both reachable from the inputs and co-reachable to the outputs.
var ErrNotConnected = errors.New("pattern: not connected")

// ErrIncompatiblePattern names a pattern whose internal edges cannot be
// partitioned into a line decomposition the automaton can drive. No
// current code path returns it: decomposeLines accepts every pattern
// TryFromCircuit builds (one with no internal edges, such as a single gate,
// gets an empty decomposition), and matcher.FromPatterns reports its own
// matcher.ErrIncompatiblePattern.
var ErrIncompatiblePattern = errors.New("pattern: not expressible as a line pattern")
