// errors.go — sentinel errors for the matcher (spec §4.3, §7).
package matcher

import "errors"

// ErrIncompatiblePattern is returned by FromPatterns when a pattern cannot
// be driven by the scope automaton (not expressible as a line pattern).
var ErrIncompatiblePattern = errors.New("matcher: pattern incompatible with scope automaton")

// ErrIO wraps an underlying I/O failure during SaveBinary/LoadBinary.
var ErrIO = errors.New("matcher: io error")

// ErrSerialisation wraps an encoding failure during SaveBinary.
var ErrSerialisation = errors.New("matcher: serialisation error")

// ErrDeserialisation wraps a decoding failure during LoadBinary.
var ErrDeserialisation = errors.New("matcher: deserialisation error")

// Candidate-match construction failures (spec §4.3/§7). Per the propagation
// policy, only NotConvex is a normal, droppable outcome (FindMatches drops
// it without an error value); errEmptyMatch and errInvalidSubcircuit
// indicate a broken automaton/pattern invariant and are raised as panics
// by FindMatches rather than returned, since by definition they occur only
// after the automaton has already emitted a pattern-id for this root.
// errMatchNotFound is not raised: FindMatches treats a failed
// pattern.GetMatchMap as the automaton not emitting that pattern-id.
var (
	errMatchNotFound    = errors.New("matcher: match not found after automaton emission")
	errEmptyMatch       = errors.New("matcher: empty match")
	errInvalidSubcircuit = errors.New("matcher: invalid subcircuit boundary")
)
