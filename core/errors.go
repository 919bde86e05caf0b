// errors.go — sentinel errors for the core package.
//
// Error policy (matches the teacher's builder/errors.go convention):
//   - Only sentinel package-level vars are exposed.
//   - Callers use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are never wrapped with formatted strings at definition site;
//     call sites attach context with fmt.Errorf("...: %w", ErrX).
//   - Node-not-found on a removed index is a programming error per spec
//     §4.1, not a recoverable failure: those paths panic rather than
//     returning one of these sentinels.
package core

import "errors"

// ErrFrozen is returned by any mutating Builder method called after Freeze.
var ErrFrozen = errors.New("core: circuit already frozen")

// ErrNotFrozen names a read of a circuit still under construction. No
// current operation returns it: a Circuit value only exists once Freeze has
// succeeded, so its reads (topological order, hashing) cannot meet an
// unfrozen one.
var ErrNotFrozen = errors.New("core: circuit not frozen")

// ErrPortTypeMismatch is returned by Link when the two ports being linked
// carry different PortType values.
var ErrPortTypeMismatch = errors.New("core: port type mismatch")

// ErrPortDirectionMismatch is returned by Link when both ports are on the
// same side (both incoming or both outgoing).
var ErrPortDirectionMismatch = errors.New("core: port direction mismatch")

// ErrPortAlreadyLinked is returned by Link when one of the two ports already
// has a link (each port links to exactly one other port).
var ErrPortAlreadyLinked = errors.New("core: port already linked")

// ErrCyclic is returned by Freeze when the circuit's edges contain a cycle.
var ErrCyclic = errors.New("core: circuit is cyclic")

// ErrDanglingPort is returned by Freeze when a non-boundary port has no
// link (every port must be linked except GateInput's outputs and
// GateOutput's inputs, which is what makes them boundary markers).
var ErrDanglingPort = errors.New("core: dangling port on non-boundary node")
