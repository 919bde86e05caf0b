// Package matcher implements the scope automaton (C3): a many-pattern
// matcher that runs every compiled pattern.Pattern against a host
// core.Circuit rooted at each candidate host node, emitting convex,
// dataflow-preserving matches.
//
// The matcher never owns the host; it is parameterised at call time on
// FindMatches (spec §9 "Back-references"). Patterns, by contrast, own their
// source circuits and are built once via package pattern.
package matcher
