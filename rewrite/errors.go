// errors.go — sentinel errors for rewrite application and ECC ingestion
// (spec §7).
package rewrite

import "errors"

// ErrInvalidReplacement is returned by ApplyRewrite when a replacement
// circuit's boundary signature (port count, order, or type) does not match
// the subcircuit it is meant to replace.
var ErrInvalidReplacement = errors.New("rewrite: replacement boundary does not match subcircuit")

// ErrUnknownOpstr is returned by DecodeECCJSON when a circuit entry names a
// gate string outside the closed recognised set (spec §6).
var ErrUnknownOpstr = errors.New("rewrite: unknown opstr in ECC JSON")

// ErrUnknownWire is returned by DecodeECCJSON when a gate entry references
// a quartz wire identifier that was never produced by an earlier entry or
// by the circuit's own inputs.
var ErrUnknownWire = errors.New("rewrite: unknown wire identifier in ECC JSON")

// ErrMalformedECC is returned by DecodeECCJSON for any other structurally
// invalid document (wrong top-level shape, mismatched input/output arity).
var ErrMalformedECC = errors.New("rewrite: malformed ECC JSON")
