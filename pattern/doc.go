// Package pattern compiles a small owned circuit into the line-decomposed
// matching form consumed by package matcher (C2 in the design: "a small
// circuit compiled into a line-decomposed matching form plus a boundary
// descriptor").
//
// A Pattern owns its source circuit (built via core.Builder, frozen with
// core.Circuit.Freeze) and is never mutated after construction, mirroring
// the teacher's frozen-DAG lifecycle in package core.
package pattern
