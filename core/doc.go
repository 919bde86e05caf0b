// Package core is your in-memory substrate for quantum circuits: a directed
// acyclic dataflow graph of gates connected through typed, linked ports.
//
// A Circuit is built once (AddGate/AddBoundary/AddConstLoad/AddRawNode, then
// Link), then Freeze()'d; after that it is
// read-only and safe to share across goroutines. Frozen circuits expose:
//
//   - Nodes in topological order (Topology)
//   - The gate kind of a node (Circuit.Kind)
//   - The linked (node, port) on the other end of a port (Circuit.LinkedPort)
//   - A content hash invariant under node-identity relabelling (Circuit.Hash)
//
// Under the hood this mirrors lvlath's core.Graph: a mutex-guarded adjacency
// structure with an explicit frozen/mutable lifecycle, except the edges here
// are typed port-to-port links rather than weighted vertex pairs, because a
// dataflow circuit's wires are directional and arity matters.
package core
