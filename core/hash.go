package core

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
)

// Hash computes a deterministic content hash of c, invariant under
// isomorphism-preserving relabelling of node identities (spec §3/§8:
// hash(c1) == hash(c2) whenever c1, c2 differ only by node re-identification
// but are otherwise structurally and labelling-identical).
//
// The scheme: fold each node's (gate kind, params, port types) together with
// the already-computed hashes of its direct predecessors (topological DP, so
// every node's hash depends only on structure reachable behind it, never on
// its own NodeID). The circuit-level hash is the FNV-1a fold of the sorted
// multiset of per-node hashes, so the result does not depend on iteration
// order either. Collisions are astronomically unlikely for a 64-bit FNV-1a
// output (spec §3's "good non-cryptographic hash" contract); no hashing
// library appears anywhere in the retrieval pack tied to a DAG structure, so
// this uses the standard library (see DESIGN.md).
func (c *Circuit) Hash() uint64 {
	nodeHash := make(map[NodeID]uint64, len(c.nodes))
	for _, id := range c.topo {
		nodeHash[id] = c.structuralNodeHash(id, nodeHash)
	}

	all := make([]uint64, 0, len(nodeHash))
	for _, h := range nodeHash {
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	fold := fnv.New64a()
	buf := make([]byte, 8)
	for _, h := range all {
		binary.LittleEndian.PutUint64(buf, h)
		_, _ = fold.Write(buf)
	}
	return fold.Sum64()
}

func (c *Circuit) structuralNodeHash(id NodeID, nodeHash map[NodeID]uint64) uint64 {
	n := c.mustNode(id)
	h := fnv.New64a()
	buf := make([]byte, 8)

	writeByte := func(b byte) { _, _ = h.Write([]byte{b}) }
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		_, _ = h.Write(buf)
	}
	writeFloat := func(f float64) { writeU64(math.Float64bits(f)) }

	writeByte(byte(n.kind))
	writeU64(uint64(len(n.params)))
	for _, p := range n.params {
		writeFloat(p)
	}
	writeU64(uint64(len(n.inTypes)))
	for _, t := range n.inTypes {
		writeByte(byte(t))
	}
	writeU64(uint64(len(n.outTypes)))
	for _, t := range n.outTypes {
		writeByte(byte(t))
	}

	// Fold predecessor structure: for each incoming port, the hash of the
	// node on the other end plus which of ITS output ports feeds us. Using
	// already-computed (topologically earlier) hashes makes this invariant
	// under relabelling: it never reads a raw NodeID.
	for i, has := range n.inHas {
		writeByte(byte(i))
		if !has {
			writeByte(0xFF) // boundary marker: unlinked input (Output node)
			continue
		}
		src := n.inLinked[i]
		writeU64(nodeHash[src.Node])
		writeU64(uint64(src.Index))
	}
	// Outgoing boundary-ness also participates (an Input node's unlinked
	// outputs are part of its structural identity), but outgoing *linked*
	// targets are deliberately NOT folded here: they would be folded when
	// we process the successor's inLinked entry, and including them here
	// too would double-count without adding discriminating power while
	// making hashing still well-defined (topological DP only requires
	// predecessor-hashes to exist already).
	for i, has := range n.outHas {
		if !has {
			writeByte(byte(i))
			writeByte(0xFE) // boundary marker: unlinked output (Input node)
		}
	}

	return h.Sum64()
}
