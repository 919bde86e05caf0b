package matcher

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/pattern"
)

// Binary (de)serialisation of a Matcher (automaton + patterns). No
// msgpack/protobuf library tied to a graph structure appears anywhere in
// the retrieval pack, so this uses the standard library's encoding/gob
// (documented in DESIGN.md). The wire format: every pattern's source
// circuit is flattened to its nodes in ascending NodeID order, with port
// links re-expressed as indices into that order rather than raw NodeIDs.
// LoadBinary re-adds the nodes in the same order, so a circuit whose IDs a
// single Builder allocated as 1..n comes back with the same NodeIDs, and
// the reloaded matcher's matches (NodeMap included) equal the original's.
// The pattern's root is not stored: TryFromCircuit's root
// heuristic is a pure function of structure, so reconstructing the circuit
// and recompiling the pattern always recovers the same root.

type portSnap struct {
	NodeIdx int
	Index   int
	Dir     uint8
}

type nodeSnap struct {
	Kind     uint8
	Params   []float64
	InTypes  []uint8
	OutTypes []uint8
	InLinked []portSnap
	InHas    []bool
	OutLinked []portSnap
	OutHas    []bool
}

type circuitSnap struct {
	Nodes []nodeSnap
}

type matcherSnap struct {
	Patterns []circuitSnap
}

func circuitToSnap(c *core.Circuit) circuitSnap {
	order := append([]core.NodeID(nil), c.Topology()...)
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	idx := make(map[core.NodeID]int, len(order))
	for i, id := range order {
		idx[id] = i
	}

	nodes := make([]nodeSnap, len(order))
	for i, id := range order {
		nIn := c.NumPorts(id, core.DirIn)
		nOut := c.NumPorts(id, core.DirOut)

		inTypes := make([]uint8, nIn)
		inLinked := make([]portSnap, nIn)
		inHas := make([]bool, nIn)
		for j := 0; j < nIn; j++ {
			inTypes[j] = uint8(c.PortType(id, core.DirIn, j))
			if lp, ok := c.LinkedPort(core.Port{Node: id, Index: j, Dir: core.DirIn}); ok {
				inHas[j] = true
				inLinked[j] = portSnap{NodeIdx: idx[lp.Node], Index: lp.Index, Dir: uint8(lp.Dir)}
			}
		}

		outTypes := make([]uint8, nOut)
		outLinked := make([]portSnap, nOut)
		outHas := make([]bool, nOut)
		for j := 0; j < nOut; j++ {
			outTypes[j] = uint8(c.PortType(id, core.DirOut, j))
			if lp, ok := c.LinkedPort(core.Port{Node: id, Index: j, Dir: core.DirOut}); ok {
				outHas[j] = true
				outLinked[j] = portSnap{NodeIdx: idx[lp.Node], Index: lp.Index, Dir: uint8(lp.Dir)}
			}
		}

		nodes[i] = nodeSnap{
			Kind:      uint8(c.Kind(id)),
			Params:    append([]float64(nil), c.Params(id)...),
			InTypes:   inTypes,
			OutTypes:  outTypes,
			InLinked:  inLinked,
			InHas:     inHas,
			OutLinked: outLinked,
			OutHas:    outHas,
		}
	}
	return circuitSnap{Nodes: nodes}
}

func snapToCircuit(cs circuitSnap) (*core.Circuit, error) {
	b := core.NewBuilder()
	ids := make([]core.NodeID, len(cs.Nodes))
	for i, ns := range cs.Nodes {
		inTypes := make([]core.PortType, len(ns.InTypes))
		for j, t := range ns.InTypes {
			inTypes[j] = core.PortType(t)
		}
		outTypes := make([]core.PortType, len(ns.OutTypes))
		for j, t := range ns.OutTypes {
			outTypes[j] = core.PortType(t)
		}
		id, err := b.AddRawNode(core.GateKind(ns.Kind), ns.Params, inTypes, outTypes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeserialisation, err)
		}
		ids[i] = id
	}

	for i, ns := range cs.Nodes {
		for j, has := range ns.OutHas {
			if !has {
				continue
			}
			lp := ns.OutLinked[j]
			err := b.Link(
				core.Port{Node: ids[i], Index: j, Dir: core.DirOut},
				core.Port{Node: ids[lp.NodeIdx], Index: lp.Index, Dir: core.DirIn},
			)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDeserialisation, err)
			}
		}
	}

	c, err := b.Freeze()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialisation, err)
	}
	return c, nil
}

// SaveBinary serialises m to a stable byte representation. Round-trip
// property: LoadBinary(SaveBinary(m)) behaves identically to m on any host
// (spec §4.3 testable property #5).
func SaveBinary(m *Matcher) ([]byte, error) {
	snap := matcherSnap{Patterns: make([]circuitSnap, len(m.patterns))}
	for i, p := range m.patterns {
		snap.Patterns[i] = circuitToSnap(p.Source())
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialisation, err)
	}
	return buf.Bytes(), nil
}

// LoadBinary reconstructs a Matcher from data produced by SaveBinary.
func LoadBinary(data []byte) (*Matcher, error) {
	var snap matcherSnap
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialisation, err)
	}

	patterns := make([]*pattern.Pattern, len(snap.Patterns))
	for i, cs := range snap.Patterns {
		c, err := snapToCircuit(cs)
		if err != nil {
			return nil, err
		}
		p, err := pattern.TryFromCircuit(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeserialisation, err)
		}
		patterns[i] = p
	}
	return FromPatterns(patterns)
}
