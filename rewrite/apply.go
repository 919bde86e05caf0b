package rewrite

import (
	"fmt"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/matcher"
)

// RewriteSpec names one concrete rewrite: replace the subcircuit identified
// by Match with Replacement (spec §3/§4.4).
type RewriteSpec struct {
	Match       matcher.Match
	Replacement *core.Circuit
}

// Rewriter proposes rewrites for a host circuit (spec §4.4).
type Rewriter interface {
	GetRewrites(host *core.Circuit) ([]RewriteSpec, error)
}

// Strategy turns a batch of rewrite proposals into successor circuits
// (spec §4.4). The returned error slice names rewrites that individually
// failed to apply (e.g. ErrInvalidReplacement); per spec §7 such a failure
// aborts only that one rewrite, never the whole batch or the search run.
type Strategy interface {
	ApplyRewrites(rewrites []RewriteSpec, host *core.Circuit) ([]*core.Circuit, []error)
}

// ApplyRewrite splices spec.Replacement into host in place of the convex
// subcircuit named by spec.Match, returning a fresh circuit; host is never
// mutated (spec §3 "Rewrite... Application yields a new host circuit; the
// original is not mutated").
//
// spec.Replacement must carry exactly one Input/Output marker pair whose
// port count, order and type agree with match.Inputs/match.Outputs;
// otherwise ErrInvalidReplacement.
func ApplyRewrite(host *core.Circuit, spec RewriteSpec) (*core.Circuit, error) {
	m := spec.Match
	repl := spec.Replacement

	rb, ok := findBoundary(repl)
	if !ok {
		return nil, fmt.Errorf("%w: replacement has no Input/Output marker pair", ErrInvalidReplacement)
	}
	if len(rb.inPorts) != len(m.Inputs) || len(rb.outPorts) != len(m.Outputs) {
		return nil, fmt.Errorf("%w: boundary arity mismatch (inputs %d/%d, outputs %d/%d)",
			ErrInvalidReplacement, len(rb.inPorts), len(m.Inputs), len(rb.outPorts), len(m.Outputs))
	}
	for i, hp := range m.Inputs {
		if host.PortType(hp.Node, hp.Dir, hp.Index) != repl.PortType(rb.inPorts[i].Node, rb.inPorts[i].Dir, rb.inPorts[i].Index) {
			return nil, fmt.Errorf("%w: input %d type mismatch", ErrInvalidReplacement, i)
		}
	}
	for i, hp := range m.Outputs {
		if host.PortType(hp.Node, hp.Dir, hp.Index) != repl.PortType(rb.outPorts[i].Node, rb.outPorts[i].Dir, rb.outPorts[i].Index) {
			return nil, fmt.Errorf("%w: output %d type mismatch", ErrInvalidReplacement, i)
		}
	}

	b := core.NewBuilder()
	remapHost := make(map[core.NodeID]core.NodeID, host.NumNodes()-len(m.Nodes))
	remapRepl := make(map[core.NodeID]core.NodeID, repl.NumNodes()-2)

	for _, id := range host.Topology() {
		if m.Nodes[id] {
			continue
		}
		nid, err := cloneNode(b, host, id)
		if err != nil {
			return nil, err
		}
		remapHost[id] = nid
	}
	for _, id := range repl.Topology() {
		if id == rb.inputNode || id == rb.outputNode {
			continue
		}
		nid, err := cloneNode(b, repl, id)
		if err != nil {
			return nil, err
		}
		remapRepl[id] = nid
	}

	// Host-internal edges fully outside the match: copy directly.
	for _, id := range host.Topology() {
		if m.Nodes[id] {
			continue
		}
		for _, p := range host.Ports(id, core.DirOut) {
			dst, ok := host.LinkedPort(p)
			if !ok || m.Nodes[dst.Node] {
				continue // handled by the boundary-crossing pass below
			}
			if err := b.Link(
				core.Port{Node: remapHost[id], Index: p.Index, Dir: core.DirOut},
				core.Port{Node: remapHost[dst.Node], Index: dst.Index, Dir: core.DirIn},
			); err != nil {
				return nil, err
			}
		}
	}

	// Replacement-internal edges fully outside its own boundary markers.
	for _, id := range repl.Topology() {
		if id == rb.inputNode || id == rb.outputNode {
			continue
		}
		for _, p := range repl.Ports(id, core.DirOut) {
			dst, ok := repl.LinkedPort(p)
			if !ok || dst.Node == rb.outputNode {
				continue
			}
			if err := b.Link(
				core.Port{Node: remapRepl[id], Index: p.Index, Dir: core.DirOut},
				core.Port{Node: remapRepl[dst.Node], Index: dst.Index, Dir: core.DirIn},
			); err != nil {
				return nil, err
			}
		}
	}

	// Boundary crossings: host node upstream of the match -> replacement
	// interior. A replacement wire can run straight from its Input to its
	// Output with no intervening node (e.g. an identity replacement); such
	// a wire never got a remapRepl entry, so splice the host's upstream
	// directly onto the host's downstream of the corresponding output wire
	// instead, and let the outputs pass below skip it.
	passthroughOutput := make(map[int]bool, len(m.Outputs))
	for i, hp := range m.Inputs {
		upstream, ok := host.LinkedPort(hp)
		if !ok {
			return nil, fmt.Errorf("%w: match input %d has no host source", ErrInvalidReplacement, i)
		}
		rp := rb.inPorts[i]
		if rp.Node == rb.outputNode {
			hp2 := m.Outputs[rp.Index]
			downstream, ok := host.LinkedPort(hp2)
			if !ok {
				return nil, fmt.Errorf("%w: match output %d has no host destination", ErrInvalidReplacement, rp.Index)
			}
			if err := b.Link(
				core.Port{Node: remapHost[upstream.Node], Index: upstream.Index, Dir: core.DirOut},
				core.Port{Node: remapHost[downstream.Node], Index: downstream.Index, Dir: core.DirIn},
			); err != nil {
				return nil, err
			}
			passthroughOutput[rp.Index] = true
			continue
		}
		if err := b.Link(
			core.Port{Node: remapHost[upstream.Node], Index: upstream.Index, Dir: core.DirOut},
			core.Port{Node: remapRepl[rp.Node], Index: rp.Index, Dir: core.DirIn},
		); err != nil {
			return nil, err
		}
	}
	// Boundary crossings: replacement interior -> host node downstream of the match.
	for i, hp := range m.Outputs {
		if passthroughOutput[i] {
			continue
		}
		downstream, ok := host.LinkedPort(hp)
		if !ok {
			return nil, fmt.Errorf("%w: match output %d has no host destination", ErrInvalidReplacement, i)
		}
		rp := rb.outPorts[i]
		if err := b.Link(
			core.Port{Node: remapRepl[rp.Node], Index: rp.Index, Dir: core.DirOut},
			core.Port{Node: remapHost[downstream.Node], Index: downstream.Index, Dir: core.DirIn},
		); err != nil {
			return nil, err
		}
	}

	return b.Freeze()
}

func cloneNode(b *core.Builder, c *core.Circuit, id core.NodeID) (core.NodeID, error) {
	nIn := c.NumPorts(id, core.DirIn)
	nOut := c.NumPorts(id, core.DirOut)
	inTypes := make([]core.PortType, nIn)
	for i := range inTypes {
		inTypes[i] = c.PortType(id, core.DirIn, i)
	}
	outTypes := make([]core.PortType, nOut)
	for i := range outTypes {
		outTypes[i] = c.PortType(id, core.DirOut, i)
	}
	return b.AddRawNode(c.Kind(id), c.Params(id), inTypes, outTypes)
}
