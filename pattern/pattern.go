package pattern

import (
	"sort"

	"github.com/qcopt/taso/core"
)

// Edge is one pattern-internal link, used by the line decomposition: the
// scope automaton consumes edges one at a time along a Line.
type Edge struct {
	Src core.Port // DirOut side
	Dst core.Port // DirIn side
}

// Line is a maximal directed path of pattern-internal edges: consecutive
// edges where one edge's Dst node is the next edge's Src node.
type Line []Edge

// Pattern is a small circuit compiled into the line-decomposed matching form
// (spec §3/§4.2). It owns its source circuit and is immutable once built.
type Pattern struct {
	source *core.Circuit

	inputNode  core.NodeID
	outputNode core.NodeID
	root       core.NodeID

	// inputs/outputs name the non-boundary (pattern, port) pairs directly
	// fed by / feeding the Input/Output markers — the ports exposed to
	// matching. Each port carries exactly one wire in this port model, so
	// there is no further "one group per wire" grouping to perform.
	inputs  []core.Port
	outputs []core.Port

	lines []Line
}

// Source returns the pattern's owned circuit.
func (p *Pattern) Source() *core.Circuit { return p.source }

// Root returns the pattern node used to anchor candidate match attempts.
func (p *Pattern) Root() core.NodeID { return p.root }

// Inputs returns the non-boundary ports directly connected to the pattern's
// Input marker, in a fixed order.
func (p *Pattern) Inputs() []core.Port { return p.inputs }

// Outputs returns the non-boundary ports directly connected to the
// pattern's Output marker, in a fixed order.
func (p *Pattern) Outputs() []core.Port { return p.outputs }

// Lines returns the pattern's line decomposition.
func (p *Pattern) Lines() []Line { return p.lines }

// NumNonBoundaryNodes returns the count of gate nodes excluding the
// Input/Output structural markers.
func (p *Pattern) NumNonBoundaryNodes() int {
	n := 0
	for _, id := range p.source.Topology() {
		if !p.source.Kind(id).IsBoundary() {
			n++
		}
	}
	return n
}

// TryFromCircuit compiles c into a Pattern. c must already be frozen (see
// core.Builder.Freeze) and must carry exactly one Input and one Output
// marker node (spec §4.2 construction preconditions):
//
//   - (i) at least one non-boundary gate node, else ErrEmptyPattern;
//   - (ii) every non-boundary node reachable from the inputs and
//     co-reachable to the outputs, else ErrNotConnected;
//   - (iii) the degree-derived root heuristic yields a unique choice,
//     ties broken by topological order.
func TryFromCircuit(c *core.Circuit) (*Pattern, error) {
	var inputNode, outputNode core.NodeID
	haveIn, haveOut := false, false
	for _, id := range c.Topology() {
		switch c.Kind(id) {
		case core.GateInput:
			inputNode, haveIn = id, true
		case core.GateOutput:
			outputNode, haveOut = id, true
		}
	}

	var nonBoundary []core.NodeID
	for _, id := range c.Topology() {
		if !c.Kind(id).IsBoundary() {
			nonBoundary = append(nonBoundary, id)
		}
	}
	if len(nonBoundary) == 0 {
		return nil, ErrEmptyPattern
	}

	if haveIn || haveOut {
		var fwdSeeds, bwdSeeds []core.NodeID
		if haveIn {
			fwdSeeds = []core.NodeID{inputNode}
		} else {
			fwdSeeds = nonBoundary // nothing upstream to require reachability from
		}
		if haveOut {
			bwdSeeds = []core.NodeID{outputNode}
		} else {
			bwdSeeds = nonBoundary
		}
		fwd := reachableForward(c, fwdSeeds)
		bwd := reachableBackward(c, bwdSeeds)
		for _, id := range nonBoundary {
			if !fwd[id] || !bwd[id] {
				return nil, ErrNotConnected
			}
		}
	}

	topoIndex := make(map[core.NodeID]int, len(c.Topology()))
	for i, id := range c.Topology() {
		topoIndex[id] = i
	}

	root := nonBoundary[0]
	rootDeg := degree(c, root)
	for _, id := range nonBoundary[1:] {
		d := degree(c, id)
		if d > rootDeg || (d == rootDeg && topoIndex[id] < topoIndex[root]) {
			root, rootDeg = id, d
		}
	}

	var inputs, outputs []core.Port
	if haveIn {
		for _, p := range c.Ports(inputNode, core.DirOut) {
			if dst, ok := c.LinkedPort(p); ok {
				inputs = append(inputs, dst)
			}
		}
	}
	if haveOut {
		for _, p := range c.Ports(outputNode, core.DirIn) {
			if src, ok := c.LinkedPort(p); ok {
				outputs = append(outputs, src)
			}
		}
	}

	lines := decomposeLines(c, topoIndex, inputNode, outputNode, haveIn, haveOut)

	return &Pattern{
		source:     c,
		inputNode:  inputNode,
		outputNode: outputNode,
		root:       root,
		inputs:     inputs,
		outputs:    outputs,
		lines:      lines,
	}, nil
}

func degree(c *core.Circuit, id core.NodeID) int {
	return c.NumPorts(id, core.DirIn) + c.NumPorts(id, core.DirOut)
}

func reachableForward(c *core.Circuit, seeds []core.NodeID) map[core.NodeID]bool {
	seen := make(map[core.NodeID]bool, c.NumNodes())
	queue := append([]core.NodeID(nil), seeds...)
	for _, id := range seeds {
		seen[id] = true
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, p := range c.Ports(id, core.DirOut) {
			dst, ok := c.LinkedPort(p)
			if !ok || seen[dst.Node] {
				continue
			}
			seen[dst.Node] = true
			queue = append(queue, dst.Node)
		}
	}
	return seen
}

func reachableBackward(c *core.Circuit, seeds []core.NodeID) map[core.NodeID]bool {
	seen := make(map[core.NodeID]bool, c.NumNodes())
	queue := append([]core.NodeID(nil), seeds...)
	for _, id := range seeds {
		seen[id] = true
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, p := range c.Ports(id, core.DirIn) {
			src, ok := c.LinkedPort(p)
			if !ok || seen[src.Node] {
				continue
			}
			seen[src.Node] = true
			queue = append(queue, src.Node)
		}
	}
	return seen
}

// decomposeLines partitions every pattern-internal edge (an edge with
// neither endpoint at a boundary marker) into maximal directed paths, by
// greedily chaining an edge onto a line whose last edge ends at this
// edge's source (every line ending at a node is kept open there, so a node
// with two incoming and two outgoing edges continues both lines). Edges
// are visited in (topological index, port index)
// order so the result is deterministic for a given pattern.
func decomposeLines(c *core.Circuit, topoIndex map[core.NodeID]int, inputNode, outputNode core.NodeID, haveIn, haveOut bool) []Line {
	var edges []Edge
	for _, id := range c.Topology() {
		if haveIn && id == inputNode {
			continue
		}
		if haveOut && id == outputNode {
			continue
		}
		for _, p := range c.Ports(id, core.DirOut) {
			dst, ok := c.LinkedPort(p)
			if !ok {
				continue
			}
			if (haveIn && dst.Node == inputNode) || (haveOut && dst.Node == outputNode) {
				continue
			}
			edges = append(edges, Edge{Src: p, Dst: dst})
		}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		ii, jj := topoIndex[edges[i].Src.Node], topoIndex[edges[j].Src.Node]
		if ii != jj {
			return ii < jj
		}
		return edges[i].Src.Index < edges[j].Src.Index
	})

	var lines []Line
	openEnd := make(map[core.NodeID][]int) // node -> indices into lines ending there, awaiting continuation
	for _, e := range edges {
		if pending := openEnd[e.Src.Node]; len(pending) > 0 {
			li := pending[0]
			lines[li] = append(lines[li], e)
			openEnd[e.Src.Node] = pending[1:]
			openEnd[e.Dst.Node] = append(openEnd[e.Dst.Node], li)
			continue
		}
		lines = append(lines, Line{e})
		openEnd[e.Dst.Node] = append(openEnd[e.Dst.Node], len(lines)-1)
	}
	return lines
}
