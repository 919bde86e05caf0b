package rewrite

import "github.com/qcopt/taso/core"

// circuitBoundary locates a circuit's single Input/Output marker pair and
// the interior ports they connect directly to, in port order. Used both by
// ApplyRewrite (to validate and splice a replacement) and conceptually
// mirrors pattern.Pattern's own Inputs()/Outputs() computation — duplicated
// here in miniature because a bare replacement core.Circuit (not yet
// compiled into a pattern.Pattern) is all ApplyRewrite has to work with.
type circuitBoundary struct {
	inputNode  core.NodeID
	outputNode core.NodeID
	inPorts    []core.Port // interior ports fed directly by Input, in wire order
	outPorts   []core.Port // interior ports feeding directly into Output, in wire order
}

func findBoundary(c *core.Circuit) (circuitBoundary, bool) {
	var b circuitBoundary
	haveIn, haveOut := false, false
	for _, id := range c.Topology() {
		switch c.Kind(id) {
		case core.GateInput:
			b.inputNode, haveIn = id, true
		case core.GateOutput:
			b.outputNode, haveOut = id, true
		}
	}
	if !haveIn || !haveOut {
		return circuitBoundary{}, false
	}
	for _, p := range c.Ports(b.inputNode, core.DirOut) {
		if dst, ok := c.LinkedPort(p); ok {
			b.inPorts = append(b.inPorts, dst)
		}
	}
	for _, p := range c.Ports(b.outputNode, core.DirIn) {
		if src, ok := c.LinkedPort(p); ok {
			b.outPorts = append(b.outPorts, src)
		}
	}
	return b, true
}
