package matcher

import "github.com/qcopt/taso/core"

// ConvexChecker answers "is this host node set a convex region?" — every
// directed host path between two members of the set lies entirely within
// it (spec §4.3). It is built once per host and reused across every match
// attempt against that host, since the expensive part (a topological
// position for every host node) only needs computing once.
type ConvexChecker struct {
	host    *core.Circuit
	topoPos map[core.NodeID]int
}

// NewConvexChecker builds a checker for host.
func NewConvexChecker(host *core.Circuit) *ConvexChecker {
	topo := host.Topology()
	pos := make(map[core.NodeID]int, len(topo))
	for i, id := range topo {
		pos[id] = i
	}
	return &ConvexChecker{host: host, topoPos: pos}
}

// IsConvex reports whether nodes forms a convex region of the checker's
// host. Because the host is a DAG walked in topological order, any path
// leaving the region and re-entering it must pass exclusively through
// nodes whose topological position lies strictly within the region's own
// [min, max] span — so the search below prunes anything outside that span.
func (cc *ConvexChecker) IsConvex(nodes map[core.NodeID]bool) bool {
	if len(nodes) == 0 {
		return true
	}
	minPos, maxPos := len(cc.topoPos), -1
	for id := range nodes {
		pos := cc.topoPos[id]
		if pos < minPos {
			minPos = pos
		}
		if pos > maxPos {
			maxPos = pos
		}
	}

	for id := range nodes {
		if cc.leavesAndReenters(id, nodes, maxPos) {
			return false
		}
	}
	return true
}

func (cc *ConvexChecker) leavesAndReenters(start core.NodeID, nodes map[core.NodeID]bool, maxPos int) bool {
	visited := make(map[core.NodeID]bool)
	var stack []core.NodeID
	for _, p := range cc.host.Ports(start, core.DirOut) {
		dst, ok := cc.host.LinkedPort(p)
		if !ok || nodes[dst.Node] {
			continue
		}
		if cc.topoPos[dst.Node] > maxPos {
			continue // cannot re-enter the region's span from beyond it
		}
		stack = append(stack, dst.Node)
	}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[w] {
			continue
		}
		visited[w] = true
		if nodes[w] {
			return true // left the region and came back: not convex
		}
		for _, p := range cc.host.Ports(w, core.DirOut) {
			dst, ok := cc.host.LinkedPort(p)
			if !ok {
				continue
			}
			if cc.topoPos[dst.Node] > maxPos {
				continue
			}
			stack = append(stack, dst.Node)
		}
	}
	return false
}
