package pattern

import "github.com/qcopt/taso/core"

// GetMatchMap attempts to reconstruct the full pattern-to-host node mapping
// given that p.Root() aligns with rootInHost, returning ok=false if at any
// step the required edge in the host does not exist or carries a
// non-matching gate kind or port type (spec §4.2).
//
// Grounded on the original tket2 PatternMatcher.match_from: a DFS stack
// walks both graphs in lock-step, port by port, stopping the moment a
// pattern edge crosses the pattern's own Input/Output boundary rather than
// requiring the host to have a corresponding node there.
func (p *Pattern) GetMatchMap(rootInHost core.NodeID, host *core.Circuit) (map[core.NodeID]core.NodeID, bool) {
	matched := make(map[core.NodeID]core.NodeID)

	type frame struct {
		pat, host core.NodeID
	}
	stack := []frame{{p.root, rootInHost}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if hn, ok := matched[f.pat]; ok {
			if hn != f.host {
				return nil, false
			}
			continue
		}
		if !host.HasNode(f.host) {
			return nil, false
		}
		if p.source.Kind(f.pat) != host.Kind(f.host) {
			return nil, false
		}
		matched[f.pat] = f.host

		for _, dir := range [2]core.Direction{core.DirIn, core.DirOut} {
			np := p.source.NumPorts(f.pat, dir)
			if np != host.NumPorts(f.host, dir) {
				return nil, false
			}
			for idx := 0; idx < np; idx++ {
				if p.source.PortType(f.pat, dir, idx) != host.PortType(f.host, dir, idx) {
					return nil, false
				}

				patLinked, patHas := p.source.LinkedPort(core.Port{Node: f.pat, Index: idx, Dir: dir})
				if !patHas {
					continue
				}
				if patLinked.Node == p.inputNode || patLinked.Node == p.outputNode {
					continue // stop at the pattern's own boundary
				}

				hostLinked, hostHas := host.LinkedPort(core.Port{Node: f.host, Index: idx, Dir: dir})
				if !hostHas {
					return nil, false
				}
				if hostLinked.Dir != patLinked.Dir || hostLinked.Index != patLinked.Index {
					return nil, false
				}

				if existing, ok := matched[patLinked.Node]; ok {
					if existing != hostLinked.Node {
						return nil, false
					}
					continue
				}
				stack = append(stack, frame{patLinked.Node, hostLinked.Node})
			}
		}
	}

	return matched, true
}
