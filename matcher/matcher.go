package matcher

import (
	"fmt"
	"sort"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/pattern"
)

// Match is a (pattern_id, root_in_host, subcircuit_descriptor) triple (spec
// §3). Nodes is the induced, convexity-checked host node set; Inputs and
// Outputs are the host-side boundary ports translated from the pattern's
// own boundary via NodeMap.
type Match struct {
	PatternID  int
	RootInHost core.NodeID
	NodeMap    map[core.NodeID]core.NodeID // pattern node -> host node
	Nodes      map[core.NodeID]bool        // induced host node set
	Inputs     []core.Port                 // host ports
	Outputs    []core.Port                 // host ports
}

// Matcher is the scope automaton: built once from a fixed set of patterns,
// then run against many hosts via FindMatches. It does not own any host.
type Matcher struct {
	patterns []*pattern.Pattern
}

// FromPatterns builds a matcher over patterns. Fails with
// ErrIncompatiblePattern if any pattern is nil (cannot be driven by the
// automaton at all); every pattern produced by pattern.TryFromCircuit is,
// by construction, always line-decomposable (see pattern.decomposeLines),
// so this is the only failure mode reachable through the public API today.
func FromPatterns(patterns []*pattern.Pattern) (*Matcher, error) {
	for i, p := range patterns {
		if p == nil {
			return nil, fmt.Errorf("%w: pattern %d is nil", ErrIncompatiblePattern, i)
		}
	}
	cp := append([]*pattern.Pattern(nil), patterns...)
	return &Matcher{patterns: cp}, nil
}

// NumPatterns returns the number of patterns this matcher was built from.
func (m *Matcher) NumPatterns() int { return len(m.patterns) }

// GetPattern returns the pattern at id, or nil if id is out of range.
func (m *Matcher) GetPattern(id int) *pattern.Pattern {
	if id < 0 || id >= len(m.patterns) {
		return nil
	}
	return m.patterns[id]
}

// FindMatches runs every pattern against host, rooted at every candidate
// host node, and returns every convex match found (spec §4.3).
//
// For each (root, pattern) pair where the root's gate kind agrees with the
// pattern's own root kind — the automaton's node predicate, the cheapest
// possible rejection test — pattern.GetMatchMap attempts the full
// structural reconstruction. A `false` result is an ordinary non-match (the
// automaton simply did not emit this pattern-id for this root) and is
// skipped silently, so MatchNotFound never arises here. Once a match map
// does exist, construction of the PatternMatch may only fail for
// NotConvex, which is dropped; every other failure (EmptyMatch,
// InvalidSubcircuit) means a pattern or automaton invariant was broken
// after emission and panics, per spec §7.
func (m *Matcher) FindMatches(host *core.Circuit) []Match {
	cc := NewConvexChecker(host)
	seen := make(map[string]bool)
	var out []Match

	for _, root := range host.Topology() {
		for pid, p := range m.patterns {
			if host.Kind(root) != p.Source().Kind(p.Root()) {
				continue
			}
			nodeMap, ok := p.GetMatchMap(root, host)
			if !ok {
				continue
			}
			match, dropped := m.buildMatch(pid, root, p, nodeMap, cc)
			if dropped {
				continue
			}
			sig := matchSignature(pid, match.Nodes)
			if seen[sig] {
				continue
			}
			seen[sig] = true
			out = append(out, match)
		}
	}
	return out
}

// buildMatch turns a verified node map into a Match, applying the
// convexity check. dropped reports a benign NotConvex outcome; any other
// structural problem panics (spec §4.3/§7).
func (m *Matcher) buildMatch(pid int, root core.NodeID, p *pattern.Pattern, nodeMap map[core.NodeID]core.NodeID, cc *ConvexChecker) (Match, bool) {
	if len(nodeMap) == 0 {
		panic(errEmptyMatch)
	}
	nodes := make(map[core.NodeID]bool, len(nodeMap))
	for _, hn := range nodeMap {
		nodes[hn] = true
	}
	if !cc.IsConvex(nodes) {
		return Match{}, true // NotConvex: benign, drop
	}

	inputs := make([]core.Port, 0, len(p.Inputs()))
	for _, pp := range p.Inputs() {
		hn, ok := nodeMap[pp.Node]
		if !ok {
			panic(fmt.Errorf("%w: pattern input port references unmatched node", errInvalidSubcircuit))
		}
		inputs = append(inputs, core.Port{Node: hn, Index: pp.Index, Dir: pp.Dir})
	}
	outputs := make([]core.Port, 0, len(p.Outputs()))
	for _, pp := range p.Outputs() {
		hn, ok := nodeMap[pp.Node]
		if !ok {
			panic(fmt.Errorf("%w: pattern output port references unmatched node", errInvalidSubcircuit))
		}
		outputs = append(outputs, core.Port{Node: hn, Index: pp.Index, Dir: pp.Dir})
	}

	return Match{
		PatternID:  pid,
		RootInHost: root,
		NodeMap:    nodeMap,
		Nodes:      nodes,
		Inputs:     inputs,
		Outputs:    outputs,
	}, false
}

func matchSignature(patternID int, nodes map[core.NodeID]bool) string {
	ids := make([]int, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	return fmt.Sprintf("%d:%v", patternID, ids)
}
