package matcher_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/matcher"
	"github.com/qcopt/taso/pattern"
)

// buildHCX builds Input(2) -> H(q0) -> CX(q0,q1) -> Output(2) (S1).
func buildHCX(t *testing.T) *core.Circuit {
	t.Helper()
	b := core.NewBuilder()
	in, err := b.AddBoundary(core.GateInput, 2, 0)
	require.NoError(t, err)
	out, err := b.AddBoundary(core.GateOutput, 2, 0)
	require.NoError(t, err)
	h, err := b.AddGate(core.GateH)
	require.NoError(t, err)
	cx, err := b.AddGate(core.GateCX)
	require.NoError(t, err)

	require.NoError(t, b.Link(core.Port{Node: in, Index: 0, Dir: core.DirOut}, core.Port{Node: h, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: h, Index: 0, Dir: core.DirOut}, core.Port{Node: cx, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: in, Index: 1, Dir: core.DirOut}, core.Port{Node: cx, Index: 1, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx, Index: 0, Dir: core.DirOut}, core.Port{Node: out, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx, Index: 1, Dir: core.DirOut}, core.Port{Node: out, Index: 1, Dir: core.DirIn}))

	c, err := b.Freeze()
	require.NoError(t, err)
	return c
}

// buildChain builds Input(2) -> H(q0) -> [CX(q0,q1) -> H(q0)] x n -> Output(2),
// threading q1 straight through each CX in sequence. n=1 is the S3 pattern
// (H-CX-H); n=3 is the S3 host (H-CX-H-CX-H-CX-H).
func buildChain(t *testing.T, n int) *core.Circuit {
	t.Helper()
	b := core.NewBuilder()
	in, err := b.AddBoundary(core.GateInput, 2, 0)
	require.NoError(t, err)
	out, err := b.AddBoundary(core.GateOutput, 2, 0)
	require.NoError(t, err)

	q0Src := core.Port{Node: in, Index: 0, Dir: core.DirOut}
	q1Src := core.Port{Node: in, Index: 1, Dir: core.DirOut}

	for i := 0; i < n; i++ {
		h1, err := b.AddGate(core.GateH)
		require.NoError(t, err)
		require.NoError(t, b.Link(q0Src, core.Port{Node: h1, Index: 0, Dir: core.DirIn}))
		q0Src = core.Port{Node: h1, Index: 0, Dir: core.DirOut}

		cx, err := b.AddGate(core.GateCX)
		require.NoError(t, err)
		require.NoError(t, b.Link(q0Src, core.Port{Node: cx, Index: 0, Dir: core.DirIn}))
		require.NoError(t, b.Link(q1Src, core.Port{Node: cx, Index: 1, Dir: core.DirIn}))
		q0Src = core.Port{Node: cx, Index: 0, Dir: core.DirOut}
		q1Src = core.Port{Node: cx, Index: 1, Dir: core.DirOut}
	}

	hLast, err := b.AddGate(core.GateH)
	require.NoError(t, err)
	require.NoError(t, b.Link(q0Src, core.Port{Node: hLast, Index: 0, Dir: core.DirIn}))
	q0Src = core.Port{Node: hLast, Index: 0, Dir: core.DirOut}

	require.NoError(t, b.Link(q0Src, core.Port{Node: out, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(q1Src, core.Port{Node: out, Index: 1, Dir: core.DirIn}))

	c, err := b.Freeze()
	require.NoError(t, err)
	return c
}

func TestFindMatches_S1_BellCircuitMatch(t *testing.T) {
	host := buildHCX(t)
	p, err := pattern.TryFromCircuit(host)
	require.NoError(t, err)
	m, err := matcher.FromPatterns([]*pattern.Pattern{p})
	require.NoError(t, err)

	matches := m.FindMatches(host)
	require.Len(t, matches, 1)
	assert.Equal(t, core.GateCX, host.Kind(matches[0].RootInHost))
}

func TestFindMatches_S2_NoMatch(t *testing.T) {
	// Two independent CX gates, no H anywhere: the H-CX pattern can't embed.
	b := core.NewBuilder()
	in, err := b.AddBoundary(core.GateInput, 4, 0)
	require.NoError(t, err)
	out, err := b.AddBoundary(core.GateOutput, 4, 0)
	require.NoError(t, err)
	cx1, err := b.AddGate(core.GateCX)
	require.NoError(t, err)
	cx2, err := b.AddGate(core.GateCX)
	require.NoError(t, err)
	require.NoError(t, b.Link(core.Port{Node: in, Index: 0, Dir: core.DirOut}, core.Port{Node: cx1, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: in, Index: 1, Dir: core.DirOut}, core.Port{Node: cx1, Index: 1, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: in, Index: 2, Dir: core.DirOut}, core.Port{Node: cx2, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: in, Index: 3, Dir: core.DirOut}, core.Port{Node: cx2, Index: 1, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx1, Index: 0, Dir: core.DirOut}, core.Port{Node: out, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx1, Index: 1, Dir: core.DirOut}, core.Port{Node: out, Index: 1, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx2, Index: 0, Dir: core.DirOut}, core.Port{Node: out, Index: 2, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx2, Index: 1, Dir: core.DirOut}, core.Port{Node: out, Index: 3, Dir: core.DirIn}))
	host, err := b.Freeze()
	require.NoError(t, err)

	hcx := buildHCX(t)
	p, err := pattern.TryFromCircuit(hcx)
	require.NoError(t, err)
	m, err := matcher.FromPatterns([]*pattern.Pattern{p})
	require.NoError(t, err)

	assert.Empty(t, m.FindMatches(host))
}

func TestFindMatches_S3_MultipleMatches(t *testing.T) {
	host := buildChain(t, 3)
	patCircuit := buildChain(t, 1)
	p, err := pattern.TryFromCircuit(patCircuit)
	require.NoError(t, err)
	m, err := matcher.FromPatterns([]*pattern.Pattern{p})
	require.NoError(t, err)

	matches := m.FindMatches(host)
	require.Len(t, matches, 3)

	seen := make(map[string]bool)
	for _, match := range matches {
		ids := make([]int, 0, len(match.Nodes))
		for id := range match.Nodes {
			ids = append(ids, int(id))
		}
		sort.Ints(ids)
		key := fmt.Sprint(ids)
		assert.False(t, seen[key], "no two matches should share the exact same node set")
		seen[key] = true
	}
}

func TestFindMatches_Soundness(t *testing.T) {
	host := buildChain(t, 3)
	patCircuit := buildChain(t, 1)
	p, err := pattern.TryFromCircuit(patCircuit)
	require.NoError(t, err)
	m, err := matcher.FromPatterns([]*pattern.Pattern{p})
	require.NoError(t, err)

	cc := matcher.NewConvexChecker(host)
	for _, match := range m.FindMatches(host) {
		_, ok := p.GetMatchMap(match.RootInHost, host)
		assert.True(t, ok)
		assert.True(t, cc.IsConvex(match.Nodes))
	}
}

func TestSaveLoadBinary_RoundTrip(t *testing.T) {
	host := buildHCX(t)
	p, err := pattern.TryFromCircuit(host)
	require.NoError(t, err)
	m, err := matcher.FromPatterns([]*pattern.Pattern{p})
	require.NoError(t, err)

	data, err := matcher.SaveBinary(m)
	require.NoError(t, err)

	m2, err := matcher.LoadBinary(data)
	require.NoError(t, err)
	require.Equal(t, m.NumPatterns(), m2.NumPatterns())

	data2, err := matcher.SaveBinary(m2)
	require.NoError(t, err)
	assert.Equal(t, data, data2, "save(load(save(m))) must equal save(m)")

	assert.Equal(t, m.FindMatches(host), m2.FindMatches(host))
}
