package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/pattern"
)

// buildHCX builds Input(2) -> H(q0) -> CX(q0,q1) -> Output(2), the S1 host
// and pattern circuit from the spec's worked scenarios.
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

func TestTryFromCircuit_RootIsHighestDegreeNode(t *testing.T) {
	c := buildHCX(t)
	p, err := pattern.TryFromCircuit(c)
	require.NoError(t, err)

	// CX has 2 in + 2 out = 4 ports; H has 1 in + 1 out = 2. CX must win.
	assert.Equal(t, core.GateCX, c.Kind(p.Root()))
}

func TestTryFromCircuit_EmptyPatternRejected(t *testing.T) {
	b := core.NewBuilder()
	_, err := b.AddBoundary(core.GateInput, 0, 0)
	require.NoError(t, err)
	_, err = b.AddBoundary(core.GateOutput, 0, 0)
	require.NoError(t, err)
	c, err := b.Freeze()
	require.NoError(t, err)

	_, err = pattern.TryFromCircuit(c)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)
}

// Note: core.Circuit.Freeze already requires every non-boundary port to be
// linked (ErrDanglingPort) and the whole graph to be acyclic (ErrCyclic), so
// in a frozen circuit with a single Input/Output pair every non-boundary
// node with at least one incoming port is forward-reachable from Input and
// backward-reachable from Output. ErrNotConnected is therefore only
// reachable through nodes with no incoming ports, such as a GateConstLoad
// feeding an Rz angle, which Input cannot reach.

func TestTryFromCircuit_LineDecompositionCoversAllInternalEdges(t *testing.T) {
	c := buildHCX(t)
	p, err := pattern.TryFromCircuit(c)
	require.NoError(t, err)

	total := 0
	for _, l := range p.Lines() {
		total += len(l)
	}
	// Internal edges: H->CX only (Input->H and CX->Output touch boundary
	// markers and are excluded from the line decomposition).
	assert.Equal(t, 1, total)
}

func TestGetMatchMap_S1_BellCircuitMatch(t *testing.T) {
	host := buildHCX(t)
	pat, err := pattern.TryFromCircuit(host) // pattern == host shape
	require.NoError(t, err)

	m, ok := pat.GetMatchMap(pat.Root(), host)
	require.True(t, ok)
	assert.Equal(t, pat.Root(), m[pat.Root()])
	assert.Len(t, m, pat.NumNonBoundaryNodes())
}

func TestGetMatchMap_S2_NoMatch(t *testing.T) {
	// Host: two independent CX gates on disjoint wire pairs.
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

	hcx := buildHCX(t) // pattern with an H preceding the CX: no H exists in host
	pat, err := pattern.TryFromCircuit(hcx)
	require.NoError(t, err)

	for _, id := range host.Topology() {
		if host.Kind(id) != core.GateCX {
			continue
		}
		_, ok := pat.GetMatchMap(id, host)
		assert.False(t, ok, "CX root in host has no preceding H, so the H-CX pattern must not match")
	}
}
