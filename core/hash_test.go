package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcopt/taso/core"
)

// buildBellReordered builds the same Bell circuit as buildBell but allocates
// nodes in a different order (Output, CX, H, Input instead of Input, Output,
// H, CX), so every NodeID differs from buildBell's while the structure is
// identical. Used to exercise relabelling-invariance of Circuit.Hash.
func buildBellReordered(t *testing.T) *core.Circuit {
	t.Helper()
	b := core.NewBuilder()

	out, err := b.AddBoundary(core.GateOutput, 2, 0)
	require.NoError(t, err)
	cx, err := b.AddGate(core.GateCX)
	require.NoError(t, err)
	h, err := b.AddGate(core.GateH)
	require.NoError(t, err)
	in, err := b.AddBoundary(core.GateInput, 2, 0)
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

func TestHash_InvariantUnderCloneViaNewBuilderFromCircuit(t *testing.T) {
	c := buildBell(t)
	b, _ := core.NewBuilderFromCircuit(c)
	c2, err := b.Freeze()
	require.NoError(t, err)
	assert.Equal(t, c.Hash(), c2.Hash())
}

func TestHash_InvariantUnderNodeIDRelabelling(t *testing.T) {
	c1 := buildBell(t)
	c2 := buildBellReordered(t)
	assert.Equal(t, c1.Hash(), c2.Hash(), "structurally identical circuits built with different NodeID allocation order must hash equal")
}

func TestHash_DiffersOnDifferentGateKind(t *testing.T) {
	bell := buildBell(t)

	b := core.NewBuilder()
	in, err := b.AddBoundary(core.GateInput, 2, 0)
	require.NoError(t, err)
	out, err := b.AddBoundary(core.GateOutput, 2, 0)
	require.NoError(t, err)
	x, err := b.AddGate(core.GateX) // X instead of H
	require.NoError(t, err)
	cx, err := b.AddGate(core.GateCX)
	require.NoError(t, err)

	require.NoError(t, b.Link(core.Port{Node: in, Index: 0, Dir: core.DirOut}, core.Port{Node: x, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: x, Index: 0, Dir: core.DirOut}, core.Port{Node: cx, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: in, Index: 1, Dir: core.DirOut}, core.Port{Node: cx, Index: 1, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx, Index: 0, Dir: core.DirOut}, core.Port{Node: out, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx, Index: 1, Dir: core.DirOut}, core.Port{Node: out, Index: 1, Dir: core.DirIn}))

	other, err := b.Freeze()
	require.NoError(t, err)

	assert.NotEqual(t, bell.Hash(), other.Hash())
}

func TestHash_DiffersOnDifferentTopology(t *testing.T) {
	bell := buildBell(t)

	b := core.NewBuilder()
	in, err := b.AddBoundary(core.GateInput, 2, 0)
	require.NoError(t, err)
	out, err := b.AddBoundary(core.GateOutput, 2, 0)
	require.NoError(t, err)
	h, err := b.AddGate(core.GateH)
	require.NoError(t, err)
	cx, err := b.AddGate(core.GateCX)
	require.NoError(t, err)

	// Same gates, but H applied to qubit 1's wire and CX's control/target
	// swapped relative to buildBell - different wiring, same gate multiset.
	require.NoError(t, b.Link(core.Port{Node: in, Index: 1, Dir: core.DirOut}, core.Port{Node: h, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: h, Index: 0, Dir: core.DirOut}, core.Port{Node: cx, Index: 1, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: in, Index: 0, Dir: core.DirOut}, core.Port{Node: cx, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx, Index: 0, Dir: core.DirOut}, core.Port{Node: out, Index: 0, Dir: core.DirIn}))
	require.NoError(t, b.Link(core.Port{Node: cx, Index: 1, Dir: core.DirOut}, core.Port{Node: out, Index: 1, Dir: core.DirIn}))

	rewired, err := b.Freeze()
	require.NoError(t, err)

	assert.NotEqual(t, bell.Hash(), rewired.Hash())
}

func TestHash_Deterministic(t *testing.T) {
	c := buildBell(t)
	h1 := c.Hash()
	h2 := c.Hash()
	assert.Equal(t, h1, h2)
}
