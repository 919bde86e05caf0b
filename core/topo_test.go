package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologicalOrder_DeterministicTieBreak(t *testing.T) {
	// Two independent nodes with no edges between them: order must be by
	// NodeID regardless of insertion order in b.order.
	n1 := &nodeData{id: 5}
	n2 := &nodeData{id: 2}
	nodes := map[NodeID]*nodeData{5: n1, 2: n2}

	order, err := topologicalOrder(nodes, []NodeID{5, 2})
	require.NoError(t, err)
	assert.Equal(t, []NodeID{2, 5}, order)
}

func TestTopologicalOrder_DetectsCycle(t *testing.T) {
	a := &nodeData{
		id:        1,
		outTypes:  []PortType{PortQubit},
		outLinked: []Port{{Node: 2, Index: 0, Dir: DirIn}},
		outHas:    []bool{true},
		inTypes:   []PortType{PortQubit},
		inLinked:  []Port{{Node: 2, Index: 0, Dir: DirOut}},
		inHas:     []bool{true},
	}
	b := &nodeData{
		id:        2,
		outTypes:  []PortType{PortQubit},
		outLinked: []Port{{Node: 1, Index: 0, Dir: DirIn}},
		outHas:    []bool{true},
		inTypes:   []PortType{PortQubit},
		inLinked:  []Port{{Node: 1, Index: 0, Dir: DirOut}},
		inHas:     []bool{true},
	}
	nodes := map[NodeID]*nodeData{1: a, 2: b}

	_, err := topologicalOrder(nodes, []NodeID{1, 2})
	assert.ErrorIs(t, err, ErrCyclic)
}
