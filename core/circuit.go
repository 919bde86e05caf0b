package core

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// nodeData is the internal representation of one DAG vertex. It is shared,
// read-only, between a frozen Circuit and any Builder that cloned it; once a
// Circuit is frozen its nodeData values are never mutated again.
type nodeData struct {
	id       NodeID
	kind     GateKind
	params   []float64
	inTypes  []PortType
	outTypes []PortType
	// inLinked[i] / outLinked[i] record the far end of port i, if linked.
	inLinked  []Port
	inHas     []bool
	outLinked []Port
	outHas    []bool
}

func (n *nodeData) numPorts(dir Direction) int {
	if dir == DirIn {
		return len(n.inTypes)
	}
	return len(n.outTypes)
}

func (n *nodeData) portType(dir Direction, idx int) PortType {
	if dir == DirIn {
		return n.inTypes[idx]
	}
	return n.outTypes[idx]
}

func (n *nodeData) linked(dir Direction, idx int) (Port, bool) {
	if dir == DirIn {
		return n.inLinked[idx], n.inHas[idx]
	}
	return n.outLinked[idx], n.outHas[idx]
}

func (n *nodeData) setLinked(dir Direction, idx int, p Port) {
	if dir == DirIn {
		n.inLinked[idx] = p
		n.inHas[idx] = true
	} else {
		n.outLinked[idx] = p
		n.outHas[idx] = true
	}
}

func (n *nodeData) clone() *nodeData {
	c := &nodeData{
		id:        n.id,
		kind:      n.kind,
		params:    append([]float64(nil), n.params...),
		inTypes:   append([]PortType(nil), n.inTypes...),
		outTypes:  append([]PortType(nil), n.outTypes...),
		inLinked:  append([]Port(nil), n.inLinked...),
		inHas:     append([]bool(nil), n.inHas...),
		outLinked: append([]Port(nil), n.outLinked...),
		outHas:    append([]bool(nil), n.outHas...),
	}
	return c
}

// Builder constructs a Circuit incrementally. Builders are not safe for
// concurrent use by multiple goroutines while under construction (mirroring
// lvlath's "mutable-until-frozen" DAG lifecycle); once Freeze succeeds the
// returned Circuit is immutable and safe to share.
type Builder struct {
	mu     sync.Mutex
	nodes  map[NodeID]*nodeData
	order  []NodeID
	nextID uint64
	frozen bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[NodeID]*nodeData),
	}
}

func (b *Builder) allocID() NodeID {
	return NodeID(atomic.AddUint64(&b.nextID, 1))
}

// AddGate appends a fixed-arity gate node (anything except GateInput,
// GateOutput, GateConstLoad) and returns its NodeID. Parameterised gates
// (Rz, TK1) take their angles as PortParam *input wires*, not as literal
// values attached to the node — per spec §4.4/§6, ECC-ingested circuits
// thread parameters as dataflow units exactly like qubits, fed by a
// GateConstLoad node or an upstream Input param wire, so there is nothing
// to pass here beyond the kind.
//
// Port layout: incoming ports are [qubits..., params...] in that order;
// outgoing ports are [qubits...] (parameters are consumed, not reproduced),
// except for GateAngleAdd, whose single outgoing port is a PortParam.
func (b *Builder) AddGate(kind GateKind) (NodeID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return 0, ErrFrozen
	}
	if kind.IsVariadic() {
		return 0, fmt.Errorf("core: AddGate: %s is variadic, use AddBoundary/AddConstLoad", kind)
	}
	spec := gateSpecs[kind]

	inTypes := make([]PortType, 0, spec.qubits+spec.paramsIn)
	for i := 0; i < spec.qubits; i++ {
		inTypes = append(inTypes, PortQubit)
	}
	for i := 0; i < spec.paramsIn; i++ {
		inTypes = append(inTypes, PortParam)
	}
	var outTypes []PortType
	if spec.paramOut {
		outTypes = []PortType{PortParam}
	} else {
		outTypes = make([]PortType, spec.qubits)
		for i := range outTypes {
			outTypes[i] = PortQubit
		}
	}

	id := b.allocID()
	n := &nodeData{
		id:        id,
		kind:      kind,
		inTypes:   inTypes,
		outTypes:  outTypes,
		inLinked:  make([]Port, len(inTypes)),
		inHas:     make([]bool, len(inTypes)),
		outLinked: make([]Port, len(outTypes)),
		outHas:    make([]bool, len(outTypes)),
	}
	b.nodes[id] = n
	b.order = append(b.order, id)
	return id, nil
}

// AddBoundary adds a GateInput or GateOutput structural marker with
// qubitWires qubit ports and paramWires parameter ports, all on the
// outgoing side for GateInput and the incoming side for GateOutput.
func (b *Builder) AddBoundary(kind GateKind, qubitWires, paramWires int) (NodeID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return 0, ErrFrozen
	}
	if kind != GateInput && kind != GateOutput {
		return 0, fmt.Errorf("core: AddBoundary: %s is not a boundary kind", kind)
	}
	if qubitWires < 0 || paramWires < 0 {
		return 0, fmt.Errorf("core: AddBoundary: negative wire count")
	}

	types := make([]PortType, 0, qubitWires+paramWires)
	for i := 0; i < qubitWires; i++ {
		types = append(types, PortQubit)
	}
	for i := 0; i < paramWires; i++ {
		types = append(types, PortParam)
	}

	id := b.allocID()
	n := &nodeData{id: id, kind: kind}
	if kind == GateInput {
		n.outTypes = types
		n.outLinked = make([]Port, len(types))
		n.outHas = make([]bool, len(types))
	} else {
		n.inTypes = types
		n.inLinked = make([]Port, len(types))
		n.inHas = make([]bool, len(types))
	}
	b.nodes[id] = n
	b.order = append(b.order, id)
	return id, nil
}

// AddConstLoad adds a constant-load marker producing a single PortParam
// output carrying value.
func (b *Builder) AddConstLoad(value float64) (NodeID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return 0, ErrFrozen
	}
	id := b.allocID()
	n := &nodeData{
		id:        id,
		kind:      GateConstLoad,
		params:    []float64{value},
		outTypes:  []PortType{PortParam},
		outLinked: make([]Port, 1),
		outHas:    make([]bool, 1),
	}
	b.nodes[id] = n
	b.order = append(b.order, id)
	return id, nil
}

// AddRawNode adds a node with an explicit, caller-supplied port-type layout,
// bypassing the fixed-arity gateSpecs table. Used by lower-level builders
// that already know the exact port layout they want: the ECC JSON decoder
// (package rewrite) and the matcher's binary (de)serialisation round-trip,
// both of which reconstruct nodes from a serialised description rather than
// from a (kind, params) pair that AddGate can look up in gateSpecs.
func (b *Builder) AddRawNode(kind GateKind, params []float64, inTypes, outTypes []PortType) (NodeID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return 0, ErrFrozen
	}
	id := b.allocID()
	n := &nodeData{
		id:        id,
		kind:      kind,
		params:    append([]float64(nil), params...),
		inTypes:   append([]PortType(nil), inTypes...),
		outTypes:  append([]PortType(nil), outTypes...),
		inLinked:  make([]Port, len(inTypes)),
		inHas:     make([]bool, len(inTypes)),
		outLinked: make([]Port, len(outTypes)),
		outHas:    make([]bool, len(outTypes)),
	}
	b.nodes[id] = n
	b.order = append(b.order, id)
	return id, nil
}

// Link connects an outgoing port to an incoming port. Order of arguments
// does not matter; Link rejects same-direction pairs.
func (b *Builder) Link(a, c Port) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return ErrFrozen
	}
	if a.Dir == c.Dir {
		return ErrPortDirectionMismatch
	}
	out, in := a, c
	if out.Dir != DirOut {
		out, in = c, a
	}
	outNode, ok := b.nodes[out.Node]
	if !ok {
		return fmt.Errorf("core: Link: unknown node %d", out.Node)
	}
	inNode, ok := b.nodes[in.Node]
	if !ok {
		return fmt.Errorf("core: Link: unknown node %d", in.Node)
	}
	if out.Index < 0 || out.Index >= len(outNode.outTypes) {
		return fmt.Errorf("core: Link: out port %d out of range on node %d", out.Index, out.Node)
	}
	if in.Index < 0 || in.Index >= len(inNode.inTypes) {
		return fmt.Errorf("core: Link: in port %d out of range on node %d", in.Index, in.Node)
	}
	if outNode.outTypes[out.Index] != inNode.inTypes[in.Index] {
		return ErrPortTypeMismatch
	}
	if outNode.outHas[out.Index] || inNode.inHas[in.Index] {
		return ErrPortAlreadyLinked
	}
	outNode.setLinked(DirOut, out.Index, Port{Node: in.Node, Index: in.Index, Dir: DirIn})
	inNode.setLinked(DirIn, in.Index, Port{Node: out.Node, Index: out.Index, Dir: DirOut})
	return nil
}

// Freeze validates the circuit (acyclic, fully linked except at boundary
// markers) and returns an immutable Circuit. The Builder must not be used
// again after a successful Freeze.
func (b *Builder) Freeze() (*Circuit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return nil, ErrFrozen
	}

	for _, id := range b.order {
		n := b.nodes[id]
		if n.kind.IsBoundary() {
			continue
		}
		for i, has := range n.inHas {
			if !has {
				return nil, fmt.Errorf("%w: node %d in-port %d", ErrDanglingPort, id, i)
			}
		}
		for i, has := range n.outHas {
			if !has {
				return nil, fmt.Errorf("%w: node %d out-port %d", ErrDanglingPort, id, i)
			}
		}
	}

	topo, err := topologicalOrder(b.nodes, b.order)
	if err != nil {
		return nil, err
	}

	b.frozen = true
	return &Circuit{nodes: b.nodes, order: append([]NodeID(nil), b.order...), topo: topo}, nil
}

// Circuit is an immutable, shareable quantum circuit DAG. Construct one via
// Builder; the zero value is not usable.
type Circuit struct {
	nodes map[NodeID]*nodeData
	order []NodeID
	topo  []NodeID
}

// NumNodes returns the number of nodes in the circuit, boundary markers
// included.
func (c *Circuit) NumNodes() int { return len(c.nodes) }

// Topology returns all node IDs in a fixed topological order (Kahn's
// algorithm, always taking the smallest ready NodeID next). The returned
// slice must not be mutated by the caller.
func (c *Circuit) Topology() []NodeID { return c.topo }

// HasNode reports whether id exists in this circuit.
func (c *Circuit) HasNode(id NodeID) bool {
	_, ok := c.nodes[id]
	return ok
}

func (c *Circuit) mustNode(id NodeID) *nodeData {
	n, ok := c.nodes[id]
	if !ok {
		panic(fmt.Sprintf("core: node %d not found in circuit", id))
	}
	return n
}

// Kind returns the gate kind of id. Panics if id is not in the circuit:
// per spec §4.1 this is a programming error, not a recoverable failure.
func (c *Circuit) Kind(id NodeID) GateKind { return c.mustNode(id).kind }

// Params returns the literal parameter values carried by id (e.g. the
// constant loaded by a GateConstLoad node). Gates added with AddGate carry
// none: Rz/TK1 angles arrive on PortParam input wires.
func (c *Circuit) Params(id NodeID) []float64 { return c.mustNode(id).params }

// NumPorts returns the number of ports of id on the given side.
func (c *Circuit) NumPorts(id NodeID, dir Direction) int {
	return c.mustNode(id).numPorts(dir)
}

// PortType returns the type of port (id, dir, idx).
func (c *Circuit) PortType(id NodeID, dir Direction, idx int) PortType {
	return c.mustNode(id).portType(dir, idx)
}

// LinkedPort returns the port on the other end of p, and whether p is
// linked at all (false for an Input's outputs / Output's inputs that a
// pattern leaves as an open boundary).
func (c *Circuit) LinkedPort(p Port) (Port, bool) {
	return c.mustNode(p.Node).linked(p.Dir, p.Index)
}

// Ports returns every port of id on side dir, in index order.
func (c *Circuit) Ports(id NodeID, dir Direction) []Port {
	n := c.mustNode(id)
	out := make([]Port, n.numPorts(dir))
	for i := range out {
		out[i] = Port{Node: id, Index: i, Dir: dir}
	}
	return out
}

// NewBuilderFromCircuit clones every node and link of c into a fresh,
// mutable Builder, assigning new NodeIDs. It returns the builder and the
// old->new NodeID mapping, so callers (principally the rewrite package) can
// translate boundary references while splicing in a replacement.
func NewBuilderFromCircuit(c *Circuit) (*Builder, map[NodeID]NodeID) {
	b := NewBuilder()
	remap := make(map[NodeID]NodeID, len(c.order))
	for _, id := range c.order {
		newID := b.allocID()
		remap[id] = newID
	}
	for _, id := range c.order {
		old := c.mustNode(id)
		n := old.clone()
		n.id = remap[id]
		for i, has := range n.inHas {
			if has {
				lp := n.inLinked[i]
				n.inLinked[i] = Port{Node: remap[lp.Node], Index: lp.Index, Dir: lp.Dir}
			}
		}
		for i, has := range n.outHas {
			if has {
				lp := n.outLinked[i]
				n.outLinked[i] = Port{Node: remap[lp.Node], Index: lp.Index, Dir: lp.Dir}
			}
		}
		b.nodes[n.id] = n
		b.order = append(b.order, n.id)
	}
	return b, remap
}
