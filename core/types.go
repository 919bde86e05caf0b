package core

import "fmt"

// NodeID uniquely identifies a node within a single Circuit. IDs are never
// reused within a circuit; NewBuilderFromCircuit gives its copies fresh IDs,
// and IDs are NOT expected to be comparable across distinct circuits (use
// Hash for that).
type NodeID uint64

// PortType is the type carried by a port: a linear qubit wire or a
// (non-linear) classical float64 parameter wire.
type PortType uint8

const (
	// PortQubit is a linear qubit wire: it must be threaded through exactly
	// once per gate it passes through (consumed and re-produced).
	PortQubit PortType = iota
	// PortParam is a classical float64-valued wire (gate rotation angles,
	// ECC parameter threading).
	PortParam
)

func (t PortType) String() string {
	switch t {
	case PortQubit:
		return "qubit"
	case PortParam:
		return "param"
	default:
		return fmt.Sprintf("PortType(%d)", uint8(t))
	}
}

// Direction distinguishes a node's incoming side from its outgoing side.
type Direction uint8

const (
	// DirIn marks an incoming port (a node consumes it).
	DirIn Direction = iota
	// DirOut marks an outgoing port (a node produces it).
	DirOut
)

func (d Direction) String() string {
	if d == DirIn {
		return "in"
	}
	return "out"
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == DirIn {
		return DirOut
	}
	return DirIn
}

// Port names one port of one node: its index within the node's incoming or
// outgoing port list, per Direction.
type Port struct {
	Node  NodeID
	Index int
	Dir   Direction
}

func (p Port) String() string {
	return fmt.Sprintf("%s#%d.%s[%d]", "node", uint64(p.Node), p.Dir, p.Index)
}

// GateKind is the closed tagged-variant set of operations a Node may carry.
type GateKind uint8

const (
	// GateInput is the structural source marker: outgoing ports only, one
	// per circuit wire (qubit or parameter).
	GateInput GateKind = iota
	// GateOutput is the structural sink marker: incoming ports only, one per
	// circuit wire.
	GateOutput
	// GateConstLoad loads a constant float64 parameter (no inputs, one
	// PortParam output).
	GateConstLoad

	// Single-qubit Clifford+T gates (1 qubit in, 1 qubit out).
	GateH
	GateX
	GateY
	GateZ
	GateS
	GateT
	GateSdg
	GateTdg

	// Two-qubit gates (2 qubits in, 2 qubits out, order-significant).
	GateCX
	GateZZMax

	// GateMeasure consumes and re-emits a single qubit wire.
	GateMeasure

	// Parameterised gates: one qubit in/out, plus PortParam inputs.
	GateRz  // Rz(theta): 1 param in.
	GateTK1 // TK1(a,b,c): 3 params in.

	// GateAngleAdd is pure param-wire arithmetic (no qubits): it sums two
	// PortParam inputs into one PortParam output. ECC circuits use it to
	// build composite rotation angles from quartz's "add" opstr (spec §6).
	GateAngleAdd
)

// String names a gate kind the way it appears in ECC JSON opstr fields and
// in logs; see rewrite.DecodeECCJSON for the inverse mapping.
func (k GateKind) String() string {
	switch k {
	case GateInput:
		return "Input"
	case GateOutput:
		return "Output"
	case GateConstLoad:
		return "ConstLoad"
	case GateH:
		return "h"
	case GateX:
		return "x"
	case GateY:
		return "y"
	case GateZ:
		return "z"
	case GateS:
		return "s"
	case GateT:
		return "t"
	case GateSdg:
		return "sdg"
	case GateTdg:
		return "tdg"
	case GateCX:
		return "cx"
	case GateZZMax:
		return "zzmax"
	case GateMeasure:
		return "measure"
	case GateRz:
		return "rz"
	case GateTK1:
		return "tk1"
	case GateAngleAdd:
		return "add"
	default:
		return fmt.Sprintf("GateKind(%d)", uint8(k))
	}
}

// gateSpec describes the fixed port layout of every GateKind except the
// variable-arity structural markers (GateInput, GateOutput, GateConstLoad),
// whose port counts are supplied explicitly to AddBoundary/AddConstLoad.
type gateSpec struct {
	qubits     int // qubit wires threaded in==out, one-for-one
	paramsIn   int // extra PortParam inputs (angles), no matching output
	paramOut   bool // single PortParam output instead of qubit outputs (GateConstLoad, GateAngleAdd)
	variadic   bool // GateInput/GateOutput/GateConstLoad: arity given by caller
}

var gateSpecs = map[GateKind]gateSpec{
	GateInput:     {variadic: true},
	GateOutput:    {variadic: true},
	GateConstLoad: {variadic: true, paramOut: true},
	GateH:         {qubits: 1},
	GateX:         {qubits: 1},
	GateY:         {qubits: 1},
	GateZ:         {qubits: 1},
	GateS:         {qubits: 1},
	GateT:         {qubits: 1},
	GateSdg:       {qubits: 1},
	GateTdg:       {qubits: 1},
	GateCX:        {qubits: 2},
	GateZZMax:     {qubits: 2},
	GateMeasure:   {qubits: 1},
	GateRz:        {qubits: 1, paramsIn: 1},
	GateTK1:       {qubits: 1, paramsIn: 3},
	GateAngleAdd:  {paramsIn: 2, paramOut: true},
}

// QubitSpan returns the number of qubit wires a gate of this kind threads
// through (same count on the incoming and outgoing side). Returns 0 for the
// variadic structural kinds; use Circuit.NumPorts for those.
func (k GateKind) QubitSpan() int {
	return gateSpecs[k].qubits
}

// NumParamInputs returns the number of PortParam inputs a gate of this kind
// consumes (e.g. 1 for Rz, 3 for TK1).
func (k GateKind) NumParamInputs() int {
	return gateSpecs[k].paramsIn
}

// IsVariadic reports whether this kind's port count is supplied by the
// caller rather than fixed by the gate kind (Input, Output, ConstLoad).
func (k GateKind) IsVariadic() bool {
	return gateSpecs[k].variadic
}

// IsBoundary reports whether a node of this kind is a structural marker
// (Input/Output) that the matcher and convexity checker must not cross.
func (k GateKind) IsBoundary() bool {
	return k == GateInput || k == GateOutput
}
