package rewrite

import (
	"encoding/json"
	"fmt"

	"github.com/qcopt/taso/core"
)

// repCircOp mirrors qtz_circuit.rs's RepCircOp: one gate application in
// quartz's wire-threaded representation. Inputs/Outputs are quartz wire
// identifiers (e.g. "Q0", "P1"), never literal values — per spec §6,
// rotation angles are dataflow wires, not node-attached constants. Quartz
// keeps a qubit's identifier constant across the whole circuit ("Q0" always
// names physical qubit 0's current wire), so rebinding wires["Q0"] on every
// gate that touches it is enough to track qubit flow; only parameter wires
// pick up fresh identifiers as ECC construction composes angles.
type repCircOp struct {
	Opstr   string   `json:"opstr"`
	Outputs []string `json:"outputs"`
	Inputs  []string `json:"inputs"`
}

// repCircMeta mirrors qtz_circuit.rs's MetaData.
type repCircMeta struct {
	NQubits     int       `json:"n_qb"`
	NInputParam int       `json:"n_input_param"`
	NTotalParam int       `json:"n_total_param"`
	NumGates    uint64    `json:"num_gates"`
	ID          []string  `json:"id"`
	Fingerprint []float64 `json:"fingerprint"`
}

// repCircData mirrors qtz_circuit.rs's RepCircData: one member of an
// equivalence class.
type repCircData struct {
	Meta repCircMeta `json:"meta"`
	Circ []repCircOp `json:"circ"`
}

// eccOpstr maps the closed opstr set from spec §6 to GateKind; the inverse
// of GateKind.String() for the subset ECC JSON can name.
func eccOpstr(opstr string) (core.GateKind, bool) {
	switch opstr {
	case "h":
		return core.GateH, true
	case "cx":
		return core.GateCX, true
	case "t":
		return core.GateT, true
	case "s":
		return core.GateS, true
	case "x":
		return core.GateX, true
	case "y":
		return core.GateY, true
	case "z":
		return core.GateZ, true
	case "tdg":
		return core.GateTdg, true
	case "sdg":
		return core.GateSdg, true
	case "rz":
		return core.GateRz, true
	case "add":
		return core.GateAngleAdd, true
	default:
		return 0, false
	}
}

// inputTypesFor returns the PortType of each input slot for kind, in order:
// qubit slots first, then parameter slots, matching gateSpecs' layout
// convention (core.AddGate's doc comment).
func inputTypesFor(kind core.GateKind) []core.PortType {
	switch kind {
	case core.GateAngleAdd:
		return []core.PortType{core.PortParam, core.PortParam}
	case core.GateRz:
		return []core.PortType{core.PortQubit, core.PortParam}
	case core.GateTK1:
		return []core.PortType{core.PortQubit, core.PortParam, core.PortParam, core.PortParam}
	case core.GateCX, core.GateZZMax:
		return []core.PortType{core.PortQubit, core.PortQubit}
	default:
		return []core.PortType{core.PortQubit}
	}
}

// outputTypesFor returns the PortType of each output slot for kind.
func outputTypesFor(kind core.GateKind) []core.PortType {
	switch kind {
	case core.GateAngleAdd:
		return []core.PortType{core.PortParam}
	case core.GateCX, core.GateZZMax:
		return []core.PortType{core.PortQubit, core.PortQubit}
	default:
		return []core.PortType{core.PortQubit}
	}
}

// EquivalenceClass is one group of circuits proven equivalent by the ECC
// generator that produced the source JSON; every pair within a class is a
// candidate (pattern, replacement) rewrite (spec §4.4/§6).
type EquivalenceClass struct {
	ID       string
	Circuits []*core.Circuit
}

// DecodeECCJSON parses an ECC JSON document per spec §6: a top-level
// 2-element array `[metaPlaceholder, classMap]`, where classMap maps an
// arbitrary class key to an array of repCircData circuit entries.
//
// Each entry is rebuilt as a core.Circuit by replaying its gate list in
// order against a table of quartz wire identifiers -> core.Port, exactly as
// qtz_circuit.rs's `From<RepCircData> for Circuit` does: qubit wires Q0..
// and input param wires P0.. seed the table from the circuit's Input node,
// and every gate's Outputs re-bind their wire identifiers to that gate's
// fresh output ports. An opstr outside the recognised set, or a reference
// to a wire identifier not yet bound, is a fatal decode error (spec §7).
func DecodeECCJSON(data []byte) ([]EquivalenceClass, error) {
	var doc [2]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedECC, err)
	}
	var classMap map[string][]repCircData
	if err := json.Unmarshal(doc[1], &classMap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedECC, err)
	}

	classes := make([]EquivalenceClass, 0, len(classMap))
	for key, members := range classMap {
		if len(members) == 0 {
			return nil, fmt.Errorf("%w: class %q has no members", ErrMalformedECC, key)
		}
		id := key
		if len(members[0].Meta.ID) > 0 {
			id = members[0].Meta.ID[0]
		}
		circuits := make([]*core.Circuit, 0, len(members))
		for i, rcd := range members {
			c, err := decodeRepCircData(rcd)
			if err != nil {
				return nil, fmt.Errorf("class %q member %d: %w", id, i, err)
			}
			circuits = append(circuits, c)
		}
		classes = append(classes, EquivalenceClass{ID: id, Circuits: circuits})
	}
	return classes, nil
}

// DecodeCircuitJSON decodes a single circuit from the same wire-threaded
// {meta, circ} shape used by each ECC class member, for loading a host
// circuit to optimise from disk (cmd/tasod, cmd/tasoctl) without requiring
// a whole equivalence-class document just to name one circuit.
func DecodeCircuitJSON(data []byte) (*core.Circuit, error) {
	var rcd repCircData
	if err := json.Unmarshal(data, &rcd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedECC, err)
	}
	return decodeRepCircData(rcd)
}

func decodeRepCircData(rcd repCircData) (*core.Circuit, error) {
	m := rcd.Meta
	if m.NQubits < 0 || m.NInputParam < 0 {
		return nil, fmt.Errorf("%w: negative arity in meta", ErrMalformedECC)
	}

	b := core.NewBuilder()
	in, err := b.AddBoundary(core.GateInput, m.NQubits, m.NInputParam)
	if err != nil {
		return nil, err
	}
	out, err := b.AddBoundary(core.GateOutput, m.NQubits, 0)
	if err != nil {
		return nil, err
	}

	wires := make(map[string]core.Port, m.NQubits+m.NInputParam)
	for i := 0; i < m.NQubits; i++ {
		wires[fmt.Sprintf("Q%d", i)] = core.Port{Node: in, Index: i, Dir: core.DirOut}
	}
	for i := 0; i < m.NInputParam; i++ {
		wires[fmt.Sprintf("P%d", i)] = core.Port{Node: in, Index: m.NQubits + i, Dir: core.DirOut}
	}

	for _, op := range rcd.Circ {
		kind, ok := eccOpstr(op.Opstr)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOpstr, op.Opstr)
		}

		srcPorts := make([]core.Port, len(op.Inputs))
		for i, wireName := range op.Inputs {
			p, ok := wires[wireName]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownWire, wireName)
			}
			srcPorts[i] = p
		}

		inTypes := inputTypesFor(kind)
		outTypes := outputTypesFor(kind)
		if len(inTypes) != len(op.Inputs) {
			return nil, fmt.Errorf("%w: %s expects %d inputs, entry names %d", ErrMalformedECC, op.Opstr, len(inTypes), len(op.Inputs))
		}
		if len(outTypes) != len(op.Outputs) {
			return nil, fmt.Errorf("%w: %s produces %d outputs, entry names %d", ErrMalformedECC, op.Opstr, len(outTypes), len(op.Outputs))
		}

		nid, err := b.AddRawNode(kind, nil, inTypes, outTypes)
		if err != nil {
			return nil, err
		}
		for i, src := range srcPorts {
			if err := b.Link(src, core.Port{Node: nid, Index: i, Dir: core.DirIn}); err != nil {
				return nil, err
			}
		}
		for i, wireName := range op.Outputs {
			wires[wireName] = core.Port{Node: nid, Index: i, Dir: core.DirOut}
		}
	}

	for i := 0; i < m.NQubits; i++ {
		name := fmt.Sprintf("Q%d", i)
		p, ok := wires[name]
		if !ok {
			return nil, fmt.Errorf("%w: final qubit wire %q never produced", ErrMalformedECC, name)
		}
		if err := b.Link(p, core.Port{Node: out, Index: i, Dir: core.DirIn}); err != nil {
			return nil, err
		}
	}

	return b.Freeze()
}
