package main

import (
	"fmt"
	"strings"
)

// GateKind identifies one of the supported circuit gates. The set is closed:
// anything outside it is rejected when the operation is constructed, so the
// replay path never sees a gate it cannot dispatch.
type GateKind int

const (
	GateH GateKind = iota
	GateX
	GateY
	GateZ
	GateS
	GateT
	GateRX
	GateRY
	GateRZ
	GateCX
	GateCY
	GateCZ
	GateSwap
	GateCCX
	GateMeasure
)

// gateSpec describes the fixed arity and parameter needs of a gate kind.
type gateSpec struct {
	name     string
	controls int  // control qubits required
	param    bool // rotation angle required
}

var gateSpecs = [...]gateSpec{
	GateH:       {name: "H"},
	GateX:       {name: "X"},
	GateY:       {name: "Y"},
	GateZ:       {name: "Z"},
	GateS:       {name: "S"},
	GateT:       {name: "T"},
	GateRX:      {name: "RX", param: true},
	GateRY:      {name: "RY", param: true},
	GateRZ:      {name: "RZ", param: true},
	GateCX:      {name: "CX", controls: 1},
	GateCY:      {name: "CY", controls: 1},
	GateCZ:      {name: "CZ", controls: 1},
	GateSwap:    {name: "Swap", controls: 1},
	GateCCX:     {name: "CCX", controls: 2},
	GateMeasure: {name: "Measure"},
}

func (g GateKind) valid() bool {
	return g >= GateH && g <= GateMeasure
}

func (g GateKind) String() string {
	if !g.valid() {
		return fmt.Sprintf("GateKind(%d)", int(g))
	}
	return gateSpecs[g].name
}

// NumControls returns how many control qubits the gate requires.
func (g GateKind) NumControls() int {
	if !g.valid() {
		return 0
	}
	return gateSpecs[g].controls
}

// NeedsParam reports whether the gate takes a rotation angle.
func (g GateKind) NeedsParam() bool {
	return g.valid() && gateSpecs[g].param
}

// UnknownGateError reports a gate name outside the supported set.
type UnknownGateError struct {
	Name string
}

func (e *UnknownGateError) Error() string {
	return fmt.Sprintf("unknown gate %q", e.Name)
}

// ParseGate resolves a gate name to its kind, case-insensitively.
func ParseGate(name string) (GateKind, error) {
	for kind, spec := range gateSpecs {
		if strings.EqualFold(spec.name, name) {
			return GateKind(kind), nil
		}
	}
	return 0, &UnknownGateError{Name: name}
}

// AllGates returns every supported gate kind in declaration order.
func AllGates() []GateKind {
	gates := make([]GateKind, len(gateSpecs))
	for i := range gateSpecs {
		gates[i] = GateKind(i)
	}
	return gates
}
