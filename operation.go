package main

import (
	"fmt"
	"slices"
	"strings"
)

// OpKind tags the two edit operations the history records.
type OpKind int

const (
	OpAddQubit OpKind = iota
	OpAddGate
)

// Operation is one recorded, replayable edit. Values are built through the
// constructors below and never mutated afterwards; undo/redo re-applies the
// stored value exactly, rotation angles and control lists included.
type Operation struct {
	Kind     OpKind
	Gate     GateKind
	Targets  []int
	Controls []int
	Param    float64
	HasParam bool
}

// InsufficientControlsError reports a gate built with fewer control qubits
// than its arity requires.
type InsufficientControlsError struct {
	Gate GateKind
	Got  int
	Want int
}

func (e *InsufficientControlsError) Error() string {
	return fmt.Sprintf("%s gate requires %d control qubit(s), got %d", e.Gate, e.Want, e.Got)
}

// AddQubitOp builds the operation that appends one qubit+classical-bit pair.
func AddQubitOp() Operation {
	return Operation{Kind: OpAddQubit}
}

// AddGateOp builds a gate operation without a rotation angle.
// Control arity is checked here so replay never has to.
func AddGateOp(gate GateKind, targets []int, controls ...int) (Operation, error) {
	if !gate.valid() {
		return Operation{}, &UnknownGateError{Name: gate.String()}
	}
	if len(controls) < gate.NumControls() {
		return Operation{}, &InsufficientControlsError{Gate: gate, Got: len(controls), Want: gate.NumControls()}
	}
	return Operation{
		Kind:     OpAddGate,
		Gate:     gate,
		Targets:  slices.Clone(targets),
		Controls: slices.Clone(controls),
	}, nil
}

// RotationOp builds a parameterized gate operation (RX, RY, RZ).
func RotationOp(gate GateKind, target int, angle float64) (Operation, error) {
	if !gate.valid() {
		return Operation{}, &UnknownGateError{Name: gate.String()}
	}
	op, err := AddGateOp(gate, []int{target})
	if err != nil {
		return Operation{}, err
	}
	op.Param = angle
	op.HasParam = true
	return op, nil
}

// Equal reports value equality between two operations.
func (op Operation) Equal(other Operation) bool {
	return op.Kind == other.Kind &&
		op.Gate == other.Gate &&
		slices.Equal(op.Targets, other.Targets) &&
		slices.Equal(op.Controls, other.Controls) &&
		op.HasParam == other.HasParam &&
		op.Param == other.Param
}

// Describe returns a short human-readable label for status messages.
func (op Operation) Describe() string {
	if op.Kind == OpAddQubit {
		return "Add Qubit"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Add Gate: %s", op.Gate)
	if op.HasParam {
		fmt.Fprintf(&sb, "(%s)", formatParam(op.Param))
	}
	for i, c := range op.Controls {
		if i == 0 {
			sb.WriteString(" c=")
		} else {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "q[%d]", c)
	}
	for i, t := range op.Targets {
		if i == 0 {
			sb.WriteString(" t=")
		} else {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "q[%d]", t)
	}
	return sb.String()
}
