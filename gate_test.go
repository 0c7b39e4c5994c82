package main

import (
	"errors"
	"testing"
)

func TestParseGate(t *testing.T) {
	tests := []struct {
		input string
		want  GateKind
		ok    bool
	}{
		{"H", GateH, true},
		{"h", GateH, true},
		{"X", GateX, true},
		{"RX", GateRX, true},
		{"rz", GateRZ, true},
		{"CX", GateCX, true},
		{"Swap", GateSwap, true},
		{"SWAP", GateSwap, true},
		{"swap", GateSwap, true},
		{"CCX", GateCCX, true},
		{"Measure", GateMeasure, true},
		{"MEASURE", GateMeasure, true},
		{"", 0, false},
		{"Q", 0, false},
		{"Toffoli", 0, false},
		{"CRX", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseGate(tt.input)
		if tt.ok {
			if err != nil {
				t.Errorf("ParseGate(%q): unexpected error %v", tt.input, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseGate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			continue
		}
		var unknown *UnknownGateError
		if !errors.As(err, &unknown) {
			t.Errorf("ParseGate(%q): got %v, want *UnknownGateError", tt.input, err)
		}
	}
}

func TestGateArity(t *testing.T) {
	tests := []struct {
		gate     GateKind
		controls int
		param    bool
	}{
		{GateH, 0, false},
		{GateT, 0, false},
		{GateRX, 0, true},
		{GateRY, 0, true},
		{GateRZ, 0, true},
		{GateCX, 1, false},
		{GateCY, 1, false},
		{GateCZ, 1, false},
		{GateSwap, 1, false},
		{GateCCX, 2, false},
		{GateMeasure, 0, false},
	}

	for _, tt := range tests {
		if got := tt.gate.NumControls(); got != tt.controls {
			t.Errorf("%v.NumControls() = %d, want %d", tt.gate, got, tt.controls)
		}
		if got := tt.gate.NeedsParam(); got != tt.param {
			t.Errorf("%v.NeedsParam() = %v, want %v", tt.gate, got, tt.param)
		}
	}
}

func TestAllGatesRoundTrip(t *testing.T) {
	// Every supported kind parses back from its own name.
	for _, gate := range AllGates() {
		parsed, err := ParseGate(gate.String())
		if err != nil {
			t.Errorf("ParseGate(%q): %v", gate.String(), err)
			continue
		}
		if parsed != gate {
			t.Errorf("ParseGate(%q) = %v, want %v", gate.String(), parsed, gate)
		}
	}
}

func TestOperationEqual(t *testing.T) {
	a, _ := AddGateOp(GateCX, []int{1}, 0)
	b, _ := AddGateOp(GateCX, []int{1}, 0)
	c, _ := AddGateOp(GateCX, []int{0}, 1)

	if !a.Equal(b) {
		t.Error("identical operations must compare equal")
	}
	if a.Equal(c) {
		t.Error("operations with swapped roles must not compare equal")
	}
	if a.Equal(AddQubitOp()) {
		t.Error("gate operation must not equal AddQubit")
	}

	r1, _ := RotationOp(GateRX, 0, 1.5)
	r2, _ := RotationOp(GateRX, 0, 1.5)
	r3, _ := RotationOp(GateRX, 0, 2.5)
	if !r1.Equal(r2) || r1.Equal(r3) {
		t.Error("rotation equality must include the angle")
	}
}

func TestOperationDescribe(t *testing.T) {
	tests := []struct {
		build func() Operation
		want  string
	}{
		{func() Operation { return AddQubitOp() }, "Add Qubit"},
		{func() Operation { op, _ := AddGateOp(GateH, []int{0}); return op }, "Add Gate: H t=q[0]"},
		{func() Operation { op, _ := AddGateOp(GateCX, []int{1}, 0); return op }, "Add Gate: CX c=q[0] t=q[1]"},
		{func() Operation { op, _ := AddGateOp(GateCCX, []int{2}, 0, 1); return op }, "Add Gate: CCX c=q[0],q[1] t=q[2]"},
	}
	for _, tt := range tests {
		if got := tt.build().Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}
