package main

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func mustGate(t *testing.T, gate GateKind, targets []int, controls ...int) Operation {
	t.Helper()
	op, err := AddGateOp(gate, targets, controls...)
	if err != nil {
		t.Fatalf("AddGateOp(%v): %v", gate, err)
	}
	return op
}

func sameGates(a, b *Circuit) bool {
	if a.NumQubits != b.NumQubits || a.NumCbits != b.NumCbits || len(a.Gates) != len(b.Gates) {
		return false
	}
	for i := range a.Gates {
		ga, gb := a.Gates[i], b.Gates[i]
		if ga.Kind != gb.Kind || ga.Target != gb.Target || ga.Step != gb.Step ||
			ga.HasParam != gb.HasParam || ga.Param != gb.Param ||
			len(ga.Controls) != len(gb.Controls) {
			return false
		}
		for j := range ga.Controls {
			if ga.Controls[j] != gb.Controls[j] {
				return false
			}
		}
	}
	return true
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := NewSession()

	if err := s.Apply(AddQubitOp()); err != nil {
		t.Fatalf("apply AddQubit: %v", err)
	}
	hGate := mustGate(t, GateH, []int{0})
	if err := s.Apply(hGate); err != nil {
		t.Fatalf("apply H: %v", err)
	}

	if got := s.History().UndoCount(); got != 2 {
		t.Fatalf("applied count = %d, want 2", got)
	}

	undone, err := s.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !undone.Equal(hGate) {
		t.Errorf("undo returned %q, want %q", undone.Describe(), hGate.Describe())
	}
	if got := s.History().UndoCount(); got != 1 {
		t.Errorf("applied count after undo = %d, want 1", got)
	}
	if got := s.History().RedoCount(); got != 1 {
		t.Errorf("undone count after undo = %d, want 1", got)
	}
	if len(s.Circuit().Gates) != 0 {
		t.Errorf("circuit still has %d gate(s) after undoing the only gate", len(s.Circuit().Gates))
	}

	redone, err := s.Redo()
	if err != nil {
		t.Fatalf("redo: %v", err)
	}
	if !redone.Equal(hGate) {
		t.Errorf("redo returned %q, want %q", redone.Describe(), hGate.Describe())
	}
	if got := s.History().UndoCount(); got != 2 {
		t.Errorf("applied count after redo = %d, want 2", got)
	}
	if got := s.History().RedoCount(); got != 0 {
		t.Errorf("undone count after redo = %d, want 0", got)
	}
	if len(s.Circuit().Gates) != 1 || s.Circuit().Gates[0].Kind != GateH {
		t.Errorf("circuit not restored after redo: %+v", s.Circuit().Gates)
	}
}

func TestRedoReplaysStoredValue(t *testing.T) {
	// A rotation with its angle and a Toffoli with both controls must come
	// back from redo exactly as recorded.
	s := NewSession()
	s.Apply(AddQubitOp())
	s.Apply(AddQubitOp())

	rot, err := RotationOp(GateRX, 0, 3*math.Pi/4)
	if err != nil {
		t.Fatalf("RotationOp: %v", err)
	}
	if err := s.Apply(rot); err != nil {
		t.Fatalf("apply RX: %v", err)
	}
	ccx := mustGate(t, GateCCX, []int{2}, 0, 1)
	if err := s.Apply(ccx); err != nil {
		t.Fatalf("apply CCX: %v", err)
	}

	before := s.Circuit()
	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo CCX: %v", err)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo RX: %v", err)
	}
	if _, err := s.Redo(); err != nil {
		t.Fatalf("redo RX: %v", err)
	}
	if _, err := s.Redo(); err != nil {
		t.Fatalf("redo CCX: %v", err)
	}

	if !sameGates(before, s.Circuit()) {
		t.Errorf("circuit after undo/undo/redo/redo differs from original:\nbefore: %+v\nafter:  %+v",
			before.Gates, s.Circuit().Gates)
	}
	got := s.Circuit().Gates[0]
	if !got.HasParam || math.Abs(got.Param-3*math.Pi/4) > 1e-12 {
		t.Errorf("rotation angle lost across redo: %+v", got)
	}
	ccxGate := s.Circuit().Gates[1]
	if len(ccxGate.Controls) != 2 {
		t.Errorf("CCX controls lost across redo: %+v", ccxGate)
	}
}

func TestRecordClearsRedo(t *testing.T) {
	s := NewSession()
	s.Apply(mustGate(t, GateH, []int{0}))
	s.Apply(mustGate(t, GateX, []int{0}))

	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !s.History().CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	s.Apply(mustGate(t, GateZ, []int{0}))
	if s.History().CanRedo() {
		t.Error("new edit must invalidate the redo future")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	s := NewSession()
	_, err := s.Undo()
	if !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo on empty history: got %v, want ErrNothingToUndo", err)
	}
	if s.Circuit().NumQubits != 1 || len(s.Circuit().Gates) != 0 {
		t.Error("failed undo must leave state unchanged")
	}
}

func TestRedoOnEmptyUndone(t *testing.T) {
	s := NewSession()
	s.Apply(mustGate(t, GateH, []int{0}))

	_, err := s.Redo()
	if !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("redo with empty undone: got %v, want ErrNothingToRedo", err)
	}
	if got := s.History().UndoCount(); got != 1 {
		t.Errorf("applied count changed by failed redo: %d", got)
	}
}

func TestReplayDeterminism(t *testing.T) {
	build := func() *Session {
		s := NewSession()
		s.Apply(AddQubitOp())
		s.Apply(mustGate(t, GateH, []int{0}))
		s.Apply(mustGate(t, GateCX, []int{1}, 0))
		rot, _ := RotationOp(GateRZ, 1, math.Pi/2)
		s.Apply(rot)
		s.Apply(mustGate(t, GateMeasure, []int{0}))
		return s
	}

	a, b := build(), build()
	if !sameGates(a.Circuit(), b.Circuit()) {
		t.Fatalf("same log produced different circuits:\na: %+v\nb: %+v", a.Circuit().Gates, b.Circuit().Gates)
	}

	// Replaying the log of one session from scratch gives the live state back.
	replayed := NewCircuit()
	for _, op := range a.History().Applied() {
		if err := replayed.Apply(op); err != nil {
			t.Fatalf("replay: %v", err)
		}
	}
	if !sameGates(a.Circuit(), replayed) {
		t.Error("replayed circuit differs from live circuit")
	}
}

func TestOutOfRangeGateRejectedAtApply(t *testing.T) {
	// CX with target q[1] on a 1-qubit circuit: rejected before it can
	// enter the log, so later replays never trip over it.
	s := NewSession()
	op := mustGate(t, GateCX, []int{1}, 0)

	err := s.Apply(op)
	if err == nil {
		t.Fatal("expected out-of-range gate to be rejected")
	}
	var replayErr *ReplayError
	if !errors.As(err, &replayErr) {
		t.Fatalf("got %T, want *ReplayError", err)
	}
	if got := s.History().UndoCount(); got != 0 {
		t.Errorf("rejected operation entered the log: applied count = %d", got)
	}
	if len(s.Circuit().Gates) != 0 {
		t.Error("rejected operation mutated the circuit")
	}
}

func TestInsufficientControlsAtConstruction(t *testing.T) {
	_, err := AddGateOp(GateCCX, []int{2}, 0)
	if err == nil {
		t.Fatal("CCX with one control must be rejected")
	}
	var insuff *InsufficientControlsError
	if !errors.As(err, &insuff) {
		t.Fatalf("got %T, want *InsufficientControlsError", err)
	}
	if insuff.Got != 1 || insuff.Want != 2 {
		t.Errorf("got/want = %d/%d, expected 1/2", insuff.Got, insuff.Want)
	}
}

func TestReplayFailureRestoresLog(t *testing.T) {
	var h History
	good := mustGate(t, GateH, []int{0})
	h.Record(good)
	h.Record(mustGate(t, GateX, []int{0}))

	failing := func(c *Circuit, op Operation) error {
		if op.Gate == GateH {
			return fmt.Errorf("injected failure")
		}
		return c.Apply(op)
	}

	_, _, err := h.Undo(NewCircuit, failing)
	var replayErr *ReplayError
	if !errors.As(err, &replayErr) {
		t.Fatalf("got %v, want *ReplayError", err)
	}
	if !replayErr.Op.Equal(good) {
		t.Errorf("ReplayError names %q, want the H gate", replayErr.Op.Describe())
	}
	if h.UndoCount() != 2 {
		t.Errorf("failed replay corrupted the log: applied count = %d, want 2", h.UndoCount())
	}
	if h.RedoCount() != 0 {
		t.Errorf("failed undo pushed onto undone: redo count = %d", h.RedoCount())
	}
}

func TestRedoFailureRestoresStacks(t *testing.T) {
	var h History
	h.Record(mustGate(t, GateH, []int{0}))

	if _, _, err := h.Undo(NewCircuit, (*Circuit).Apply); err != nil {
		t.Fatalf("undo: %v", err)
	}

	alwaysFail := func(*Circuit, Operation) error { return fmt.Errorf("boom") }
	_, _, err := h.Redo(NewCircuit, alwaysFail)
	if err == nil {
		t.Fatal("expected redo to fail")
	}
	if h.UndoCount() != 0 || h.RedoCount() != 1 {
		t.Errorf("failed redo left stacks applied=%d undone=%d, want 0/1", h.UndoCount(), h.RedoCount())
	}
}

func TestUndoAddQubit(t *testing.T) {
	s := NewSession()
	s.Apply(AddQubitOp())
	if s.Circuit().NumQubits != 2 {
		t.Fatalf("NumQubits = %d, want 2", s.Circuit().NumQubits)
	}

	op, err := s.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if op.Kind != OpAddQubit {
		t.Errorf("undo returned %q, want Add Qubit", op.Describe())
	}
	if s.Circuit().NumQubits != 1 || s.Circuit().NumCbits != 1 {
		t.Errorf("circuit not back to initial registers: q=%d c=%d",
			s.Circuit().NumQubits, s.Circuit().NumCbits)
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	s.Apply(AddQubitOp())
	s.Apply(mustGate(t, GateH, []int{0}))
	s.Undo()

	s.Clear()
	if s.History().CanUndo() || s.History().CanRedo() {
		t.Error("clear must empty both stacks")
	}
	if s.Circuit().NumQubits != 1 || len(s.Circuit().Gates) != 0 {
		t.Error("clear must reset the circuit to its initial state")
	}
}
