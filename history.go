package main

import (
	"errors"
	"fmt"
	"slices"
)

// Reported conditions for history operations. Both are recoverable and shown
// to the user, never fatal to the session.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// ReplayError reports a recorded operation the model refused during replay.
// The operation log is left exactly as it was before the failing call.
type ReplayError struct {
	Op    Operation
	Cause error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay failed at %q: %v", e.Op.Describe(), e.Cause)
}

func (e *ReplayError) Unwrap() error { return e.Cause }

// Applier maps a recorded operation onto the model. The circuit's Apply
// method satisfies it; tests swap in failing ones.
type Applier func(*Circuit, Operation) error

// History keeps the linear log of edits currently reflected in the live
// circuit (applied, oldest first) and the edits popped off by undo (undone,
// most recently undone last). Undo and redo rebuild the model by replaying
// the applied log from scratch against a fresh circuit: gates are not
// uniformly self-inverse, so reconstruction is traded for per-step cost.
// Fine for interactively built circuits of tens of operations.
type History struct {
	applied []Operation
	undone  []Operation
}

// Record appends an operation the caller has already applied to the live
// model. Any redo future is invalidated.
func (h *History) Record(op Operation) {
	h.applied = append(h.applied, op)
	h.undone = nil
}

// Undo rolls back the most recent operation: it is moved to the undone
// stack and the remaining log is replayed against a fresh model. The
// replayed model and the rolled-back operation are returned. If the replay
// fails the log is restored and no model is returned.
func (h *History) Undo(newModel func() *Circuit, apply Applier) (*Circuit, Operation, error) {
	if len(h.applied) == 0 {
		return nil, Operation{}, ErrNothingToUndo
	}

	op := h.applied[len(h.applied)-1]
	h.applied = h.applied[:len(h.applied)-1]

	model, err := h.replay(newModel, apply)
	if err != nil {
		h.applied = append(h.applied, op)
		return nil, Operation{}, err
	}

	h.undone = append(h.undone, op)
	return model, op, nil
}

// Redo reapplies the most recently undone operation by appending the stored
// value back onto the log and replaying. The stored operation is replayed
// exactly as recorded — rotation angle and control qubits included — rather
// than re-running any interactive selection flow.
func (h *History) Redo(newModel func() *Circuit, apply Applier) (*Circuit, Operation, error) {
	if len(h.undone) == 0 {
		return nil, Operation{}, ErrNothingToRedo
	}

	op := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.applied = append(h.applied, op)

	model, err := h.replay(newModel, apply)
	if err != nil {
		h.applied = h.applied[:len(h.applied)-1]
		h.undone = append(h.undone, op)
		return nil, Operation{}, err
	}

	return model, op, nil
}

// replay rebuilds a model from scratch by reapplying the applied log oldest
// first. The first operation the model refuses aborts the replay.
func (h *History) replay(newModel func() *Circuit, apply Applier) (*Circuit, error) {
	model := newModel()
	for _, op := range h.applied {
		if err := apply(model, op); err != nil {
			return nil, &ReplayError{Op: op, Cause: err}
		}
	}
	return model, nil
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.applied = nil
	h.undone = nil
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool { return len(h.applied) > 0 }

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// UndoCount returns the number of operations in the applied log.
func (h *History) UndoCount() int { return len(h.applied) }

// RedoCount returns the number of undone operations awaiting redo.
func (h *History) RedoCount() int { return len(h.undone) }

// Applied returns a copy of the applied log, oldest first.
func (h *History) Applied() []Operation {
	return slices.Clone(h.applied)
}

// Session binds one history to one circuit. It is the only sanctioned way
// to mutate the circuit: every edit goes through Apply so that the log can
// always reconstruct the live state. Single-threaded; one session owns its
// circuit exclusively.
type Session struct {
	history History
	circuit *Circuit
}

// NewSession returns a session with an empty history and a circuit in the
// canonical initial state.
func NewSession() *Session {
	return &Session{circuit: NewCircuit()}
}

// Circuit returns the live circuit.
func (s *Session) Circuit() *Circuit { return s.circuit }

// History exposes the underlying history for inspection.
func (s *Session) History() *History { return &s.history }

// Apply applies an operation to the live circuit and records it on success.
// An operation the circuit refuses is rejected here and never enters the
// log, so a later replay cannot trip over it.
func (s *Session) Apply(op Operation) error {
	if err := s.circuit.Apply(op); err != nil {
		return &ReplayError{Op: op, Cause: err}
	}
	s.history.Record(op)
	return nil
}

// Undo rolls back the last operation and swaps in the replayed circuit.
func (s *Session) Undo() (Operation, error) {
	model, op, err := s.history.Undo(NewCircuit, (*Circuit).Apply)
	if err != nil {
		return Operation{}, err
	}
	s.circuit = model
	return op, nil
}

// Redo reapplies the last undone operation and swaps in the replayed circuit.
func (s *Session) Redo() (Operation, error) {
	model, op, err := s.history.Redo(NewCircuit, (*Circuit).Apply)
	if err != nil {
		return Operation{}, err
	}
	s.circuit = model
	return op, nil
}

// Clear drops the history and resets the circuit to its initial state.
func (s *Session) Clear() {
	s.history.Clear()
	s.circuit = NewCircuit()
}
