package main

import "fmt"

// PlacedGate is a gate positioned on the circuit grid.
type PlacedGate struct {
	Kind     GateKind
	Target   int
	Controls []int // empty for single-qubit gates
	Param    float64
	HasParam bool
	Step     int // position in circuit timeline
}

// references reports whether the gate touches the given qubit.
func (g PlacedGate) references(qubit int) bool {
	if g.Target == qubit {
		return true
	}
	for _, c := range g.Controls {
		if c == qubit {
			return true
		}
	}
	return false
}

// span returns the inclusive qubit range the gate occupies visually.
func (g PlacedGate) span() (lo, hi int) {
	lo, hi = g.Target, g.Target
	for _, c := range g.Controls {
		lo, hi = min(lo, c), max(hi, c)
	}
	return lo, hi
}

// Circuit is the live circuit model the history replays against. It starts
// with one qubit register and one classical bit register and grows only
// through Apply.
type Circuit struct {
	NumQubits int
	NumCbits  int
	Gates     []PlacedGate
	MaxSteps  int
}

// NewCircuit returns a circuit in the canonical initial state:
// one qubit, one classical bit, no gates.
func NewCircuit() *Circuit {
	return &Circuit{NumQubits: 1, NumCbits: 1}
}

// AddQubit appends one qubit+classical-bit pair. Indices are sequential.
func (c *Circuit) AddQubit() {
	c.NumQubits++
	c.NumCbits++
}

// Apply dispatches a recorded operation against the circuit. Qubit-index
// bounds and target/control overlap are validated here; gate-name and
// control-arity problems cannot reach this point because the operation
// constructors reject them.
func (c *Circuit) Apply(op Operation) error {
	switch op.Kind {
	case OpAddQubit:
		c.AddQubit()
		return nil
	case OpAddGate:
		return c.applyGate(op)
	default:
		return fmt.Errorf("unsupported operation kind %d", op.Kind)
	}
}

func (c *Circuit) applyGate(op Operation) error {
	if len(op.Targets) == 0 {
		return fmt.Errorf("%s gate has no target qubit", op.Gate)
	}

	seen := make(map[int]bool)
	for _, q := range op.Targets {
		if q < 0 || q >= c.NumQubits {
			return fmt.Errorf("qubit index %d out of range (circuit has %d qubit(s))", q, c.NumQubits)
		}
		if seen[q] {
			return fmt.Errorf("qubit %d used twice by %s gate", q, op.Gate)
		}
		seen[q] = true
	}
	for _, q := range op.Controls {
		if q < 0 || q >= c.NumQubits {
			return fmt.Errorf("control qubit index %d out of range (circuit has %d qubit(s))", q, c.NumQubits)
		}
		if seen[q] {
			return fmt.Errorf("qubit %d used twice by %s gate", q, op.Gate)
		}
		seen[q] = true
	}

	touched := make([]int, 0, len(op.Targets)+len(op.Controls))
	touched = append(touched, op.Targets...)
	touched = append(touched, op.Controls...)

	step := c.earliestFreeStep(touched)
	for _, target := range op.Targets {
		c.Gates = append(c.Gates, PlacedGate{
			Kind:     op.Gate,
			Target:   target,
			Controls: op.Controls,
			Param:    op.Param,
			HasParam: op.HasParam,
			Step:     step,
		})
	}
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
	return nil
}

// earliestFreeStep returns the first step where every listed qubit is free.
// Gates spanning a qubit range also block the qubits between control and
// target so wires never cross through an occupied cell.
func (c *Circuit) earliestFreeStep(qubits []int) int {
	step := 0
	for _, g := range c.Gates {
		lo, hi := g.span()
		for _, q := range qubits {
			if q >= lo && q <= hi && g.Step >= step {
				step = g.Step + 1
			}
		}
	}
	return step
}

// GateAt returns the gate at the given step touching the given qubit, or nil.
func (c *Circuit) GateAt(step, qubit int) *PlacedGate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.references(qubit) {
			return g
		}
	}
	return nil
}

// MeasureAtStep returns the qubit measured at the given step, or -1.
// Used to draw the double-line drop to the classical wire.
func (c *Circuit) MeasureAtStep(step int) int {
	for _, g := range c.Gates {
		if g.Step == step && g.Kind == GateMeasure {
			return g.Target
		}
	}
	return -1
}

// HasMeasurement reports whether any measurement exists on the circuit.
func (c *Circuit) HasMeasurement() bool {
	for _, g := range c.Gates {
		if g.Kind == GateMeasure {
			return true
		}
	}
	return false
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate         *PlacedGate
	isControl    bool
	isTarget     bool
	vertAbove    bool
	vertBelow    bool
	passThrough  bool
	measureBelow bool
}

// cellAt returns rendering information for the cell at (step, qubit).
func (c *Circuit) cellAt(step, qubit int) cellInfo {
	var info cellInfo

	if gate := c.GateAt(step, qubit); gate != nil {
		info.gate = gate
		for _, ctrl := range gate.Controls {
			if ctrl == qubit {
				info.isControl = true
				break
			}
		}
		if !info.isControl && gate.Target == qubit && len(gate.Controls) > 0 {
			info.isTarget = true
		}
	}

	// Vertical connectors for multi-qubit gates spanning this qubit.
	for _, g := range c.Gates {
		if g.Step != step || len(g.Controls) == 0 {
			continue
		}
		lo, hi := g.span()
		if qubit >= lo && qubit <= hi {
			if qubit > lo {
				info.vertAbove = true
			}
			if qubit < hi {
				info.vertBelow = true
			}
			if qubit > lo && qubit < hi && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	// Measurement drop lines down to the classical wire.
	if measured := c.MeasureAtStep(step); measured >= 0 && qubit > measured {
		info.measureBelow = true
	}

	return info
}
