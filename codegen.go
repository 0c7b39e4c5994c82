package main

import (
	"fmt"
	"strings"
)

// ToQASM generates OpenQASM 2.0 for the circuit. Gates are emitted in step
// order, which matches the order the operation log was applied in.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", max(c.NumQubits, 1))
	fmt.Fprintf(&sb, "creg c[%d];\n\n", max(c.NumCbits, 1))

	for step := range c.MaxSteps {
		for _, gate := range c.Gates {
			if gate.Step != step {
				continue
			}
			writeQASMGate(&sb, gate)
		}
	}

	return sb.String()
}

func writeQASMGate(sb *strings.Builder, gate PlacedGate) {
	switch gate.Kind {
	case GateMeasure:
		fmt.Fprintf(sb, "measure q[%d] -> c[%d];\n", gate.Target, gate.Target)
	case GateCX, GateCY, GateCZ, GateSwap:
		name := strings.ToLower(gate.Kind.String())
		fmt.Fprintf(sb, "%s q[%d], q[%d];\n", name, gate.Controls[0], gate.Target)
	case GateCCX:
		fmt.Fprintf(sb, "ccx q[%d], q[%d], q[%d];\n", gate.Controls[0], gate.Controls[1], gate.Target)
	case GateRX, GateRY, GateRZ:
		name := strings.ToLower(gate.Kind.String())
		fmt.Fprintf(sb, "%s(%s) q[%d];\n", name, formatParam(gate.Param), gate.Target)
	default:
		fmt.Fprintf(sb, "%s q[%d];\n", strings.ToLower(gate.Kind.String()), gate.Target)
	}
}

// GenerateQiskit renders a runnable Qiskit script that rebuilds and
// simulates the circuit from its QASM form.
func (c *Circuit) GenerateQiskit() string {
	var sb strings.Builder
	sb.WriteString("# Generated Qiskit Code\n\n")
	sb.WriteString("from qiskit import QuantumCircuit, transpile\n")
	sb.WriteString("from qiskit_aer import AerSimulator\n")
	sb.WriteString("from qiskit.visualization import plot_histogram\n")
	sb.WriteString("import matplotlib.pyplot as plt\n\n")

	sb.WriteString("qasm_str = \"\"\"\n")
	sb.WriteString(c.ToQASM())
	sb.WriteString("\"\"\"\n")
	sb.WriteString("qc = QuantumCircuit.from_qasm_str(qasm_str)\n\n")

	sb.WriteString("qc.draw(output='mpl', fold=90)\n")
	sb.WriteString("plt.show()\n\n")

	sb.WriteString("simulator = AerSimulator()\n")
	if c.HasMeasurement() {
		sb.WriteString("compiled = transpile(qc, simulator)\n")
		sb.WriteString("result = simulator.run(compiled, shots=1024).result()\n")
		sb.WriteString("counts = result.get_counts()\n")
		sb.WriteString("print(counts)\n")
		sb.WriteString("plot_histogram(counts)\n")
		sb.WriteString("plt.show()\n")
	} else {
		sb.WriteString("qc.save_statevector()\n")
		sb.WriteString("compiled = transpile(qc, simulator)\n")
		sb.WriteString("result = simulator.run(compiled).result()\n")
		sb.WriteString("print(result.get_statevector())\n")
	}

	return sb.String()
}
