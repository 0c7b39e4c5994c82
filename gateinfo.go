package main

// gateInfo holds the reference text shown in the gate help overlay.
type gateInfo struct {
	description string
	examples    []string
}

var gateInfoTable = map[GateKind]gateInfo{
	GateH: {
		description: "Hadamard gate creates superposition.",
		examples: []string{
			"H|0> = (|0> + |1>)/sqrt(2)",
			"H|1> = (|0> - |1>)/sqrt(2)",
			"Applying H twice returns the qubit to its original state.",
		},
	},
	GateX: {
		description: "Pauli-X gate flips the qubit (quantum NOT).",
		examples: []string{
			"X|0> = |1>",
			"X|1> = |0>",
			"X applied twice returns the qubit to its original state.",
		},
	},
	GateY: {
		description: "Pauli-Y gate rotates about Y, affecting phase and amplitude.",
		examples: []string{
			"Y|0> = i|1>",
			"Y|1> = -i|0>",
		},
	},
	GateZ: {
		description: "Pauli-Z gate flips the relative phase of the qubit.",
		examples: []string{
			"Z|0> = |0>",
			"Z|1> = -|1>",
		},
	},
	GateS: {
		description: "S (phase) gate applies a quarter turn in phase space.",
		examples: []string{
			"S|1> = i|1>",
			"S applied twice is equivalent to Z.",
		},
	},
	GateT: {
		description: "T gate (pi/8 gate) applies an eighth turn in phase space.",
		examples: []string{
			"T applied four times is equivalent to Z.",
			"T is non-Clifford and essential for universal computation.",
		},
	},
	GateRX: {
		description: "Rotation about the X axis by an angle theta.",
		examples: []string{
			"RX(pi)|0> = -i|1>",
			"RX(2*pi)|0> = -|0>",
		},
	},
	GateRY: {
		description: "Rotation about the Y axis by an angle theta.",
		examples: []string{
			"RY(pi)|0> = |1>",
			"RY is used to prepare arbitrary single-qubit states.",
		},
	},
	GateRZ: {
		description: "Rotation about the Z axis by an angle theta.",
		examples: []string{
			"RZ(pi)|1> = e^(i*pi/2)|1>",
			"RZ appears throughout phase estimation and the QFT.",
		},
	},
	GateCX: {
		description: "Controlled-NOT flips the target only if the control is 1.",
		examples: []string{
			"CX|10> = |11>",
			"CX|01> = |01>",
			"CX is the workhorse for creating entanglement.",
		},
	},
	GateCY: {
		description: "Controlled-Y applies Y to the target if the control is 1.",
		examples: []string{
			"CY|10> = i|11>",
		},
	},
	GateCZ: {
		description: "Controlled-Z flips the phase when both qubits are 1.",
		examples: []string{
			"CZ|11> = -|11>",
			"CZ is symmetric in its two qubits.",
		},
	},
	GateSwap: {
		description: "Swap exchanges the states of two qubits.",
		examples: []string{
			"Swap|01> = |10>",
			"Swap|10> = |01>",
		},
	},
	GateCCX: {
		description: "Toffoli (CCX) flips the target only when both controls are 1.",
		examples: []string{
			"CCX|110> = |111>",
			"CCX|111> = |110>",
			"CCX is universal for classical reversible computation.",
		},
	},
	GateMeasure: {
		description: "Measures the qubit into its classical bit, collapsing the state.",
		examples: []string{
			"measure q[i] -> c[i]",
		},
	},
}
