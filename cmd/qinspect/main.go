// Command qinspect is an optional interactive viewer that steps a fixed
// circuit forward and backward against a live qdensity state, showing the
// density matrix as it evolves. Adapted from the teacher's step-cursor
// circuit editor, with the QASM/menu editing machinery stripped out: this
// tool only inspects an already-built circuit, it does not build one.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"qdensity/gate"
)

func demoCircuit(theta float64) (gate.Circuit, gate.Binding) {
	e := gate.Param("theta")
	circ := gate.Circuit{
		NumQubits: 2,
		Gates: []gate.Record{
			{ID: gate.H, Objs: []int{0}},
			{ID: gate.CNOT, Objs: []int{1}, Ctrls: []int{0}},
			{ID: gate.RX, Objs: []int{1}, Expr: &e},
			{ID: gate.Measure, Objs: []int{0}, Name: "m0"},
			{ID: gate.Measure, Objs: []int{1}, Name: "m1"},
		},
	}
	binding := gate.NewBinding(map[string]float64{"theta": theta})
	return circ, binding
}

func main() {
	thetaFlag := flag.String("theta", "pi/4", "RX angle on qubit 1, as a number or a pi expression (pi/2, 3*pi/4, -pi)")
	flag.Parse()

	theta, ok := gate.ParseAngleExpr(*thetaFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "qinspect: invalid -theta %q\n", *thetaFlag)
		os.Exit(1)
	}

	circ, binding := demoCircuit(theta)
	p := tea.NewProgram(newModel(circ, binding, 1), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qinspect:", err)
		os.Exit(1)
	}
}
