// Package display renders a density-matrix block and a circuit trace as
// lipgloss-styled terminal tables, adapted from the teacher's
// bubbletea/lipgloss circuit-grid rendering pipeline (render.go, styles.go)
// away from gate-grid cells and onto matrix-entry cells.
package display

import (
	"fmt"
	"strings"

	"qdensity/gate"
)

// padCenter centers s within width visible characters, truncating if s is
// already at least that wide.
func padCenter(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	total := width - len(r)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// formatComplex renders c as "re+imi" to two decimal places, the compact
// form used throughout the cells below.
func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%.2f%s%.2fi", re, sign, im)
}

// Density renders block (typically state.State.Display(limit)'s return
// value) as a bordered table, diagonal entries (populations) bold, off
// diagonal entries (coherences) dim.
func Density(block [][]complex128) string {
	var sb strings.Builder
	n := len(block)

	sb.WriteString(titleStyle.Render("Density matrix"))
	sb.WriteString("\n\n")

	header := strings.Repeat(" ", labelW)
	for c := 0; c < n; c++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("c%d", c), cellW))
	}
	sb.WriteString(header + "\n")

	for r := 0; r < n; r++ {
		row := rowLabelStyle.Render(padCenter(fmt.Sprintf("r%d", r), labelW))
		for c := 0; c < n; c++ {
			cell := padCenter(formatComplex(block[r][c]), cellW)
			if r == c {
				row += diagStyle.Render(cell)
			} else {
				row += offDiagStyle.Render(cell)
			}
		}
		sb.WriteString(row + "\n")
	}

	return panelStyle.Render(sb.String())
}

// Circuit renders a static step-by-step trace of circ: one column per gate,
// one row per qubit, adapted from the teacher's renderCircuitPanel without
// the interactive cursor/highlight machinery (there is no live cursor here,
// only a finished circuit to inspect).
func Circuit(circ gate.Circuit) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit trace"))
	sb.WriteString("\n\n")

	header := strings.Repeat(" ", labelW)
	for step := range circ.Gates {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), stepCellW))
	}
	sb.WriteString(header + "\n")

	for q := 0; q < circ.NumQubits; q++ {
		line := rowLabelStyle.Render(padCenter(fmt.Sprintf("q%d", q), labelW))
		for _, g := range circ.Gates {
			line += renderStepCell(g, q)
		}
		sb.WriteString(line + "\n")
	}

	return panelStyle.Render(sb.String())
}

// renderStepCell returns the step-column glyph for qubit q under gate g:
// the gate's name on its object qubits, a control dot on its control
// qubits, and a plain wire everywhere else.
func renderStepCell(g gate.Record, q int) string {
	for _, ctrl := range g.Ctrls {
		if ctrl == q {
			return gateStyle.Render(padCenter("●", stepCellW))
		}
	}
	for _, obj := range g.Objs {
		if obj == q {
			if g.ID == gate.Measure {
				return measureStyle.Render(padCenter("M", stepCellW))
			}
			return gateStyle.Render(padCenter(g.ID.String(), stepCellW))
		}
	}
	return strings.Repeat("─", stepCellW)
}
