package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qdensity/display"
	"qdensity/gate"
	"qdensity/state"
)

// model is the bubbletea state for qinspect: a fixed circuit and binding,
// a live state.State replayed up to cursorStep gates, and the rendered
// density-matrix block at that point. Adapted from the teacher's Model in
// model.go — the DAG/QASM/menu/focus fields are gone since there is
// nothing to edit here, leaving only the step cursor and viewport
// dimensions.
type model struct {
	circ       gate.Circuit
	binding    gate.Binding
	st         *state.State
	cursorStep int // number of gates from circ.Gates applied so far
	limit      int // Display() block size
	width      int
	height     int
	statusMsg  string
}

func newModel(circ gate.Circuit, binding gate.Binding, seed uint64) model {
	m := model{
		circ:    circ,
		binding: binding,
		st:      state.New(circ.NumQubits, seed),
		limit:   1 << circ.NumQubits,
	}
	if m.limit > 8 {
		m.limit = 8
	}
	return m
}

// replay rebuilds st from scratch and applies circ.Gates[:cursorStep]. Gate
// application isn't generally invertible (noise channels have no inverse),
// so stepping backward replays forward from |0...0> rather than trying to
// undo anything, matching ApplyTerms' non-invertibility elsewhere in this
// codebase.
func (m *model) replay() error {
	m.st = state.New(m.circ.NumQubits, 0)
	for i := 0; i < m.cursorStep; i++ {
		g := m.circ.Gates[i]
		if g.ID == gate.Measure {
			m.st.ApplyMeasure(g.Objs[0])
			continue
		}
		if err := m.st.ApplyGate(g, m.binding, false); err != nil {
			return fmt.Errorf("replaying gate %d: %w", i, err)
		}
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		m.statusMsg = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			if m.cursorStep < len(m.circ.Gates) {
				m.cursorStep++
				if err := m.replay(); err != nil {
					m.statusMsg = err.Error()
				}
			}
		case "left", "h":
			if m.cursorStep > 0 {
				m.cursorStep--
				if err := m.replay(); err != nil {
					m.statusMsg = err.Error()
				}
			}
		case "r":
			m.cursorStep = 0
			if err := m.replay(); err != nil {
				m.statusMsg = err.Error()
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var header strings.Builder
	fmt.Fprintf(&header, "Step %d / %d", m.cursorStep, len(m.circ.Gates))
	if m.statusMsg != "" {
		fmt.Fprintf(&header, "  |  %s", m.statusMsg)
	}

	trace := display.Circuit(m.circ)
	block := m.st.Display(m.limit)
	mat := display.Density(block)

	help := "←→/hl Step  r Reset  q Quit"

	return lipgloss.JoinVertical(lipgloss.Left, header.String(), trace, mat, help)
}
