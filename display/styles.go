package display

import "github.com/charmbracelet/lipgloss"

// Layout constants, adapted from the teacher's circuit-grid cell widths to
// matrix-entry cells: one complex amplitude per cell instead of one gate.
const (
	cellW     = 13 // width of each matrix-entry column in characters
	labelW    = 6  // visual width of the row-index label area
	stepCellW = 11 // width of each circuit-trace step column
)

// Lipgloss styles, adapted from the teacher's TUI palette.
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	diagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	offDiagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	rowLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bb9af7"))

	measureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))
)
