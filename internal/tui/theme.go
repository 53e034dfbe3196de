package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors used by the TUI. Views reference theme fields,
// never raw color values, so the same metric always renders the same color
// across draws.
type Theme struct {
	Fg       lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Title    lipgloss.Color
	Healthy  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color

	// Fixed per-role series colors for the memory charts.
	SmemUsed lipgloss.Color
	SmemRss  lipgloss.Color
	VramUsed lipgloss.Color
	VramRss  lipgloss.Color

	// Frequency chart series.
	FreqReq lipgloss.Color
	FreqAct lipgloss.Color

	// CPU usage chart series.
	CPUGraph lipgloss.Color

	// EnginePalette assigns per-engine series colors. Slots are taken in
	// lexicographic engine-name order, so coloring is reproducible and
	// independent of map iteration order.
	EnginePalette []lipgloss.Color
}

// DefaultTheme returns the default theme using standard terminal colors.
func DefaultTheme() Theme {
	return Theme{
		Fg:       lipgloss.Color("7"),
		Muted:    lipgloss.Color("8"),
		Accent:   lipgloss.Color("14"),
		Title:    lipgloss.Color("13"),
		Healthy:  lipgloss.Color("10"),
		Warning:  lipgloss.Color("11"),
		Critical: lipgloss.Color("9"),

		SmemUsed: lipgloss.Color("12"), // blue
		SmemRss:  lipgloss.Color("10"), // green
		VramUsed: lipgloss.Color("11"), // yellow
		VramRss:  lipgloss.Color("13"), // magenta

		FreqReq: lipgloss.Color("11"),
		FreqAct: lipgloss.Color("12"),

		CPUGraph: lipgloss.Color("10"),

		EnginePalette: []lipgloss.Color{
			lipgloss.Color("14"), // cyan
			lipgloss.Color("13"), // magenta
			lipgloss.Color("12"), // blue
			lipgloss.Color("11"), // yellow
			lipgloss.Color("10"), // green
			lipgloss.Color("9"),  // red
			lipgloss.Color("3"),  // dark yellow
			lipgloss.Color("6"),  // dark cyan
		},
	}
}

// EngineColor returns the palette slot for the i-th engine in
// lexicographic order.
func (t Theme) EngineColor(i int) lipgloss.Color {
	return t.EnginePalette[i%len(t.EnginePalette)]
}

// GaugeColor returns green/yellow/red based on a usage percentage.
func (t Theme) GaugeColor(percent float64) lipgloss.Color {
	switch {
	case percent > 70:
		return t.Critical
	case percent > 30:
		return t.Warning
	default:
		return t.Healthy
	}
}
