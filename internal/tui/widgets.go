package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func mutedStyle(t Theme) lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Muted) }
func accentStyle(t Theme) lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Accent) }
func titleStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

// gauge renders a labelled horizontal usage bar:
//
//	SMEM [||||····] 512M/8G (6.2%)
//
// The fill color follows the usage thresholds.
func gauge(th Theme, label string, pct float64, value string, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	suffix := fmt.Sprintf(" %s (%.1f%%)", value, pct)
	barW := width - len([]rune(label)) - 3 - len([]rune(suffix))
	if barW < 4 {
		barW = 4
	}
	filled := int(pct / 100 * float64(barW))
	if filled > barW {
		filled = barW
	}
	bar := lipgloss.NewStyle().Foreground(th.GaugeColor(pct)).Render(strings.Repeat("|", filled)) +
		mutedStyle(th).Render(strings.Repeat("·", barW-filled))
	return label + " [" + bar + "]" + suffix
}

// cursorRow highlights a row as the current selection.
func cursorRow(row string, w int) string {
	if pad := w - len([]rune(row)); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return lipgloss.NewStyle().Reverse(true).Render(Truncate(row, w))
}

// helpBinding describes a key-label pair for the footer bar.
type helpBinding struct{ Key, Label string }

// renderHelpBar renders the footer key hints.
func renderHelpBar(bindings []helpBinding, w int, t Theme) string {
	dim := mutedStyle(t)
	bright := lipgloss.NewStyle().Foreground(t.Fg)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, bright.Render(b.Key)+" "+dim.Render(b.Label))
	}
	return Truncate(strings.Join(parts, "  "), w)
}

// pageFrame pads or trims content vertically to fill the terminal height.
func pageFrame(content string, termH int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < termH {
		lines = append(lines, "")
	}
	if len(lines) > termH {
		lines = lines[:termH]
	}
	return strings.Join(lines, "\n")
}
