package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// series is one named line on a chart.
type series struct {
	name   string
	color  lipgloss.Color
	points []point
}

// Braille dot bit positions, indexed by [row%4] for the left and right
// dot column of a cell.
var (
	leftColBits  = [4]rune{0x01, 0x02, 0x04, 0x40}
	rightColBits = [4]rune{0x08, 0x10, 0x20, 0x80}
)

const brailleBase = 0x2800

// renderChart draws a multi-series line chart into a width x height cell
// block using braille dots, with a y-label gutter on the left and an
// x-label row at the bottom. Later series draw over earlier ones where
// they share a cell.
func renderChart(th Theme, width, height int, x axisX, yMin, yMax float64, yFmt func(float64) string, ss []series) string {
	yLabels := [3]string{yFmt(yMax), yFmt((yMin + yMax) / 2), yFmt(yMin)}
	gutter := 0
	for _, l := range yLabels {
		if len(l) > gutter {
			gutter = len(l)
		}
	}
	gutter++

	plotW := width - gutter
	plotH := height - 1
	if plotW < 2 || plotH < 1 {
		return ""
	}

	dotsW, dotsH := plotW*2, plotH*4
	glyphs := make([][]rune, plotH)
	colors := make([][]lipgloss.Color, plotH)
	for r := range glyphs {
		glyphs[r] = make([]rune, plotW)
		colors[r] = make([]lipgloss.Color, plotW)
	}

	set := func(col, row int, c lipgloss.Color) {
		if col < 0 || col >= dotsW || row < 0 || row >= dotsH {
			return
		}
		cr, cc := row/4, col/2
		var bit rune
		if col%2 == 0 {
			bit = leftColBits[row%4]
		} else {
			bit = rightColBits[row%4]
		}
		glyphs[cr][cc] |= bit
		colors[cr][cc] = c
	}

	xSpan := x.hi - x.lo
	ySpan := yMax - yMin
	if xSpan <= 0 {
		xSpan = 1
	}
	if ySpan <= 0 {
		ySpan = 1
	}
	toCol := func(v float64) int {
		return int(math.Round((v - x.lo) / xSpan * float64(dotsW-1)))
	}
	toRow := func(v float64) int {
		if v < yMin {
			v = yMin
		}
		if v > yMax {
			v = yMax
		}
		return dotsH - 1 - int(math.Round((v-yMin)/ySpan*float64(dotsH-1)))
	}

	for _, s := range ss {
		pts := s.points
		if len(pts) == 1 {
			set(toCol(pts[0].x), toRow(pts[0].y), s.color)
			continue
		}
		for i := 1; i < len(pts); i++ {
			c0, c1 := toCol(pts[i-1].x), toCol(pts[i].x)
			for col := c0; col <= c1; col++ {
				frac := 0.0
				if c1 > c0 {
					frac = float64(col-c0) / float64(c1-c0)
				}
				y := pts[i-1].y + (pts[i].y-pts[i-1].y)*frac
				set(col, toRow(y), s.color)
			}
		}
	}

	muted := lipgloss.NewStyle().Foreground(th.Muted)

	var b strings.Builder
	for r := 0; r < plotH; r++ {
		label := ""
		switch r {
		case 0:
			label = yLabels[0]
		case plotH / 2:
			label = yLabels[1]
		case plotH - 1:
			label = yLabels[2]
		}
		b.WriteString(muted.Render(rightAlign(label, gutter-1)))
		b.WriteByte(' ')
		for c := 0; c < plotW; c++ {
			g := glyphs[r][c]
			if g == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(colors[r][c]).Render(string(brailleBase + g)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", gutter))
	b.WriteString(muted.Render(xLabelRow(plotW, x.labels)))
	return b.String()
}

// xLabelRow lays the left, center and right axis labels out on one line.
func xLabelRow(width int, labels [3]string) string {
	row := []rune(strings.Repeat(" ", width))
	place := func(s string, at int) {
		r := []rune(s)
		if at < 0 {
			at = 0
		}
		for i, ch := range r {
			if at+i >= len(row) {
				break
			}
			row[at+i] = ch
		}
	}
	place(labels[0], 0)
	if labels[1] != "" {
		place(labels[1], (width-len([]rune(labels[1])))/2)
	}
	if labels[2] != "" {
		place(labels[2], width-len([]rune(labels[2])))
	}
	return string(row)
}

// legendLine renders the chart legend, one colored marker per series.
func legendLine(ss []series) string {
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		marker := lipgloss.NewStyle().Foreground(s.color).Render("▪")
		parts = append(parts, marker+" "+s.name)
	}
	return strings.Join(parts, "  ")
}
