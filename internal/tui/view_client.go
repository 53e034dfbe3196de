package tui

import (
	"fmt"
	"slices"
	"strings"

	"drmtop/internal/telemetry"
)

// viewClient renders the client detail screen: the identity header, the
// scrollable command line and the selected stats chart. The selection is
// re-resolved against the live client list on every draw; a client that
// vanished renders a notice instead, and comes back on its own if the
// same identity reappears.
func (a *App) viewClient() string {
	dev := a.store.Device(a.selected.PCIDev)
	var cli *telemetry.ClientStats
	if dev != nil {
		cli = dev.Client(a.selected)
	}
	if cli == nil {
		return "\n " + accentStyle(a.theme).Render(
			">>> This DRM client doesn't exist anymore (process ended or DRM fd closed) <<<")
	}

	var b strings.Builder
	b.WriteString(a.renderClientHeader(cli))
	b.WriteByte('\n')
	b.WriteString(a.renderCommand(cli))
	b.WriteByte('\n')
	b.WriteString(a.renderStatsChart(dev, cli))
	return b.String()
}

func (a *App) renderClientHeader(cli *telemetry.ClientStats) string {
	th := a.theme
	name := titleStyle(th).Render(cli.Comm)
	meta := fmt.Sprintf("PID: %d  DEV: %s  MINOR: %d  CLIENT ID: %d",
		cli.PID, a.selected.PCIDev, cli.DRMMinor, cli.ClientID)
	return " " + name + "\n " + mutedStyle(th).Render(Truncate(meta, a.width-1))
}

// renderCommand shows the full command line, horizontally scrollable since
// it routinely exceeds the terminal width.
func (a *App) renderCommand(cli *telemetry.ClientStats) string {
	cmd := cli.Cmdline
	if cmd == "" {
		cmd = cli.Comm
	}
	w := a.width - 11
	a.cmdScroll.clamp(len([]rune(cmd)), w, 0, 0)
	return " COMMAND: " + Truncate(shiftLeft(cmd, a.cmdScroll.x), w)
}

// renderStatsChart draws the chart for the currently resolved category.
func (a *App) renderStatsChart(dev *telemetry.DeviceState, cli *telemetry.ClientStats) string {
	th := a.theme
	cat := a.category.resolve(len(cli.EngUsage) > 0)

	secs := axisSeconds(a.store.Timestamps())
	x := makeAxisX(secs, a.opts.Interval.Seconds())

	var (
		ss   []series
		yMin float64
		yMax float64
		yFmt func(float64) string
	)

	switch cat {
	case catMemInfo:
		mems := cli.MemInfo.Data()
		pick := func(f func(telemetry.ClientMemInfo) uint64) []float64 {
			out := make([]float64, len(mems))
			for i, m := range mems {
				out[i] = float64(f(m))
			}
			return out
		}
		ss = []series{
			{name: "SMEM Used", color: th.SmemUsed, points: alignSeries(secs, pick(func(m telemetry.ClientMemInfo) uint64 { return m.SmemUsed }))},
			{name: "SMEM Rss", color: th.SmemRss, points: alignSeries(secs, pick(func(m telemetry.ClientMemInfo) uint64 { return m.SmemRss }))},
			{name: "VRAM Used", color: th.VramUsed, points: alignSeries(secs, pick(func(m telemetry.ClientMemInfo) uint64 { return m.VramUsed }))},
			{name: "VRAM Rss", color: th.VramRss, points: alignSeries(secs, pick(func(m telemetry.ClientMemInfo) uint64 { return m.VramRss }))},
		}
		yMax = memCeiling(ss[0].points, ss[1].points, ss[2].points, ss[3].points)
		yFmt = func(v float64) string { return shortMem(uint64(v)) }

	case catEngines:
		names := make([]string, 0, len(cli.EngUsage))
		for name := range cli.EngUsage {
			names = append(names, name)
		}
		slices.Sort(names)
		for i, name := range names {
			ss = append(ss, series{
				name:   name,
				color:  th.EngineColor(i),
				points: alignSeries(secs, cli.EngUsage[name].Data()),
			})
		}
		yMax = 100
		yFmt = func(v float64) string { return fmt.Sprintf("%.0f%%", v) }

	case catCPU:
		ss = []series{{name: "CPU", color: th.CPUGraph, points: alignSeries(secs, cli.CPUUsage.Data())}}
		yMax = 100
		yFmt = func(v float64) string { return fmt.Sprintf("%.0f%%", v) }
	}

	header := " " + a.renderCategoryTabs(cat) + "  " + legendLine(ss)
	chartH := a.height - 7
	if chartH < 4 {
		chartH = 4
	}
	body := renderChart(th, a.width-1, chartH, x, yMin, yMax, yFmt, ss)
	return Truncate(header, a.width) + "\n" + body
}

func (a *App) renderCategoryTabs(cur chartCategory) string {
	th := a.theme
	parts := make([]string, 0, int(numCategories))
	for c := catMemInfo; c < numCategories; c++ {
		label := " " + c.String() + " "
		if c == cur {
			parts = append(parts, accentStyle(th).Reverse(true).Render(label))
		} else {
			parts = append(parts, mutedStyle(th).Render(label))
		}
	}
	return strings.Join(parts, "")
}
