package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"drmtop/internal/telemetry"
)

// viewDevice renders the device screen: the tab bar, the device summary,
// the frequency chart and the client table.
func (a *App) viewDevice() string {
	devs := a.store.Devices()
	if len(devs) == 0 {
		return a.notice("No DRM GPU devices found")
	}

	dev := a.store.Device(a.tabs.current())
	if dev == nil {
		return a.notice(fmt.Sprintf("No DRM GPU device at PCI slot %s", a.tabs.current()))
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteByte('\n')
	b.WriteString(a.renderDeviceInfo(dev))
	b.WriteByte('\n')
	b.WriteString(a.renderDeviceMem(dev))
	b.WriteByte('\n')
	b.WriteString(a.renderFreqChart(dev))
	b.WriteByte('\n')
	b.WriteString(a.renderClientTable(dev))
	return b.String()
}

func (a *App) notice(msg string) string {
	return "\n " + mutedStyle(a.theme).Render(msg)
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(a.tabs.slots))
	for i, slot := range a.tabs.slots {
		label := " " + slot + " "
		if i == a.tabs.sel {
			parts = append(parts, accentStyle(a.theme).Reverse(true).Render(label))
		} else {
			parts = append(parts, mutedStyle(a.theme).Render(label))
		}
	}
	return strings.Join(parts, "")
}

func (a *App) renderDeviceInfo(dev *telemetry.DeviceState) string {
	th := a.theme
	name := titleStyle(th).Render(Truncate(dev.VdrDevRev, a.width-1))
	meta := fmt.Sprintf("DRIVER: %s  TYPE: %s  NODES: %s", dev.DrvName, dev.DevType, dev.DevNodes)
	return " " + name + "\n " + mutedStyle(th).Render(Truncate(meta, a.width-1))
}

func (a *App) renderDeviceMem(dev *telemetry.DeviceState) string {
	mem, ok := dev.MemInfo.Latest()
	if !ok {
		return ""
	}
	w := a.width - 2
	smem := gauge(a.theme, "SMEM", usagePct(mem.SmemUsed, mem.SmemTotal),
		shortMem(mem.SmemUsed)+"/"+shortMem(mem.SmemTotal), w)
	vram := gauge(a.theme, "VRAM", usagePct(mem.VramUsed, mem.VramTotal),
		shortMem(mem.VramUsed)+"/"+shortMem(mem.VramTotal), w)
	return " " + smem + "\n " + vram
}

func usagePct(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

// renderFreqChart draws requested and actual clocks over the shared time
// axis, bounded by the device's min and max clock.
func (a *App) renderFreqChart(dev *telemetry.DeviceState) string {
	th := a.theme
	secs := axisSeconds(a.store.Timestamps())
	x := makeAxisX(secs, a.opts.Interval.Seconds())

	freqs := dev.Freqs.Data()
	req := make([]float64, len(freqs))
	act := make([]float64, len(freqs))
	var lo, hi float64
	for i, f := range freqs {
		req[i] = float64(f.CurFreq)
		act[i] = float64(f.ActFreq)
		lo = float64(f.MinFreq)
		hi = float64(f.MaxFreq)
	}
	if hi <= lo {
		hi = lo + 1
	}

	ss := []series{
		{name: "Requested", color: th.FreqReq, points: alignSeries(secs, req)},
		{name: "Actual", color: th.FreqAct, points: alignSeries(secs, act)},
	}

	chartH := a.freqChartHeight()
	title := titleStyle(th).Render("FREQ") + "  " + legendLine(ss)
	body := renderChart(th, a.width-1, chartH, x, lo, hi,
		func(v float64) string { return fmt.Sprintf("%.0fMHz", v) }, ss)
	return " " + title + "\n" + body
}

func (a *App) freqChartHeight() int {
	h := (a.height - 10) / 3
	if h < 4 {
		h = 4
	}
	return h
}

// visibleClients applies the active-only filter used by the client table.
func (a *App) visibleClients(dev *telemetry.DeviceState) []*telemetry.ClientStats {
	if a.opts.AllClients {
		return dev.Clients
	}
	out := make([]*telemetry.ClientStats, 0, len(dev.Clients))
	for _, c := range dev.Clients {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

// renderClientTable renders the per-client rows with the engine usage
// columns in the device's engine order.
func (a *App) renderClientTable(dev *telemetry.DeviceState) string {
	th := a.theme
	clients := a.visibleClients(dev)

	header := fmt.Sprintf(" %7s %6s %6s", "PID", "SMEM", "VRAM")
	for _, eng := range dev.EngNames {
		header += fmt.Sprintf(" %6s", strings.ToUpper(Truncate(eng, 6)))
	}
	header += fmt.Sprintf(" %6s  %s", "CPU", "COMMAND")

	viewH := a.clientTableHeight()
	if a.cursor >= len(clients) {
		a.cursor = len(clients) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	// Content size is recomputed every draw: rows and command strings
	// change between ticks.
	rows := make([]string, len(clients))
	contentW := len([]rune(header))
	for i, c := range clients {
		rows[i] = a.clientRow(dev, c)
		if w := len([]rune(rows[i])); w > contentW {
			contentW = w
		}
	}
	a.listScroll.clamp(contentW, a.width, len(clients), viewH)
	if a.cursor < a.listScroll.y {
		a.listScroll.y = a.cursor
	}
	if a.cursor >= a.listScroll.y+viewH {
		a.listScroll.y = a.cursor - viewH + 1
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(th.Fg).Bold(true).Render(
		Truncate(shiftLeft(header, a.listScroll.x), a.width)))
	b.WriteByte('\n')

	end := a.listScroll.y + viewH
	if end > len(clients) {
		end = len(clients)
	}
	for i := a.listScroll.y; i < end; i++ {
		row := shiftLeft(rows[i], a.listScroll.x)
		if i == a.cursor {
			b.WriteString(cursorRow(row, a.width))
		} else {
			b.WriteString(Truncate(row, a.width))
		}
		b.WriteByte('\n')
	}
	if len(clients) == 0 {
		b.WriteString(mutedStyle(th).Render("  no active clients"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (a *App) clientTableHeight() int {
	h := a.height - a.freqChartHeight() - 9
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) clientRow(dev *telemetry.DeviceState, c *telemetry.ClientStats) string {
	mem, _ := c.MemInfo.Latest()
	row := fmt.Sprintf(" %7d %6s %6s", c.PID, shortMem(mem.SmemUsed), shortMem(mem.VramUsed))
	for _, eng := range dev.EngNames {
		if h := c.EngUsage[eng]; h != nil {
			if v, ok := h.Latest(); ok {
				row += fmt.Sprintf(" %5.1f%%", v)
				continue
			}
		}
		row += fmt.Sprintf(" %6s", "-")
	}
	cpu, _ := c.CPUUsage.Latest()
	cmd := c.Cmdline
	if cmd == "" {
		cmd = c.Comm
	}
	row += fmt.Sprintf(" %5.1f%%  %s", cpu, cmd)
	return row
}
