package tui

import "fmt"

// point is a single chart sample.
type point struct {
	x, y float64
}

// alignSeries pairs a metric history with the shared time axis. A client
// that joined late has fewer samples than the axis has entries; its
// missing leading samples render as zeros so every series spans the full
// axis and later points line up across clients.
func alignSeries(axis []float64, hist []float64) []point {
	n := len(axis)
	l := len(hist)
	if l > n {
		hist = hist[l-n:]
		l = n
	}
	pts := make([]point, n)
	lead := n - l
	for i := 0; i < lead; i++ {
		pts[i] = point{x: axis[i]}
	}
	for i := lead; i < n; i++ {
		pts[i] = point{x: axis[i], y: hist[i-lead]}
	}
	return pts
}

// axisSeconds converts the store's millisecond timestamps to seconds.
func axisSeconds(ms []int64) []float64 {
	secs := make([]float64, len(ms))
	for i, v := range ms {
		secs[i] = float64(v) / 1000.0
	}
	return secs
}

// axisX describes the horizontal extent and tick labels of a chart.
type axisX struct {
	lo, hi float64
	labels [3]string // left, center, right; empty when absent
}

// makeAxisX derives chart bounds and labels from the time axis. With a
// single sample the axis is padded forward by one refresh interval so the
// chart has nonzero width from the very first draw.
func makeAxisX(secs []float64, intervalSecs float64) axisX {
	var a axisX
	switch n := len(secs); {
	case n == 0:
		a.hi = intervalSecs
		a.labels[0] = fmtSecs(0)
		a.labels[2] = fmtSecs(intervalSecs)
	case n == 1:
		a.lo = secs[0]
		a.hi = secs[0] + intervalSecs
		a.labels[0] = fmtSecs(a.lo)
		a.labels[2] = fmtSecs(a.hi)
	default:
		a.lo = secs[0]
		a.hi = secs[n-1]
		a.labels[0] = fmtSecs(a.lo)
		a.labels[1] = fmtSecs(secs[n/2])
		if n >= 3 {
			a.labels[2] = fmtSecs(a.hi)
		}
	}
	return a
}

func fmtSecs(v float64) string {
	return fmt.Sprintf("%.1fs", v)
}

// memCeiling returns the y-axis maximum for a memory chart: the largest
// value in any of the series, floored at 1 KiB so an idle client still
// gets a usable scale.
func memCeiling(series ...[]point) float64 {
	ceil := float64(1024)
	for _, s := range series {
		for _, p := range s {
			if p.y > ceil {
				ceil = p.y
			}
		}
	}
	return ceil
}
