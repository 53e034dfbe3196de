package tui

import "testing"

func TestAlignSeriesFullHistory(t *testing.T) {
	axis := []float64{0, 1.5, 3, 4.5}
	pts := alignSeries(axis, []float64{10, 20, 30, 40})

	if len(pts) != 4 {
		t.Fatalf("len = %d, want 4", len(pts))
	}
	for i, want := range []float64{10, 20, 30, 40} {
		if pts[i].x != axis[i] || pts[i].y != want {
			t.Errorf("pts[%d] = (%v, %v), want (%v, %v)", i, pts[i].x, pts[i].y, axis[i], want)
		}
	}
}

func TestAlignSeriesLateClient(t *testing.T) {
	// A client with one sample against a five-entry axis: four leading
	// zeros, then the real value at the newest timestamp.
	axis := []float64{0, 1.5, 3, 4.5, 6}
	pts := alignSeries(axis, []float64{42.5})

	if len(pts) != 5 {
		t.Fatalf("len = %d, want 5", len(pts))
	}
	for i := 0; i < 4; i++ {
		if pts[i].x != axis[i] || pts[i].y != 0 {
			t.Errorf("pts[%d] = (%v, %v), want (%v, 0)", i, pts[i].x, pts[i].y, axis[i])
		}
	}
	if pts[4].x != 6 || pts[4].y != 42.5 {
		t.Errorf("pts[4] = (%v, %v), want (6, 42.5)", pts[4].x, pts[4].y)
	}
}

func TestAlignSeriesEmpty(t *testing.T) {
	if pts := alignSeries(nil, nil); len(pts) != 0 {
		t.Fatalf("len = %d, want 0", len(pts))
	}
	// Empty history against a live axis yields all zeros.
	pts := alignSeries([]float64{0, 1}, nil)
	if len(pts) != 2 || pts[0].y != 0 || pts[1].y != 0 {
		t.Fatalf("got %v, want two zero points", pts)
	}
}

func TestAxisSeconds(t *testing.T) {
	secs := axisSeconds([]int64{0, 1500, 3000})
	want := []float64{0, 1.5, 3}
	for i := range want {
		if secs[i] != want[i] {
			t.Errorf("secs[%d] = %v, want %v", i, secs[i], want[i])
		}
	}
}

func TestMakeAxisXSingleSample(t *testing.T) {
	// One sample: the axis is padded forward by one interval and both end
	// labels are present.
	a := makeAxisX([]float64{2}, 1.5)
	if a.lo != 2 || a.hi != 3.5 {
		t.Fatalf("bounds = [%v, %v], want [2, 3.5]", a.lo, a.hi)
	}
	if a.labels[0] != "2.0s" || a.labels[1] != "" || a.labels[2] != "3.5s" {
		t.Errorf("labels = %q", a.labels)
	}
}

func TestMakeAxisXTwoSamples(t *testing.T) {
	// Two samples: start and mid labels, no end label yet.
	a := makeAxisX([]float64{0, 1.5}, 1.5)
	if a.lo != 0 || a.hi != 1.5 {
		t.Fatalf("bounds = [%v, %v], want [0, 1.5]", a.lo, a.hi)
	}
	if a.labels[0] != "0.0s" || a.labels[1] != "1.5s" || a.labels[2] != "" {
		t.Errorf("labels = %q", a.labels)
	}
}

func TestMakeAxisXThreeSamples(t *testing.T) {
	a := makeAxisX([]float64{0, 1.5, 3}, 1.5)
	if a.labels[0] != "0.0s" || a.labels[1] != "1.5s" || a.labels[2] != "3.0s" {
		t.Errorf("labels = %q", a.labels)
	}
}

func TestMemCeilingFloor(t *testing.T) {
	// Tiny values never shrink the scale below 1 KiB.
	got := memCeiling([]point{{0, 10}, {1, 500}})
	if got != 1024 {
		t.Errorf("ceiling = %v, want 1024", got)
	}
}

func TestMemCeilingTracksMax(t *testing.T) {
	got := memCeiling(
		[]point{{0, 2048}, {1, 8192}},
		[]point{{0, 4096}},
	)
	if got != 8192 {
		t.Errorf("ceiling = %v, want 8192", got)
	}
}
