package drm

import "testing"

func TestParseClockTable(t *testing.T) {
	table := "0: 300Mhz\n1: 800Mhz *\n2: 2100Mhz\n"
	fi := parseClockTable(table)

	if fi.MinFreq != 300 || fi.MaxFreq != 2100 || fi.CurFreq != 800 {
		t.Fatalf("parseClockTable = %+v, want min 300 max 2100 cur 800", fi)
	}
}

func TestParseClockTableNoStar(t *testing.T) {
	fi := parseClockTable("0: 500Mhz\n1: 1000Mhz\n")
	if fi.CurFreq != 500 {
		t.Fatalf("cur without star should default to min, got %d", fi.CurFreq)
	}
}

func TestParseClockTableEmpty(t *testing.T) {
	fi := parseClockTable("")
	if fi.MinFreq != 0 || fi.MaxFreq != 0 || fi.CurFreq != 0 {
		t.Fatalf("empty table should zero out, got %+v", fi)
	}
}

func TestExtractMHz(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0: 300Mhz", 300, true},
		{"1: 800Mhz *", 800, true},
		{"2: 2100MHz", 2100, true},
		{"garbage", 0, false},
	}
	for _, tt := range tests {
		got, ok := extractMHz(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("extractMHz(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
