package drm

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"drmtop/internal/telemetry"
)

// readFreqs reads the card's frequency table. amdgpu exposes pp_dpm_sclk as
//
//	0: 300Mhz
//	1: 800Mhz *
//	2: 2100Mhz
//
// where the starred line is the currently requested level. Min and max come
// from the first and last table lines. The measured clock, when the hwmon
// freq sensor exists, becomes ActFreq; otherwise ActFreq tracks CurFreq.
func (c *card) readFreqs() telemetry.FreqInfo {
	var fi telemetry.FreqInfo

	data, err := os.ReadFile(filepath.Join(c.devicePath, "pp_dpm_sclk"))
	if err == nil {
		fi = parseClockTable(string(data))
	}

	fi.ActFreq = fi.CurFreq
	if c.hwmonPath != "" {
		if hz := readUintFile(filepath.Join(c.hwmonPath, "freq1_input")); hz > 0 {
			fi.ActFreq = hz / 1_000_000
		}
	}
	return fi
}

// parseClockTable parses a pp_dpm-style clock level table into MHz values.
func parseClockTable(data string) telemetry.FreqInfo {
	var fi telemetry.FreqInfo
	first := true

	for _, line := range strings.Split(data, "\n") {
		mhz, ok := extractMHz(line)
		if !ok {
			continue
		}
		if first {
			fi.MinFreq = mhz
			first = false
		}
		fi.MaxFreq = mhz
		if strings.Contains(line, "*") {
			fi.CurFreq = mhz
		}
	}

	if fi.CurFreq == 0 {
		fi.CurFreq = fi.MinFreq
	}
	return fi
}

// extractMHz pulls the clock value out of a line like "1: 800Mhz *".
func extractMHz(line string) (uint64, bool) {
	for _, field := range strings.Fields(line) {
		lower := strings.ToLower(field)
		if !strings.HasSuffix(lower, "mhz") {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(lower, "mhz"), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
