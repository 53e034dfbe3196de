package drm

import (
	"bufio"
	"strconv"
	"strings"
)

// memRegion is one memory region from a DRM fdinfo file. Total is the
// allocated size, Resident the part currently backed by pages.
type memRegion struct {
	total    uint64
	resident uint64
}

// fdInfo is the parsed content of one /proc/<pid>/fdinfo/<fd> entry for a
// DRM file descriptor.
type fdInfo struct {
	driver   string
	pdev     string
	clientID uint32
	hasID    bool

	// mem maps region name (vram, gtt, system, cpu, ...) to sizes.
	mem map[string]memRegion

	// engines maps engine name to cumulative busy nanoseconds.
	engines map[string]uint64
}

// parseFDInfo parses the drm-* key/value lines of an fdinfo file. Non-DRM
// lines (pos, flags, mnt_id, ino) are ignored. Returns ok=false when the
// descriptor carries no drm-client-id, i.e. is not a DRM handle.
func parseFDInfo(data []byte) (fdInfo, bool) {
	info := fdInfo{
		mem:     make(map[string]memRegion),
		engines: make(map[string]uint64),
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case key == "drm-driver":
			info.driver = value

		case key == "drm-pdev":
			info.pdev = value

		case key == "drm-client-id":
			id, err := strconv.ParseUint(value, 10, 32)
			if err == nil {
				info.clientID = uint32(id)
				info.hasID = true
			}

		case strings.HasPrefix(key, "drm-total-"):
			region := strings.TrimPrefix(key, "drm-total-")
			if size, ok := parseSize(value); ok {
				r := info.mem[region]
				r.total = size
				info.mem[region] = r
			}

		case strings.HasPrefix(key, "drm-resident-"):
			region := strings.TrimPrefix(key, "drm-resident-")
			if size, ok := parseSize(value); ok {
				r := info.mem[region]
				r.resident = size
				info.mem[region] = r
			}

		// Older kernels expose only drm-memory-<region>, equivalent to
		// drm-total-<region>.
		case strings.HasPrefix(key, "drm-memory-"):
			region := strings.TrimPrefix(key, "drm-memory-")
			if size, ok := parseSize(value); ok {
				r := info.mem[region]
				if size > r.total {
					r.total = size
				}
				info.mem[region] = r
			}

		case strings.HasPrefix(key, "drm-engine-capacity-"):
			// capacity lines share the drm-engine- prefix but are not busy
			// counters

		case strings.HasPrefix(key, "drm-engine-"):
			name := strings.TrimPrefix(key, "drm-engine-")
			if ns, ok := parseEngineNs(value); ok {
				info.engines[name] = ns
			}
		}
	}

	return info, info.hasID
}

// parseSize parses values like "4096 KiB" or "123 bytes" into bytes.
func parseSize(value string) (uint64, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	mult := uint64(1)
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "kib", "kb":
			mult = 1024
		case "mib", "mb":
			mult = 1024 * 1024
		case "gib", "gb":
			mult = 1024 * 1024 * 1024
		}
	}
	return n * mult, true
}

// parseEngineNs parses values like "123456789 ns" into nanoseconds.
func parseEngineNs(value string) (uint64, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// vram returns the dedicated-memory region sizes.
func (f fdInfo) vram() memRegion {
	return f.mem["vram"]
}

// smem sums every non-vram region: system memory reachable by the device
// (gtt, system, cpu, stolen variants).
func (f fdInfo) smem() memRegion {
	var out memRegion
	for region, r := range f.mem {
		if region == "vram" {
			continue
		}
		out.total += r.total
		out.resident += r.resident
	}
	return out
}
