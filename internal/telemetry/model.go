package telemetry

// DeviceMemInfo is one tick of device-level memory stats. Smem is system
// memory visible to the device (GTT on amdgpu); Vram is dedicated memory.
// The Rss fields aggregate the resident sizes of the device's clients.
type DeviceMemInfo struct {
	SmemUsed  uint64 `json:"smem_used"`
	SmemTotal uint64 `json:"smem_total"`
	SmemRss   uint64 `json:"smem_rss"`
	VramUsed  uint64 `json:"vram_used"`
	VramTotal uint64 `json:"vram_total"`
	VramRss   uint64 `json:"vram_rss"`
}

// FreqInfo is one tick of device frequency stats, all in MHz.
// CurFreq is the requested clock, ActFreq the measured one.
type FreqInfo struct {
	MinFreq uint64 `json:"min_freq"`
	MaxFreq uint64 `json:"max_freq"`
	CurFreq uint64 `json:"cur_freq"`
	ActFreq uint64 `json:"act_freq"`
}

// ClientMemInfo is one tick of per-client memory stats. Used is the total
// allocated size, Rss the resident part.
type ClientMemInfo struct {
	SmemUsed uint64 `json:"smem_used"`
	SmemRss  uint64 `json:"smem_rss"`
	VramUsed uint64 `json:"vram_used"`
	VramRss  uint64 `json:"vram_rss"`
}

// ClientKey identifies a DRM client across refresh ticks. A process can
// hold several handles to the same device, so the pid alone is not enough:
// the (pci device, pid, drm minor, client id) tuple is the stable handle.
type ClientKey struct {
	PCIDev   string `json:"pci_dev"`
	PID      uint32 `json:"pid"`
	DRMMinor uint32 `json:"drm_minor"`
	ClientID uint32 `json:"client_id"`
}

// ClientStats is the tracked state of one DRM client. Histories are
// appended each tick the client persists; the sampler guarantees at least
// one sample in every history for any listed client.
type ClientStats struct {
	PID      uint32
	DRMMinor uint32
	ClientID uint32
	Comm     string
	Cmdline  string
	Active   bool

	MemInfo  *History[ClientMemInfo]
	EngUsage map[string]*History[float64]
	CPUUsage *History[float64]
}

// Key returns the client's identity tuple on the given device.
func (c *ClientStats) Key(pciDev string) ClientKey {
	return ClientKey{PCIDev: pciDev, PID: c.PID, DRMMinor: c.DRMMinor, ClientID: c.ClientID}
}

// DeviceState is the tracked state of one GPU device, keyed by PCI slot.
type DeviceState struct {
	PCIDev    string
	DrvName   string
	DevType   string
	DevNodes  string
	VdrDevRev string

	// EngNames is the ordered union of engine names ever observed on this
	// device or its clients, sorted lexicographically.
	EngNames []string

	MemInfo *History[DeviceMemInfo]
	Freqs   *History[FreqInfo]

	// Clients in the order the latest snapshot listed them. Absent clients
	// are simply not in the list; nothing is deleted explicitly.
	Clients []*ClientStats
}

// Client returns the live client matching key, or nil.
func (d *DeviceState) Client(key ClientKey) *ClientStats {
	if key.PCIDev != d.PCIDev {
		return nil
	}
	for _, c := range d.Clients {
		if c.PID == key.PID && c.DRMMinor == key.DRMMinor && c.ClientID == key.ClientID {
			return c
		}
	}
	return nil
}

// DeviceSample is one refresh tick worth of device telemetry produced by a
// Sampler.
type DeviceSample struct {
	PCIDev    string
	DrvName   string
	DevType   string
	DevNodes  string
	VdrDevRev string

	Mem     DeviceMemInfo
	Freq    FreqInfo
	Clients []ClientSample
}

// ClientSample is one refresh tick worth of client telemetry.
type ClientSample struct {
	PID      uint32
	DRMMinor uint32
	ClientID uint32
	Comm     string
	Cmdline  string
	Active   bool

	Mem      ClientMemInfo
	EngUsage map[string]float64
	CPUUsage float64
}

// Sampler produces telemetry snapshots. Implementations own whatever
// previous-counter state delta computations need; Sample is only called
// from the poll loop, one call per tick.
type Sampler interface {
	Sample() ([]DeviceSample, error)
}
