package telemetry

// Snapshot is the serializable full state of the store: the timestamp axis
// plus every device with its complete histories. One Snapshot is appended
// per tick by the persistence sinks.
type Snapshot struct {
	TimestampsMs []int64          `json:"timestamps_ms"`
	Devices      []DeviceSnapshot `json:"devs_state"`
}

type DeviceSnapshot struct {
	PCIDev    string           `json:"pci_dev"`
	DrvName   string           `json:"drv_name"`
	DevType   string           `json:"dev_type"`
	DevNodes  string           `json:"dev_nodes"`
	VdrDevRev string           `json:"vdr_dev_rev"`
	EngNames  []string         `json:"eng_names"`
	MemInfo   []DeviceMemInfo  `json:"mem_info"`
	Freqs     []FreqInfo       `json:"freqs"`
	Clients   []ClientSnapshot `json:"clis_stats"`
}

type ClientSnapshot struct {
	PID      uint32               `json:"pid"`
	DRMMinor uint32               `json:"drm_minor"`
	ClientID uint32               `json:"client_id"`
	Comm     string               `json:"comm"`
	Cmdline  string               `json:"cmdline"`
	Active   bool                 `json:"is_active"`
	MemInfo  []ClientMemInfo      `json:"mem_info"`
	EngUsage map[string][]float64 `json:"eng_usage"`
	CPUUsage []float64            `json:"cpu_usage"`
}

// State copies the current store contents into a Snapshot.
func (s *Store) State() Snapshot {
	snap := Snapshot{
		TimestampsMs: s.tstamps.Data(),
		Devices:      make([]DeviceSnapshot, 0, len(s.devices)),
	}

	for _, dev := range s.devices {
		dsnap := DeviceSnapshot{
			PCIDev:    dev.PCIDev,
			DrvName:   dev.DrvName,
			DevType:   dev.DevType,
			DevNodes:  dev.DevNodes,
			VdrDevRev: dev.VdrDevRev,
			EngNames:  append([]string(nil), dev.EngNames...),
			MemInfo:   dev.MemInfo.Data(),
			Freqs:     dev.Freqs.Data(),
			Clients:   make([]ClientSnapshot, 0, len(dev.Clients)),
		}

		for _, cli := range dev.Clients {
			csnap := ClientSnapshot{
				PID:      cli.PID,
				DRMMinor: cli.DRMMinor,
				ClientID: cli.ClientID,
				Comm:     cli.Comm,
				Cmdline:  cli.Cmdline,
				Active:   cli.Active,
				MemInfo:  cli.MemInfo.Data(),
				EngUsage: make(map[string][]float64, len(cli.EngUsage)),
				CPUUsage: cli.CPUUsage.Data(),
			}
			for name, hist := range cli.EngUsage {
				csnap.EngUsage[name] = hist.Data()
			}
			dsnap.Clients = append(dsnap.Clients, csnap)
		}

		snap.Devices = append(snap.Devices, dsnap)
	}

	return snap
}
