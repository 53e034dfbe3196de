package telemetry

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Store owns the device list, per-device metric histories, per-device
// client lists, and the shared tick-timestamp axis. All mutation happens
// in Refresh, called once per tick from the poll loop.
type Store struct {
	sampler  Sampler
	capacity int

	start   time.Time
	tstamps *History[int64]
	devices []*DeviceState
	bySlot  map[string]*DeviceState
}

// NewStore creates a store that pulls snapshots from sampler and retains
// up to capacity ticks of history per metric.
func NewStore(sampler Sampler, capacity int) *Store {
	return &Store{
		sampler:  sampler,
		capacity: capacity,
		start:    time.Now(),
		tstamps:  NewHistory[int64](capacity),
		bySlot:   make(map[string]*DeviceState),
	}
}

// Refresh pulls one snapshot from the sampler and folds it into the
// histories. The timestamp axis always gains exactly one entry, regardless
// of which devices or clients exist.
func (s *Store) Refresh() error {
	samples, err := s.sampler.Sample()
	if err != nil {
		return fmt.Errorf("collect telemetry: %w", err)
	}

	s.tstamps.Push(time.Since(s.start).Milliseconds())

	for _, ds := range samples {
		dev := s.bySlot[ds.PCIDev]
		if dev == nil {
			dev = &DeviceState{
				PCIDev:  ds.PCIDev,
				MemInfo: NewHistory[DeviceMemInfo](s.capacity),
				Freqs:   NewHistory[FreqInfo](s.capacity),
			}
			s.bySlot[ds.PCIDev] = dev
			s.devices = append(s.devices, dev)
		}

		dev.DrvName = ds.DrvName
		dev.DevType = ds.DevType
		dev.DevNodes = ds.DevNodes
		dev.VdrDevRev = ds.VdrDevRev
		dev.MemInfo.Push(ds.Mem)
		dev.Freqs.Push(ds.Freq)

		s.refreshClients(dev, ds.Clients)
	}

	return nil
}

// refreshClients rebuilds the device's client list from the latest sample,
// carrying histories for clients whose identity tuple survives and
// appending the first sample for new ones in the same pass. A client
// absent from the sample is dropped from the list; its history goes with it.
func (s *Store) refreshClients(dev *DeviceState, samples []ClientSample) {
	prev := make(map[ClientKey]*ClientStats, len(dev.Clients))
	for _, c := range dev.Clients {
		prev[c.Key(dev.PCIDev)] = c
	}

	clients := make([]*ClientStats, 0, len(samples))
	for _, cs := range samples {
		key := ClientKey{PCIDev: dev.PCIDev, PID: cs.PID, DRMMinor: cs.DRMMinor, ClientID: cs.ClientID}
		cli := prev[key]
		if cli == nil {
			cli = &ClientStats{
				PID:      cs.PID,
				DRMMinor: cs.DRMMinor,
				ClientID: cs.ClientID,
				MemInfo:  NewHistory[ClientMemInfo](s.capacity),
				EngUsage: make(map[string]*History[float64]),
				CPUUsage: NewHistory[float64](s.capacity),
			}
		}

		cli.Comm = cs.Comm
		cli.Cmdline = cs.Cmdline
		cli.Active = cs.Active
		cli.MemInfo.Push(cs.Mem)
		cli.CPUUsage.Push(cs.CPUUsage)

		for name, usage := range cs.EngUsage {
			eh := cli.EngUsage[name]
			if eh == nil {
				eh = NewHistory[float64](s.capacity)
				cli.EngUsage[name] = eh
			}
			eh.Push(usage)
			if !slices.Contains(dev.EngNames, name) {
				dev.EngNames = append(dev.EngNames, name)
			}
		}

		clients = append(clients, cli)
	}
	sort.Strings(dev.EngNames)

	dev.Clients = clients
}

// Devices returns the tracked devices in first-observed order.
func (s *Store) Devices() []*DeviceState {
	return s.devices
}

// Device returns the device at the given PCI slot, or nil.
func (s *Store) Device(pciDev string) *DeviceState {
	return s.bySlot[pciDev]
}

// Timestamps returns the shared tick-timestamp axis in ms since start,
// oldest first, one entry per completed tick (capped at capacity).
func (s *Store) Timestamps() []int64 {
	return s.tstamps.Data()
}
