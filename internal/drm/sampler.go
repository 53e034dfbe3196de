package drm

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"drmtop/internal/telemetry"
)

// Config controls where the sampler reads from. The roots exist so tests
// can point at fake trees.
type Config struct {
	SysRoot  string // default /sys
	ProcRoot string // default /proc
	DevSlot  string // optional PCI slot filter
	Logger   *slog.Logger
}

// Sampler collects GPU telemetry from sysfs and procfs. It implements
// telemetry.Sampler and is only ever called from the poll loop, so the
// previous-counter state needs no locking.
type Sampler struct {
	cfg   Config
	cards []card
	log   *slog.Logger

	// Engine busy-ns counters from the previous tick, keyed by client
	// identity, for utilization-percent deltas.
	prevBusy map[telemetry.ClientKey]map[string]uint64
	prevAt   time.Time

	// Per-pid process handles kept across ticks so gopsutil can compute
	// CPU percent between consecutive calls.
	procs map[uint32]*process.Process
}

// NewSampler discovers DRM cards and prepares a sampler. It fails when no
// card matches (a dashboard with nothing to show is a startup error, not a
// blank screen).
func NewSampler(cfg Config) (*Sampler, error) {
	if cfg.SysRoot == "" {
		cfg.SysRoot = "/sys"
	}
	if cfg.ProcRoot == "" {
		cfg.ProcRoot = "/proc"
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cards, err := discoverCards(cfg.SysRoot, cfg.DevSlot, log)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		if cfg.DevSlot != "" {
			return nil, fmt.Errorf("no DRM GPU device at PCI slot %s", cfg.DevSlot)
		}
		return nil, fmt.Errorf("no DRM GPU devices found under %s", cfg.SysRoot)
	}

	return &Sampler{
		cfg:      cfg,
		cards:    cards,
		log:      log,
		prevBusy: make(map[telemetry.ClientKey]map[string]uint64),
		procs:    make(map[uint32]*process.Process),
	}, nil
}

// Devices returns the PCI slots of the discovered cards, in card order.
func (s *Sampler) Devices() []string {
	slots := make([]string, len(s.cards))
	for i, c := range s.cards {
		slots[i] = c.pciDev
	}
	return slots
}

// Sample collects one tick of telemetry for every discovered card.
func (s *Sampler) Sample() ([]telemetry.DeviceSample, error) {
	now := time.Now()
	wallNs := uint64(0)
	if !s.prevAt.IsZero() {
		wallNs = uint64(now.Sub(s.prevAt).Nanoseconds())
	}

	clientsBySlot, err := s.scanClients(wallNs)
	if err != nil {
		return nil, err
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("read system memory: %w", err)
	}

	samples := make([]telemetry.DeviceSample, 0, len(s.cards))
	for i := range s.cards {
		c := &s.cards[i]
		clients := clientsBySlot[c.pciDev]

		dm := telemetry.DeviceMemInfo{
			SmemUsed:  vm.Used,
			SmemTotal: vm.Total,
			VramUsed:  readUintFile(filepath.Join(c.devicePath, "mem_info_vram_used")),
			VramTotal: readUintFile(filepath.Join(c.devicePath, "mem_info_vram_total")),
		}
		for _, cli := range clients {
			dm.SmemRss += cli.Mem.SmemRss
			dm.VramRss += cli.Mem.VramRss
		}

		samples = append(samples, telemetry.DeviceSample{
			PCIDev:    c.pciDev,
			DrvName:   c.driver,
			DevType:   c.devType,
			DevNodes:  c.devNodes,
			VdrDevRev: c.vdrDevRev,
			Mem:       dm,
			Freq:      c.readFreqs(),
			Clients:   clients,
		})
	}

	s.prevAt = now
	return samples, nil
}

// scanClients walks /proc/*/fdinfo looking for DRM handles on the
// discovered cards. Unreadable processes are skipped silently: they exit
// between the directory listing and the read all the time.
func (s *Sampler) scanClients(wallNs uint64) (map[string][]telemetry.ClientSample, error) {
	procEntries, err := os.ReadDir(s.cfg.ProcRoot)
	if err != nil {
		return nil, fmt.Errorf("read proc dir: %w", err)
	}

	slots := make(map[string]bool, len(s.cards))
	for _, c := range s.cards {
		slots[c.pciDev] = true
	}

	bySlot := make(map[string][]telemetry.ClientSample)
	seen := make(map[telemetry.ClientKey]bool)
	nextBusy := make(map[telemetry.ClientKey]map[string]uint64)
	livePids := make(map[uint32]bool)

	for _, entry := range procEntries {
		pid64, err := strconv.ParseUint(entry.Name(), 10, 32)
		if err != nil {
			continue
		}
		pid := uint32(pid64)

		fdinfoDir := filepath.Join(s.cfg.ProcRoot, entry.Name(), "fdinfo")
		fds, err := os.ReadDir(fdinfoDir)
		if err != nil {
			continue
		}

		for _, fd := range fds {
			data, err := os.ReadFile(filepath.Join(fdinfoDir, fd.Name()))
			if err != nil {
				continue
			}
			info, ok := parseFDInfo(data)
			if !ok || !slots[info.pdev] {
				continue
			}

			minor, ok := s.fdMinor(entry.Name(), fd.Name())
			if !ok {
				continue
			}

			key := telemetry.ClientKey{
				PCIDev: info.pdev, PID: pid, DRMMinor: minor, ClientID: info.clientID,
			}
			// The same client shows up once per duplicated descriptor;
			// identity keys stay unique within a device's list.
			if seen[key] {
				continue
			}
			seen[key] = true
			livePids[pid] = true

			cli := s.buildClient(key, info, wallNs, nextBusy)
			bySlot[info.pdev] = append(bySlot[info.pdev], cli)
		}
	}

	s.prevBusy = nextBusy
	s.pruneProcs(livePids)
	return bySlot, nil
}

// buildClient converts a parsed fdinfo into a ClientSample, computing
// engine utilization from busy-ns deltas and CPU usage via gopsutil.
func (s *Sampler) buildClient(key telemetry.ClientKey, info fdInfo, wallNs uint64, nextBusy map[telemetry.ClientKey]map[string]uint64) telemetry.ClientSample {
	smem := info.smem()
	vram := info.vram()

	cli := telemetry.ClientSample{
		PID:      key.PID,
		DRMMinor: key.DRMMinor,
		ClientID: key.ClientID,
		Mem: telemetry.ClientMemInfo{
			SmemUsed: smem.total,
			SmemRss:  smem.resident,
			VramUsed: vram.total,
			VramRss:  vram.resident,
		},
		EngUsage: make(map[string]float64, len(info.engines)),
	}

	prev := s.prevBusy[key]
	busy := make(map[string]uint64, len(info.engines))
	for name, ns := range info.engines {
		busy[name] = ns
		usage := 0.0
		if prevNs, ok := prev[name]; ok && wallNs > 0 && ns > prevNs {
			usage = float64(ns-prevNs) / float64(wallNs) * 100
			if usage > 100 {
				usage = 100
			}
			cli.Active = true
		}
		cli.EngUsage[name] = usage
	}
	nextBusy[key] = busy

	proc := s.procs[key.PID]
	if proc == nil {
		if p, err := process.NewProcess(int32(key.PID)); err == nil {
			s.procs[key.PID] = p
			proc = p
		}
	}
	if proc != nil {
		if name, err := proc.Name(); err == nil {
			cli.Comm = name
		}
		if cmdline, err := proc.Cmdline(); err == nil {
			cli.Cmdline = cmdline
		}
		if pct, err := proc.Percent(0); err == nil {
			cli.CPUUsage = pct
		}
	}

	return cli
}

// fdMinor stats the descriptor to get the DRM minor from the device number.
func (s *Sampler) fdMinor(pidName, fdName string) (uint32, bool) {
	var st syscall.Stat_t
	if err := syscall.Stat(filepath.Join(s.cfg.ProcRoot, pidName, "fd", fdName), &st); err != nil {
		return 0, false
	}
	rdev := uint64(st.Rdev)
	minor := uint32(rdev&0xff) | uint32((rdev>>12)&0xffffff00)
	return minor, true
}

// pruneProcs drops process handles for pids no longer holding DRM handles.
func (s *Sampler) pruneProcs(live map[uint32]bool) {
	for pid := range s.procs {
		if !live[pid] {
			delete(s.procs, pid)
		}
	}
}
