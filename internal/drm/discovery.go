package drm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// card is one DRM card discovered under <sysfs>/class/drm.
type card struct {
	name      string // "card0"
	index     int
	pciDev    string // PCI slot, e.g. "0000:03:00.0"
	driver    string
	devType   string // "Discrete" or "Integrated"
	devNodes  string // "card0 renderD128"
	vdrDevRev string // resolved vendor/model/revision label

	devicePath string // <sysfs>/class/drm/cardN/device
	hwmonPath  string // hwmon dir under devicePath, "" if none
}

// discoverCards enumerates the DRM cards exposed via sysfs. devFilter, when
// non-empty, restricts discovery to the card at that PCI slot.
func discoverCards(sysRoot, devFilter string, log *slog.Logger) ([]card, error) {
	classDir := filepath.Join(sysRoot, "class", "drm")
	entries, err := os.ReadDir(classDir)
	if err != nil {
		return nil, fmt.Errorf("read drm class dir: %w", err)
	}

	var cards []card
	for _, entry := range entries {
		name := entry.Name()
		idx, ok := cardIndex(name)
		if !ok {
			continue
		}

		c, err := loadCard(sysRoot, name, idx)
		if err != nil {
			log.Warn("skipping drm card", "card", name, "err", err)
			continue
		}
		if devFilter != "" && c.pciDev != devFilter {
			continue
		}
		cards = append(cards, c)
	}

	sort.Slice(cards, func(i, j int) bool { return cards[i].index < cards[j].index })
	return cards, nil
}

// cardIndex extracts N from "cardN". Connector entries like
// "card0-DP-1" are rejected.
func cardIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, "card") || strings.ContainsRune(name, '-') {
		return 0, false
	}
	idx, err := strconv.Atoi(name[len("card"):])
	if err != nil {
		return 0, false
	}
	return idx, true
}

func loadCard(sysRoot, name string, idx int) (card, error) {
	devicePath := filepath.Join(sysRoot, "class", "drm", name, "device")

	uevent, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return card{}, fmt.Errorf("read uevent: %w", err)
	}
	driver := ueventValue(string(uevent), "DRIVER")
	pciDev := ueventValue(string(uevent), "PCI_SLOT_NAME")
	pciID := ueventValue(string(uevent), "PCI_ID")
	if pciDev == "" {
		return card{}, fmt.Errorf("no PCI slot in uevent")
	}

	vendorID, deviceID := splitPCIID(pciID)
	if vendorID == "" {
		vendorID = readHexFile(devicePath, "vendor")
		deviceID = readHexFile(devicePath, "device")
	}
	revision := readHexFile(devicePath, "revision")

	c := card{
		name:       name,
		index:      idx,
		pciDev:     pciDev,
		driver:     driver,
		devNodes:   deviceNodes(devicePath, name),
		vdrDevRev:  deviceLabel(vendorID, deviceID, revision),
		devicePath: devicePath,
		hwmonPath:  findHwmon(devicePath),
	}

	// A card with dedicated VRAM distinct from GTT is a discrete GPU.
	if vramTotal := readUintFile(filepath.Join(devicePath, "mem_info_vram_total")); vramTotal > 0 {
		c.devType = "Discrete"
	} else {
		c.devType = "Integrated"
	}

	return c, nil
}

// deviceNodes lists the /dev/dri node names belonging to the card.
func deviceNodes(devicePath, cardName string) string {
	nodes := []string{cardName}
	entries, err := os.ReadDir(filepath.Join(devicePath, "drm"))
	if err == nil {
		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), "renderD") {
				nodes = append(nodes, entry.Name())
			}
		}
	}
	return strings.Join(nodes, " ")
}

// findHwmon returns the first hwmon directory of the device, if any.
func findHwmon(devicePath string) string {
	hwmonDir := filepath.Join(devicePath, "hwmon")
	entries, err := os.ReadDir(hwmonDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "hwmon") {
			return filepath.Join(hwmonDir, entry.Name())
		}
	}
	return ""
}

// ueventValue extracts KEY=value from uevent content.
func ueventValue(data, key string) string {
	for _, line := range strings.Split(data, "\n") {
		if rest, found := strings.CutPrefix(line, key+"="); found {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// splitPCIID splits "1002:744C" into vendor and device IDs.
func splitPCIID(pciID string) (string, string) {
	vendor, device, found := strings.Cut(pciID, ":")
	if !found {
		return "", ""
	}
	return vendor, device
}

// readHexFile reads a sysfs hex attribute like "0x1002" and strips the prefix.
func readHexFile(devicePath, name string) string {
	data, err := os.ReadFile(filepath.Join(devicePath, name))
	if err != nil {
		return ""
	}
	value := strings.TrimSpace(string(data))
	value = strings.TrimPrefix(value, "0x")
	return value
}

// readUintFile reads a decimal sysfs attribute, returning 0 on any failure.
func readUintFile(path string) uint64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
