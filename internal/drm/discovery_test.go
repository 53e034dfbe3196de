package drm

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// writeCard lays out a fake sysfs card directory.
func writeCard(t *testing.T, sysRoot, name, uevent string, extra map[string]string) {
	t.Helper()
	devDir := filepath.Join(sysRoot, "class", "drm", name, "device")
	if err := os.MkdirAll(devDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(devDir, "uevent"), []byte(uevent), 0o644); err != nil {
		t.Fatalf("write uevent: %v", err)
	}
	for file, content := range extra {
		path := filepath.Join(devDir, file)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscoverCards(t *testing.T) {
	sysRoot := t.TempDir()
	writeCard(t, sysRoot, "card0",
		"DRIVER=amdgpu\nPCI_SLOT_NAME=0000:0b:00.0\nPCI_ID=DEAD:BEEF\n",
		map[string]string{
			"mem_info_vram_total":  "17163091968",
			"revision":             "0xc8",
			"drm/renderD128/dummy": "",
		})
	// Connector entries must be ignored.
	if err := os.MkdirAll(filepath.Join(sysRoot, "class", "drm", "card0-DP-1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cards, err := discoverCards(sysRoot, "", discardLogger())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}

	c := cards[0]
	if c.pciDev != "0000:0b:00.0" || c.driver != "amdgpu" {
		t.Fatalf("unexpected card identity: %+v", c)
	}
	if c.devType != "Discrete" {
		t.Fatalf("devType = %q, want Discrete", c.devType)
	}
	if c.devNodes != "card0 renderD128" {
		t.Fatalf("devNodes = %q", c.devNodes)
	}
}

func TestDiscoverCardsSlotFilter(t *testing.T) {
	sysRoot := t.TempDir()
	writeCard(t, sysRoot, "card0", "DRIVER=amdgpu\nPCI_SLOT_NAME=0000:0b:00.0\n", nil)
	writeCard(t, sysRoot, "card1", "DRIVER=i915\nPCI_SLOT_NAME=0000:00:02.0\n", nil)

	cards, err := discoverCards(sysRoot, "0000:00:02.0", discardLogger())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(cards) != 1 || cards[0].driver != "i915" {
		t.Fatalf("slot filter failed: %+v", cards)
	}
	// No dedicated VRAM attribute: integrated.
	if cards[0].devType != "Integrated" {
		t.Fatalf("devType = %q, want Integrated", cards[0].devType)
	}
}

func TestDiscoverCardsMissingUeventSkipped(t *testing.T) {
	sysRoot := t.TempDir()
	cardDir := filepath.Join(sysRoot, "class", "drm", "card0", "device")
	if err := os.MkdirAll(cardDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cards, err := discoverCards(sysRoot, "", discardLogger())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected broken card to be skipped, got %+v", cards)
	}
}

func TestDeviceLabelFallback(t *testing.T) {
	// dead:beef is not in any PCI database; the raw pair is the label.
	got := deviceLabel("DEAD", "BEEF", "c8")
	if got != "dead:beef (rev c8)" {
		t.Fatalf("deviceLabel = %q", got)
	}
	if got := deviceLabel("", "", ""); got != "Unknown device" {
		t.Fatalf("deviceLabel empty = %q", got)
	}
}
