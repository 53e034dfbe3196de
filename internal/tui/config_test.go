package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Display.IntervalMs != 1500 {
		t.Errorf("IntervalMs = %d, want 1500", cfg.Display.IntervalMs)
	}
	if cfg.Display.AllClients {
		t.Error("AllClients should default to false")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[display]
interval_ms = 500
all_clients = true

[theme]
accent = "#7aa2f7"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Display.IntervalMs != 500 || !cfg.Display.AllClients {
		t.Errorf("display = %+v", cfg.Display)
	}

	theme := BuildTheme(cfg.Theme)
	if string(theme.Accent) != "#7aa2f7" {
		t.Errorf("Accent = %q, want override", theme.Accent)
	}
	if string(theme.Fg) != "7" {
		t.Errorf("Fg = %q, want ANSI default", theme.Fg)
	}
}

func TestEnsureDefaultConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	got, err := EnsureDefaultConfig(path)
	if err != nil {
		t.Fatalf("EnsureDefaultConfig: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not created: %v", err)
	}

	// Second call leaves the existing file alone.
	if err := os.WriteFile(path, []byte("[display]\ninterval_ms = 999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureDefaultConfig(path); err != nil {
		t.Fatalf("EnsureDefaultConfig existing: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.IntervalMs != 999 {
		t.Error("existing config was overwritten")
	}
}
