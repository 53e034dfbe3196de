package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// DisplayConfig controls refresh behavior and which clients are listed.
type DisplayConfig struct {
	IntervalMs int  `toml:"interval_ms"` // refresh period (default: 1500)
	AllClients bool `toml:"all_clients"` // list idle clients too
}

// ThemeConfig holds optional color overrides. Empty strings use ANSI defaults.
// Values can be ANSI numbers ("1"), 256-palette numbers ("196"), or hex ("#ff0000").
type ThemeConfig struct {
	Fg       string `toml:"fg"`
	Muted    string `toml:"muted"`
	Accent   string `toml:"accent"`
	Title    string `toml:"title"`
	Healthy  string `toml:"healthy"`
	Warning  string `toml:"warning"`
	Critical string `toml:"critical"`
	SmemUsed string `toml:"smem_used"`
	SmemRss  string `toml:"smem_rss"`
	VramUsed string `toml:"vram_used"`
	VramRss  string `toml:"vram_rss"`
	FreqReq  string `toml:"freq_req"`
	FreqAct  string `toml:"freq_act"`
	CPUGraph string `toml:"cpu_graph"`
}

// Config is the on-disk configuration.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Theme   ThemeConfig   `toml:"theme"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/drmtop/config.toml,
// falling back to ~/.config/drmtop/config.toml if unset.
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "drmtop", "config.toml")
}

const defaultConfigContent = `# drmtop configuration.
#
# [display]
# interval_ms = 1500   # refresh period in milliseconds
# all_clients = false  # also list clients with no recent engine activity
#
# [theme]
# Colors default to ANSI (0-15) so the TUI inherits your terminal theme.
# Override with ANSI numbers, 256-palette numbers, or hex values.
#
# ANSI defaults:
# fg = "7"             # normal white
# muted = "8"          # bright black
# accent = "14"        # bright cyan
# title = "13"         # bright magenta
# healthy = "10"       # bright green
# warning = "11"       # bright yellow
# critical = "9"       # bright red
# smem_used = "12"     # bright blue
# smem_rss = "10"      # bright green
# vram_used = "11"     # bright yellow
# vram_rss = "13"      # bright magenta
# freq_req = "11"      # bright yellow
# freq_act = "12"      # bright blue
# cpu_graph = "10"     # bright green
`

// EnsureDefaultConfig creates the default config file if it does not exist.
// Returns the path to the config file.
func EnsureDefaultConfig(path string) (string, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Display.IntervalMs <= 0 {
		cfg.Display.IntervalMs = 1500
	}
	return &cfg, nil
}

// BuildTheme returns a Theme starting from ANSI defaults with any
// non-empty ThemeConfig fields applied as overrides.
func BuildTheme(tc ThemeConfig) Theme {
	t := DefaultTheme()
	override := func(dst *lipgloss.Color, src string) {
		if src != "" {
			*dst = lipgloss.Color(src)
		}
	}
	override(&t.Fg, tc.Fg)
	override(&t.Muted, tc.Muted)
	override(&t.Accent, tc.Accent)
	override(&t.Title, tc.Title)
	override(&t.Healthy, tc.Healthy)
	override(&t.Warning, tc.Warning)
	override(&t.Critical, tc.Critical)
	override(&t.SmemUsed, tc.SmemUsed)
	override(&t.SmemRss, tc.SmemRss)
	override(&t.VramUsed, tc.VramUsed)
	override(&t.VramRss, tc.VramRss)
	override(&t.FreqReq, tc.FreqReq)
	override(&t.FreqAct, tc.FreqAct)
	override(&t.CPUGraph, tc.CPUGraph)
	return t
}
