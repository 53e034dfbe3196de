package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"drmtop/internal/drm"
	"drmtop/internal/record"
	"drmtop/internal/telemetry"
	"drmtop/internal/tui"
)

// version is set via -ldflags at build time.
var version = "dev"

// historyCap is the number of refresh ticks each metric retains.
const historyCap = 600

func main() {
	fs := flag.NewFlagSet("drmtop", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  drmtop [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	devSlot := fs.String("dev", "", "only show the device at this PCI slot (e.g. 0000:03:00.0)")
	interval := fs.Int("interval", 0, "refresh period in milliseconds (overrides config)")
	iterations := fs.Int("iterations", -1, "number of refreshes before exiting (negative: run until quit)")
	allClients := fs.Bool("all-clients", false, "also list clients with no recent engine activity")
	toJSON := fs.String("to-json", "", "append one state snapshot per tick to this JSON file")
	toDB := fs.String("to-db", "", "append one state snapshot per tick to this SQLite database")
	configPath := fs.String("config", "", "path to config file")
	logPath := fs.String("log", "", "write debug logs to this file")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("drmtop " + version)
		return
	}

	log := newLogger(*logPath)

	cfgPath, err := tui.EnsureDefaultConfig(*configPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	cfg, err := tui.LoadConfig(cfgPath)
	if err != nil {
		fatalf("load config %s: %v", cfgPath, err)
	}

	opts := tui.Options{
		Interval:   time.Duration(cfg.Display.IntervalMs) * time.Millisecond,
		Iterations: *iterations,
		AllClients: cfg.Display.AllClients || *allClients,
	}
	if *interval > 0 {
		opts.Interval = time.Duration(*interval) * time.Millisecond
	}

	sampler, err := drm.NewSampler(drm.Config{DevSlot: *devSlot, Logger: log})
	if err != nil {
		fatalf("%v", err)
	}

	var recs []tui.Recorder
	if *toJSON != "" {
		r, err := record.NewJSONRecorder(*toJSON)
		if err != nil {
			fatalf("open json sink: %v", err)
		}
		defer r.Close()
		recs = append(recs, r)
	}
	if *toDB != "" {
		r, err := record.NewSQLiteRecorder(*toDB)
		if err != nil {
			fatalf("open db sink: %v", err)
		}
		defer r.Close()
		recs = append(recs, r)
	}

	store := telemetry.NewStore(sampler, historyCap)
	app := tui.NewApp(store, tui.BuildTheme(cfg.Theme), opts, recs, log)

	p := tea.NewProgram(app, tea.WithAltScreen())
	model, err := p.Run()
	if err != nil {
		fatalf("tui: %v", err)
	}
	if final, ok := model.(*tui.App); ok && final.Err() != nil {
		fatalf("%v", final.Err())
	}
}

// newLogger writes to the given file, or discards everything. Logging to
// stderr would fight the TUI for the terminal.
func newLogger(path string) *slog.Logger {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fatalf("open log file: %v", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
