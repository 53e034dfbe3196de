package tui

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"drmtop/internal/telemetry"
)

type screen int

const (
	screenDevice screen = iota
	screenClient
)

// Recorder persists one store snapshot per tick.
type Recorder interface {
	Append(v any) error
}

// Options controls the poll loop.
type Options struct {
	// Interval is the refresh period.
	Interval time.Duration
	// Iterations caps the number of refreshes; negative means run until
	// quit.
	Iterations int
	// AllClients lists idle clients in the device table too.
	AllClients bool
}

type tickMsg time.Time

// App is the root bubbletea model. Refreshes arrive as tick messages, key
// presses mutate navigation state, and View renders from the store; no
// other goroutine touches any of it.
type App struct {
	store *telemetry.Store
	recs  []Recorder
	opts  Options
	theme Theme
	log   *slog.Logger

	width  int
	height int
	ticks  int
	err    error

	screen     screen
	tabs       deviceTabs
	cursor     int
	listScroll scrollState

	selected  telemetry.ClientKey
	category  categoryState
	cmdScroll scrollState
}

// NewApp creates the root model.
func NewApp(store *telemetry.Store, theme Theme, opts Options, recs []Recorder, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		store:    store,
		recs:     recs,
		opts:     opts,
		theme:    theme,
		log:      log,
		width:    80,
		height:   24,
		category: newCategoryState(),
	}
}

// Err reports the error that terminated the loop, if any.
func (a *App) Err() error {
	return a.err
}

func (a *App) Init() tea.Cmd {
	// First refresh immediately so the UI has data on the first draw.
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		return a.refresh()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// refresh runs one poll tick: iteration-limit check, store refresh, recording.
// Collection and persistence errors are fatal; a device or client going
// away is not an error at all, the views render notices for those.
func (a *App) refresh() (tea.Model, tea.Cmd) {
	if a.opts.Iterations >= 0 && a.ticks >= a.opts.Iterations {
		return a, tea.Quit
	}

	if err := a.store.Refresh(); err != nil {
		a.log.Error("refresh failed", "err", err)
		a.err = err
		return a, tea.Quit
	}
	a.ticks++
	a.log.Debug("refreshed", "tick", a.ticks, "devices", len(a.store.Devices()))

	if len(a.recs) > 0 {
		state := a.store.State()
		for _, r := range a.recs {
			if err := r.Append(state); err != nil {
				a.log.Error("snapshot append failed", "err", err)
				a.err = err
				return a, tea.Quit
			}
		}
	}

	a.syncTabs()

	return a, tea.Tick(a.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// syncTabs folds newly appeared devices into the tab bar, keeping the
// current selection on its slot.
func (a *App) syncTabs() {
	devs := a.store.Devices()
	if len(devs) == len(a.tabs.slots) {
		return
	}
	cur := a.tabs.current()
	slots := make([]string, len(devs))
	for i, d := range devs {
		slots[i] = d.PCIDev
	}
	a.tabs.slots = slots
	for i, s := range slots {
		if s == cur {
			a.tabs.sel = i
			break
		}
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return a, tea.Quit
	}

	switch a.screen {
	case screenDevice:
		a.handleDeviceKey(msg)
	case screenClient:
		a.handleClientKey(msg)
	}
	return a, nil
}

func (a *App) handleDeviceKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "right":
		a.tabs.next()
		a.cursor = 0
		a.listScroll = scrollState{}
	case "shift+tab", "left":
		a.tabs.previous()
		a.cursor = 0
		a.listScroll = scrollState{}
	case "down", "j":
		a.cursor++
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "l":
		a.listScroll.scrollX(4)
	case "h":
		a.listScroll.scrollX(-4)
	case "enter":
		a.selectClient()
	}
}

// selectClient captures the identity tuple of the client under the cursor
// and switches to the client screen. The tuple, not the row index, is what
// survives refreshes.
func (a *App) selectClient() {
	dev := a.store.Device(a.tabs.current())
	if dev == nil {
		return
	}
	clients := a.visibleClients(dev)
	if a.cursor < 0 || a.cursor >= len(clients) {
		return
	}
	a.selected = clients[a.cursor].Key(dev.PCIDev)
	a.screen = screenClient
	a.category = newCategoryState()
	a.cmdScroll = scrollState{}
}

func (a *App) handleClientKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "backspace":
		a.screen = screenDevice
	case "right", "l":
		a.cmdScroll.scrollX(4)
	case "left", "h":
		a.cmdScroll.scrollX(-4)
	case ">", ".":
		a.category.next()
	case "<", ",":
		a.category.previous()
	}
}

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenClient:
		body = a.viewClient()
	default:
		body = a.viewDevice()
	}

	help := a.deviceHelp
	if a.screen == screenClient {
		help = a.clientHelp
	}
	content := body + "\n" + renderHelpBar(help(), a.width, a.theme)
	return pageFrame(content, a.height)
}

func (a *App) deviceHelp() []helpBinding {
	return []helpBinding{
		{"tab", "device"},
		{"↑/↓", "select"},
		{"h/l", "scroll"},
		{"enter", "client"},
		{"q", "quit"},
	}
}

func (a *App) clientHelp() []helpBinding {
	return []helpBinding{
		{"esc", "back"},
		{"</>", "chart"},
		{"←/→", "scroll cmd"},
		{"q", "quit"},
	}
}
