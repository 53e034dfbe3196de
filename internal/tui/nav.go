package tui

// deviceTabs is a circular selector over the device slots shown in the
// tab bar. Selection survives refreshes because slots are stable PCI
// addresses, not indexes into a transient list.
type deviceTabs struct {
	slots []string
	sel   int
}

func newDeviceTabs(slots []string) deviceTabs {
	return deviceTabs{slots: slots}
}

func (d *deviceTabs) next() {
	if len(d.slots) == 0 {
		return
	}
	d.sel = (d.sel + 1) % len(d.slots)
}

func (d *deviceTabs) previous() {
	if len(d.slots) == 0 {
		return
	}
	d.sel = (d.sel - 1 + len(d.slots)) % len(d.slots)
}

func (d *deviceTabs) current() string {
	if len(d.slots) == 0 {
		return ""
	}
	return d.slots[d.sel]
}

// chartCategory selects which chart the client screen shows.
type chartCategory int

const (
	catMemInfo chartCategory = iota
	catEngines
	catCPU
	numCategories
)

func (c chartCategory) String() string {
	switch c {
	case catMemInfo:
		return "MEM"
	case catEngines:
		return "ENGINES"
	case catCPU:
		return "CPU"
	}
	return "?"
}

// categoryState cycles through the chart categories. It remembers the
// direction of the last cycle so that a client with no engine counters
// skips the engines category: resolve applies the remembered direction
// one extra step when the selection lands there.
type categoryState struct {
	sel    chartCategory
	lastOp int // +1 next, -1 previous
}

func newCategoryState() categoryState {
	return categoryState{sel: catMemInfo, lastOp: 1}
}

func (c *categoryState) next() {
	c.lastOp = 1
	c.sel = (c.sel + 1) % numCategories
}

func (c *categoryState) previous() {
	c.lastOp = -1
	c.sel = (c.sel - 1 + numCategories) % numCategories
}

// resolve returns the category to render. Called on every draw, so a
// client whose engine counters appear later picks the category back up
// without any extra input.
func (c *categoryState) resolve(hasEngines bool) chartCategory {
	if c.sel == catEngines && !hasEngines {
		if c.lastOp < 0 {
			c.sel = (c.sel - 1 + numCategories) % numCategories
		} else {
			c.sel = (c.sel + 1) % numCategories
		}
	}
	return c.sel
}

// scrollState tracks viewport offsets for scrollable regions. Offsets
// are clamped against the content size on every draw, so content that
// shrinks pulls the viewport back in bounds.
type scrollState struct {
	x, y int
}

func (s *scrollState) scrollX(delta int) { s.x += delta }
func (s *scrollState) scrollY(delta int) { s.y += delta }

func (s *scrollState) clamp(contentW, viewW, contentH, viewH int) {
	s.x = clampOffset(s.x, contentW, viewW)
	s.y = clampOffset(s.y, contentH, viewH)
}

func clampOffset(off, content, view int) int {
	limit := content - view
	if limit < 0 {
		limit = 0
	}
	if off > limit {
		off = limit
	}
	if off < 0 {
		off = 0
	}
	return off
}
