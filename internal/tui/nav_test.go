package tui

import "testing"

func TestDeviceTabsCycle(t *testing.T) {
	d := newDeviceTabs([]string{"0000:03:00.0", "0000:0b:00.0", "0000:65:00.0"})

	if d.current() != "0000:03:00.0" {
		t.Fatalf("initial = %q", d.current())
	}
	d.next()
	if d.current() != "0000:0b:00.0" {
		t.Errorf("after next = %q", d.current())
	}
	// A full lap lands back where it started.
	d.next()
	d.next()
	if d.current() != "0000:03:00.0" {
		t.Errorf("after full lap = %q", d.current())
	}
	d.previous()
	if d.current() != "0000:65:00.0" {
		t.Errorf("previous wraps to %q", d.current())
	}
}

func TestDeviceTabsNextThenPreviousIdentity(t *testing.T) {
	d := newDeviceTabs([]string{"a", "b"})
	d.next()
	d.previous()
	if d.current() != "a" {
		t.Errorf("next+previous = %q, want a", d.current())
	}
}

func TestDeviceTabsEmptyNoop(t *testing.T) {
	var d deviceTabs
	d.next()
	d.previous()
	if d.current() != "" {
		t.Errorf("current = %q, want empty", d.current())
	}
}

func TestCategoryCycleWithEngines(t *testing.T) {
	c := newCategoryState()
	if got := c.resolve(true); got != catMemInfo {
		t.Fatalf("initial = %v", got)
	}
	c.next()
	if got := c.resolve(true); got != catEngines {
		t.Errorf("after next = %v", got)
	}
	c.next()
	if got := c.resolve(true); got != catCPU {
		t.Errorf("after next = %v", got)
	}
	c.next()
	if got := c.resolve(true); got != catMemInfo {
		t.Errorf("after full lap = %v", got)
	}
}

func TestCategoryCycleSkipsEnginesForward(t *testing.T) {
	// Without engine counters the cycle collapses to MEM <-> CPU.
	c := newCategoryState()
	c.next()
	if got := c.resolve(false); got != catCPU {
		t.Fatalf("forward skip = %v, want CPU", got)
	}
	c.next()
	if got := c.resolve(false); got != catMemInfo {
		t.Errorf("next after skip = %v, want MEM", got)
	}
}

func TestCategoryCycleSkipsEnginesBackward(t *testing.T) {
	c := newCategoryState()
	c.previous() // MEM -> CPU
	if got := c.resolve(false); got != catCPU {
		t.Fatalf("previous = %v, want CPU", got)
	}
	c.previous() // CPU -> ENGINES, skipped backward to MEM
	if got := c.resolve(false); got != catMemInfo {
		t.Errorf("backward skip = %v, want MEM", got)
	}
}

func TestCategoryResolveReevaluatedEachDraw(t *testing.T) {
	// Engine counters appearing between draws pin the selection wherever
	// the last resolve left it; no extra jump happens.
	c := newCategoryState()
	c.next()
	if got := c.resolve(false); got != catCPU {
		t.Fatalf("resolve = %v, want CPU", got)
	}
	if got := c.resolve(true); got != catCPU {
		t.Errorf("engines appeared, resolve = %v, want CPU still", got)
	}
	c.previous()
	if got := c.resolve(true); got != catEngines {
		t.Errorf("previous = %v, want ENGINES", got)
	}
}

func TestScrollClamp(t *testing.T) {
	s := scrollState{}
	s.scrollY(10)
	s.clamp(0, 0, 8, 5)
	if s.y != 3 {
		t.Errorf("y = %d, want 3", s.y)
	}
	s.scrollY(-99)
	s.clamp(0, 0, 8, 5)
	if s.y != 0 {
		t.Errorf("y = %d, want 0", s.y)
	}
}

func TestScrollNoopWhenContentFits(t *testing.T) {
	s := scrollState{}
	s.scrollX(5)
	s.clamp(4, 10, 0, 0)
	if s.x != 0 {
		t.Errorf("x = %d, want 0", s.x)
	}
}

func TestClampOffsetShrinkingContent(t *testing.T) {
	// Content shrinking below the viewport pulls the offset back to zero.
	if got := clampOffset(7, 3, 10); got != 0 {
		t.Errorf("clampOffset = %d, want 0", got)
	}
}
