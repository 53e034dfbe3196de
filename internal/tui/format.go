package tui

import (
	"fmt"
	"strings"
)

// Truncate shortens s to max runes, appending ".." when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 2 {
		return string(r[:max])
	}
	return string(r[:max-2]) + ".."
}

// shortMem renders a byte count compactly with an integer value and a
// single-letter unit, e.g. "512M", "8G".
func shortMem(bytes uint64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%dG", bytes/gib)
	case bytes >= mib:
		return fmt.Sprintf("%dM", bytes/mib)
	case bytes >= kib:
		return fmt.Sprintf("%dK", bytes/kib)
	default:
		return fmt.Sprintf("%d", bytes)
	}
}

// padBetween lays left and right out on a single line of the given width,
// with the gap filled by spaces. Right wins when the two overlap.
func padBetween(left, right string, width int) string {
	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		left = Truncate(left, max(0, width-len([]rune(right))-1))
		gap = width - len([]rune(left)) - len([]rune(right))
		if gap < 0 {
			gap = 0
		}
	}
	return left + strings.Repeat(" ", gap) + right
}

// shiftLeft drops the first n runes, for horizontal scrolling.
func shiftLeft(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}

// rightAlign pads s on the left to the given width.
func rightAlign(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return strings.Repeat(" ", n) + s
}
