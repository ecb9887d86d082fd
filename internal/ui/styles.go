package ui

import (
	"fmt"
	"strings"

	"github.com/groblegark/beadscan/internal/model"
)

// ANSI256 color codes.
const (
	colorReady   = 74  // blue
	colorClosed  = 71  // green
	colorBlocked = 167 // red
	colorClaimed = 179 // amber
	colorMuted   = 245 // medium gray
)

var noColor bool

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// StateIcon returns the one-glyph marker used for an effective state in
// list output.
func StateIcon(state model.EffectiveState) string {
	switch state {
	case model.StateClosed:
		return paint(colorClosed, "✓")
	case model.StateInProgress:
		return paint(colorClaimed, "→")
	case model.StateReady:
		return paint(colorReady, "○")
	case model.StateBlocked:
		return paint(colorBlocked, "✗")
	}
	return "?"
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return paint(colorMuted, s)
}

// RenderHeader returns s styled as a section header.
func RenderHeader(s string) string {
	return paint(colorReady, s)
}

// ProgressBar renders a 20-cell completion bar for pct in [0, 100].
func ProgressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}
