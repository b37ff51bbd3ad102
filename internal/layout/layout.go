// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout implements the transcript wrap and scroll arithmetic.
//
// Everything here is a pure function of its inputs: the renderer and
// the scroll state both derive from the same arithmetic, so the row the
// math predicts is exactly the row the view draws.
package layout

import "github.com/jeranaias/gpterm-tui/internal/model"

// TurnChromeRows is the number of rows added around every rendered
// turn: one separator rule and one sender label.
const TurnChromeRows = 2

// =============================================================================
// WRAPPING
// =============================================================================

// WrappedLineCount returns the number of rendered rows the body
// occupies at the given width: one row per raw line plus one overflow
// row per full width-worth of runes in that line. A line of exactly
// width runes contributes an overflow row; this is the historical
// behavior of the transcript renderer and callers depend on it.
func WrappedLineCount(body string, width int) int {
	if width <= 0 {
		width = 1
	}
	count := 0
	for _, line := range splitLines(body) {
		count += 1 + len([]rune(line))/width
	}
	return count
}

// WrapRows splits the body into the rows the renderer displays. By
// construction len(WrapRows(b, w)) == WrappedLineCount(b, w): each raw
// line is chunked into width-rune rows, and a line whose rune count is
// a positive multiple of width yields a trailing empty row.
func WrapRows(body string, width int) []string {
	if width <= 0 {
		width = 1
	}
	var rows []string
	for _, line := range splitLines(body) {
		runes := []rune(line)
		if len(runes) == 0 {
			rows = append(rows, "")
			continue
		}
		for i := 0; i < len(runes); i += width {
			end := i + width
			if end > len(runes) {
				end = len(runes)
			}
			rows = append(rows, string(runes[i:end]))
		}
		if len(runes)%width == 0 {
			rows = append(rows, "")
		}
	}
	return rows
}

// TotalHeight returns the rendered height of the given turns: wrapped
// body rows plus TurnChromeRows per turn.
func TotalHeight(turns []model.Turn, width int) int {
	total := 0
	for _, t := range turns {
		total += WrappedLineCount(t.Body, width) + TurnChromeRows
	}
	return total
}

// =============================================================================
// SCROLLING
// =============================================================================

// RecomputeScroll derives the scroll bounds for the given content and
// viewport, clamping the requested offset into [0, maxOffset]. Offset 0
// is the bottom of the transcript; maxOffset is the top. A viewport
// that counts rows down from the top shows the same position at
// maxOffset minus this offset, so "scroll to bottom" is a request of
// 0 here, not maxOffset. Called after every content or size change so
// the clamp invariant always holds.
func RecomputeScroll(turns []model.Turn, width, viewportHeight, requested int) (maxOffset, offset int) {
	maxOffset = TotalHeight(turns, width) - viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset = requested
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return maxOffset, offset
}

// ScrollUp moves one row toward the top, saturating at maxOffset.
func ScrollUp(offset, maxOffset int) int {
	if offset < maxOffset {
		return offset + 1
	}
	return offset
}

// ScrollDown moves one row toward the bottom, saturating at zero.
func ScrollDown(offset int) int {
	if offset > 0 {
		return offset - 1
	}
	return offset
}

// =============================================================================
// HELPERS
// =============================================================================

// splitLines splits on '\n' only. An empty body is a single empty
// line, matching how the renderer treats it.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
