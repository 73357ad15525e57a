// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay content. The overlay lines are placed starting at (anchorX,
// anchorY) in screen coordinates. Uses ANSI-aware truncation so escape
// sequences in the original view are preserved on both sides of the
// overlay.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// Build: prefix + reset + overlay + reset + suffix.
		var result strings.Builder

		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// renderSuggestionLines renders the ticket suggestion dropdown as
// equal-width lines for splicing under the edited cell. The
// highlighted entry gets the selection colors, everything else the
// overlay colors.
func renderSuggestionLines(suggestions suggestionState, theme Theme) []string {
	if !suggestions.showing() {
		return nil
	}

	width := 0
	for _, ticketKey := range suggestions.keys {
		if w := ansi.StringWidth(ticketKey); w > width {
			width = w
		}
	}

	normal := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.OverlayForeground)).
		Background(lipgloss.Color(theme.OverlayBackground))
	highlighted := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SelectedForeground)).
		Background(lipgloss.Color(theme.SelectedBackground)).
		Bold(true)

	lines := make([]string, 0, len(suggestions.keys))
	for index, ticketKey := range suggestions.keys {
		style := normal
		if index == suggestions.cursor {
			style = highlighted
		}
		padding := strings.Repeat(" ", width-ansi.StringWidth(ticketKey))
		lines = append(lines, style.Render(" "+ticketKey+padding+" "))
	}
	return lines
}
