// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// FormatBookings renders the allocations as plain text, one span per
// line, for pasting into a booking system.
func FormatBookings(allocations []Allocation) string {
	var b strings.Builder
	for _, a := range allocations {
		fmt.Fprintf(&b, "%s\t%s\t%s-%s\n", a.ProjectKey, a.TicketKey, a.StartTime, a.EndTime)
	}
	return b.String()
}

// CopyToClipboard writes text to the terminal clipboard via OSC 52.
// This works over SSH where no display connection exists. The
// sequence goes both wrapped in a tmux DCS passthrough (for tmux with
// allow-passthrough) and directly (for set-clipboard configurations);
// duplicate clipboard sets are harmless. Returns an error only when
// the controlling terminal cannot be opened.
func CopyToClipboard(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("export: opening terminal for clipboard: %w", err)
	}
	defer tty.Close()

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	osc52 := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)

	// Detect tmux: TMUX env var (local tmux), or TERM prefix
	// (forwarded through SSH from a local tmux session).
	inTmux := os.Getenv("TMUX") != "" ||
		strings.HasPrefix(os.Getenv("TERM"), "tmux") ||
		strings.HasPrefix(os.Getenv("TERM"), "screen")

	if inTmux {
		// tmux DCS passthrough: escapes are doubled inside the DCS
		// wrapper. Uses BEL as OSC terminator to avoid
		// double-escaping ST. Requires tmux allow-passthrough on.
		fmt.Fprintf(tty, "\x1bPtmux;\x1b%s\x1b\\", osc52)
	}

	// Direct OSC 52: works without tmux, or with tmux set-clipboard
	// on/external (tmux intercepts and forwards).
	if _, err := tty.WriteString(osc52); err != nil {
		return fmt.Errorf("export: writing clipboard sequence: %w", err)
	}
	return nil
}
