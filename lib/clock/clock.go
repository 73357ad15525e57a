// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts wall-clock access for testability.
// Production code injects [Real]; tests inject a [Fake] with
// deterministic time control.
//
// Sheetshark only ever asks "what time is it now" (today's date for
// the initial timesheet load, the six-month window for ticket
// suggestions, the calendar's today marker), so the seam is
// deliberately just Now. Anything that needs timers goes through the
// bubbletea scheduler instead.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time. Every production function that
// would call time.Now accepts a Clock (or is a method on a struct
// with a Clock field) instead.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Fake is a Clock whose time only moves when the test says so.
// Safe for concurrent use.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake pinned to the given instant.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the fake's current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set pins the fake clock to a new instant.
func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}
