// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// Package sheetui is the interactive timesheet editor: a bubbletea
// model rendering one day as a five-column table (start time,
// project, ticket, description, duration) over a gap-free timeline.
//
// Input routing is a small state machine. The model is always in
// exactly one edit mode: selectMode moves the cell cursor and
// dispatches global keys, the five column modes edit a text buffer
// for their cell. Movement keys inside a column mode commit the
// buffer first and then enter the mode of the newly selected cell, so
// arrowing across a row edits cell after cell without explicit
// confirmation. A failed commit blocks the movement and surfaces the
// reason in the status line.
//
// All mutation flows through the timeline package, which keeps the
// day contiguous, and every change is flushed optimistically to the
// persistence actor at the end of the Update cycle that made it. The
// UI never waits for the database; acknowledgements reconcile version
// state as they arrive on the event channel.
package sheetui
