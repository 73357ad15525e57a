// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// Package export turns a day's blocks into bookable output: per
// project and ticket summaries, defragmented booking spans, CSV and
// JSON files, and clipboard copies.
//
// Defragmentation is the step that makes a real day bookable. Actual
// work is interleaved (a ticket touched before and after lunch, a
// standup in the middle) but booking systems want one contiguous span
// per ticket. [Allocate] repacks each ticket's total minutes into
// synthetic consecutive spans, skipping over recorded breaks, so the
// booked day has the same start, end, and per-ticket totals as the
// real one without its fragmentation.
package export
