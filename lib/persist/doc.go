// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// Package persist owns the SQLite timesheet store and the background
// actor that serializes all access to it.
//
// The UI never touches the database. It enqueues [Command] values on
// an unbounded queue and receives [Event] values back on another; the
// actor goroutine owns the single database connection and processes
// commands strictly in order. Because both queues are unbounded,
// neither side ever blocks: a slow disk shows up as lag in save
// acknowledgements, not as dropped keystrokes.
//
// Every command produces exactly one event (its acknowledgement or a
// [Failure]), so the UI can reconcile optimistic state without
// timeouts. Stores of empty-default entries are acknowledged with the
// version -1 sentinel and skipped entirely; the row was never written
// so there is nothing to reconcile.
//
// Key exports:
//
//   - [Store] -- the connection plus schema migrations and queries
//   - [Actor] -- the command loop; [Actor.Submit] and [Actor.Events]
//   - [Command] and [Event] -- the closed vocabularies
//
// Shutdown is cooperative: closing the command queue lets the actor
// drain and execute every outstanding command, logging each as a
// leftover, before its Events channel closes. Edits queued at quit
// time are never dropped.
package persist
