// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sheetshark/sheetshark/lib/clock"
	"github.com/sheetshark/sheetshark/lib/timeline"
)

func setSchemaVersion(conn *sqlite.Conn, version int) error {
	return sqlitex.ExecuteTransient(conn,
		fmt.Sprintf("PRAGMA user_version = %d", version), nil)
}

var storeTestEpoch = time.Date(2026, time.August, 21, 12, 0, 0, 0, time.UTC)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.Default()
}

func openTestStore(t *testing.T) (*Store, *clock.Fake) {
	t.Helper()

	dayStart, err := timeline.ParseTimeOfDay("09:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	fakeClock := clock.NewFake(storeTestEpoch)
	store, err := OpenStore(StoreConfig{
		Path:     filepath.Join(t.TempDir(), "sharkdb_test.sqlite"),
		Clock:    fakeClock,
		Logger:   testLogger(t),
		DayStart: dayStart,
	})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("store.Close: %v", err)
		}
	})
	return store, fakeClock
}

func testEntry(day, start string, duration int) Entry {
	return Entry{
		ID:           timeline.NewBlockID(),
		TimesheetDay: day,
		StartTime:    start,
		DurationMins: duration,
		Description:  "work",
	}
}

func TestUpsertAndLoadRoundtrip(t *testing.T) {
	store, _ := openTestStore(t)

	entry := testEntry("2026-08-21", "09:00", 60)
	entry.ProjectKey = "acme"
	entry.TicketKey = "SHARK-123"
	entry.TicketKeySet = true
	if err := store.UpsertEntry(entry); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.ID != entry.ID || got.StartTime != "09:00" || got.DurationMins != 60 {
		t.Fatalf("loaded entry = %+v", got)
	}
	if !got.TicketKeySet || got.TicketKey != "SHARK-123" {
		t.Fatalf("ticket key lost: %+v", got)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	store, _ := openTestStore(t)

	entry := testEntry("2026-08-21", "09:00", 60)
	if err := store.UpsertEntry(entry); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	entry.StartTime = "09:30"
	entry.DurationMins = 30
	if err := store.UpsertEntry(entry); err != nil {
		t.Fatalf("UpsertEntry (second): %v", err)
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].StartTime != "09:30" || entries[0].DurationMins != 30 {
		t.Fatalf("overwrite lost: %+v", entries[0])
	}
}

func TestLoadOrdersByStartTime(t *testing.T) {
	store, _ := openTestStore(t)

	for _, start := range []string{"13:00", "09:00", "10:30"} {
		if err := store.UpsertEntry(testEntry("2026-08-21", start, 30)); err != nil {
			t.Fatalf("UpsertEntry(%s): %v", start, err)
		}
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	want := []string{"09:00", "10:30", "13:00"}
	for i, w := range want {
		if entries[i].StartTime != w {
			t.Fatalf("entry %d start = %s, want %s", i, entries[i].StartTime, w)
		}
	}
}

func TestLoadDropsCorruptRows(t *testing.T) {
	store, _ := openTestStore(t)

	good := testEntry("2026-08-21", "09:00", 30)
	bad := testEntry("2026-08-21", "garbage", 30)
	for _, e := range []Entry{good, bad} {
		if err := store.UpsertEntry(e); err != nil {
			t.Fatalf("UpsertEntry: %v", err)
		}
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != good.ID {
		t.Fatalf("entries = %+v, want only the good row", entries)
	}

	// The corrupt row is gone for good, not just filtered.
	entries, err = store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet (second): %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("corrupt row survived: %+v", entries)
	}
}

func countRows(t *testing.T, store *Store, table string) int {
	t.Helper()
	var n int
	err := sqlitex.Execute(store.conn, "SELECT COUNT(*) FROM "+table,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				n = stmt.ColumnInt(0)
				return nil
			},
		})
	if err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func TestLoadDeletesOrphanHeader(t *testing.T) {
	store, _ := openTestStore(t)

	entry := testEntry("2026-08-21", "09:00", 30)
	if err := store.UpsertEntry(entry); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := store.DeleteEntry(entry.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if countRows(t, store, "timesheet") != 1 {
		t.Fatal("expected the header to linger until the next load")
	}

	day, _ := timeline.ParseDay("2026-08-21")
	if _, err := store.LoadTimesheet(day); err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if n := countRows(t, store, "timesheet"); n != 0 {
		t.Fatalf("orphan header survived the load, %d rows", n)
	}
}

func TestLoadDeletesLonePlaceholder(t *testing.T) {
	store, _ := openTestStore(t)

	placeholder := Entry{
		ID:           timeline.NewBlockID(),
		TimesheetDay: "2026-08-21",
		StartTime:    "09:00",
	}
	if err := store.UpsertEntry(placeholder); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("lone placeholder returned instead of healed: %+v", entries)
	}
	if n := countRows(t, store, "time_entry"); n != 0 {
		t.Fatalf("placeholder row survived, %d rows", n)
	}
	if n := countRows(t, store, "timesheet"); n != 0 {
		t.Fatalf("header survived the placeholder cleanup, %d rows", n)
	}
}

func TestLoadKeepsMovedPlaceholder(t *testing.T) {
	store, _ := openTestStore(t)

	// A lone open row moved off the day start carries a chosen time
	// and is real data.
	moved := Entry{
		ID:           timeline.NewBlockID(),
		TimesheetDay: "2026-08-21",
		StartTime:    "10:15",
	}
	if err := store.UpsertEntry(moved); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != moved.ID {
		t.Fatalf("moved open row was cleaned away: %+v", entries)
	}
}

func TestDeleteEntry(t *testing.T) {
	store, _ := openTestStore(t)

	entry := testEntry("2026-08-21", "09:00", 30)
	if err := store.UpsertEntry(entry); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := store.DeleteEntry(entry.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if err := store.DeleteEntry("tent_neverexisted"); err != nil {
		t.Fatalf("deleting an unknown ID should be fine: %v", err)
	}

	day, _ := timeline.ParseDay("2026-08-21")
	entries, err := store.LoadTimesheet(day)
	if err != nil {
		t.Fatalf("LoadTimesheet: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %+v, want none", entries)
	}
}

func TestDaysOfMonth(t *testing.T) {
	store, _ := openTestStore(t)

	for _, day := range []string{"2026-08-21", "2026-08-03", "2026-08-21", "2026-07-30"} {
		if err := store.UpsertEntry(testEntry(day, "09:00", 30)); err != nil {
			t.Fatalf("UpsertEntry(%s): %v", day, err)
		}
	}

	day, _ := timeline.ParseDay("2026-08-15")
	days, err := store.DaysOfMonth(day)
	if err != nil {
		t.Fatalf("DaysOfMonth: %v", err)
	}
	if len(days) != 2 || days[0].ISO() != "2026-08-03" || days[1].ISO() != "2026-08-21" {
		t.Fatalf("days = %v, want [2026-08-03 2026-08-21]", days)
	}
}

func storeTicket(t *testing.T, store *Store, day, ticket string) {
	t.Helper()
	entry := testEntry(day, "09:00", 30)
	entry.TicketKey = ticket
	entry.TicketKeySet = true
	if err := store.UpsertEntry(entry); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
}

func TestSuggestTicketsOrdersByUse(t *testing.T) {
	store, _ := openTestStore(t)

	storeTicket(t, store, "2026-08-18", "SHARK-1")
	storeTicket(t, store, "2026-08-19", "SHARK-2")
	storeTicket(t, store, "2026-08-20", "shark-2") // case-folded with SHARK-2

	keys, err := store.SuggestTickets("sha")
	if err != nil {
		t.Fatalf("SuggestTickets: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %v, want 2 entries", keys)
	}
	if !strings.EqualFold(keys[0], "SHARK-2") {
		t.Fatalf("most used first: keys = %v", keys)
	}
}

func TestSuggestTicketsDashSplitsProjectAndIssue(t *testing.T) {
	store, _ := openTestStore(t)

	storeTicket(t, store, "2026-08-18", "SHARK-123")
	storeTicket(t, store, "2026-08-18", "SHARK-456")
	storeTicket(t, store, "2026-08-18", "OTHER-123")

	keys, err := store.SuggestTickets("sha-12")
	if err != nil {
		t.Fatalf("SuggestTickets: %v", err)
	}
	if len(keys) != 1 || keys[0] != "SHARK-123" {
		t.Fatalf("keys = %v, want [SHARK-123]", keys)
	}
}

func TestSuggestTicketsWindowExcludesOld(t *testing.T) {
	store, _ := openTestStore(t)

	storeTicket(t, store, "2026-08-18", "SHARK-1")
	storeTicket(t, store, "2025-06-01", "SHARK-9") // over a year old

	keys, err := store.SuggestTickets("shark")
	if err != nil {
		t.Fatalf("SuggestTickets: %v", err)
	}
	if len(keys) != 1 || keys[0] != "SHARK-1" {
		t.Fatalf("keys = %v, want [SHARK-1]", keys)
	}
}

func TestSuggestTicketsEscapesLikeMetacharacters(t *testing.T) {
	store, _ := openTestStore(t)

	storeTicket(t, store, "2026-08-18", "SHARK-1")

	keys, err := store.SuggestTickets("%")
	if err != nil {
		t.Fatalf("SuggestTickets: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("literal %% should match nothing, got %v", keys)
	}
}

func TestMigrateRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sharkdb_test.sqlite")

	store, err := OpenStore(StoreConfig{
		Path: path, Clock: clock.NewFake(storeTestEpoch), Logger: testLogger(t),
	})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := setSchemaVersion(store.conn, len(migrations)+5); err != nil {
		t.Fatalf("bumping user_version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err = OpenStore(StoreConfig{
		Path: path, Clock: clock.NewFake(storeTestEpoch), Logger: testLogger(t),
	})
	if err == nil {
		t.Fatal("expected error opening a database from the future")
	}
}
