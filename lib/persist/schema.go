// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// migrations holds one script per schema version, applied in order.
// PRAGMA user_version tracks how far a database has come; a fresh
// database runs all of them. Scripts are append-only: editing a
// shipped migration breaks existing databases.
var migrations = []string{
	// Version 1: the timesheet and entry tables.
	`
	CREATE TABLE timesheet (
		day    TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'open'
	) WITHOUT ROWID;

	CREATE TABLE time_entry (
		id            TEXT PRIMARY KEY,
		timesheet_day TEXT NOT NULL REFERENCES timesheet(day),
		start_time    TEXT NOT NULL,
		duration_mins INTEGER NOT NULL DEFAULT 0,
		description   TEXT NOT NULL DEFAULT '',
		project_key   TEXT NOT NULL DEFAULT '',
		ticket_key    TEXT
	) WITHOUT ROWID;

	CREATE INDEX time_entry_day_start
		ON time_entry (timesheet_day, start_time);
	`,
}

// migrate brings the database up to the current schema version. Each
// pending script runs in its own transaction together with the
// user_version bump, so a crash mid-migration leaves a consistent
// database at the previous version.
func migrate(conn *sqlite.Conn) (err error) {
	version, err := schemaVersion(conn)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("persist: database schema version %d is newer than this build supports (%d)",
			version, len(migrations))
	}

	for next := version; next < len(migrations); next++ {
		endTransaction, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return fmt.Errorf("persist: begin migration %d: %w", next+1, err)
		}
		migrationErr := applyMigration(conn, next)
		endTransaction(&migrationErr)
		if migrationErr != nil {
			return migrationErr
		}
	}
	return nil
}

func applyMigration(conn *sqlite.Conn, index int) error {
	if err := sqlitex.ExecuteScript(conn, migrations[index], nil); err != nil {
		return fmt.Errorf("persist: migration %d: %w", index+1, err)
	}
	// PRAGMA does not support parameter binding.
	bump := fmt.Sprintf("PRAGMA user_version = %d", index+1)
	if err := sqlitex.ExecuteTransient(conn, bump, nil); err != nil {
		return fmt.Errorf("persist: recording migration %d: %w", index+1, err)
	}
	return nil
}

func schemaVersion(conn *sqlite.Conn) (int, error) {
	var version int
	err := sqlitex.ExecuteTransient(conn, "PRAGMA user_version", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			version = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("persist: reading schema version: %w", err)
	}
	return version, nil
}
