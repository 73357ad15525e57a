// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"fmt"
	"log/slog"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sheetshark/sheetshark/lib/clock"
	"github.com/sheetshark/sheetshark/lib/timeline"
)

// suggestionWindowDays bounds ticket suggestions to roughly the last
// six months. Older tickets are stale; suggesting them wastes the
// short list.
const suggestionWindowDays = 183

// suggestionLimit caps how many ticket keys a suggestion query
// returns. The overlay shows at most a handful anyway.
const suggestionLimit = 10

// Store is the SQLite timesheet database. It owns a single
// connection; the actor goroutine is its only caller, so there is no
// locking here. Opening runs pending schema migrations.
type Store struct {
	conn     *sqlite.Conn
	clock    clock.Clock
	logger   *slog.Logger
	dayStart timeline.TimeOfDay
}

// StoreConfig holds the parameters for opening a store.
type StoreConfig struct {
	// Path is the SQLite database file. ":memory:" works for tests.
	// The parent directory must exist.
	Path string

	// Clock provides the current time for the ticket suggestion
	// window. Required.
	Clock clock.Clock

	// Logger receives operational messages. Required.
	Logger *slog.Logger

	// DayStart is the start time the editor synthesizes a new day's
	// placeholder block at. Load-time cleanup uses it to recognize
	// untouched placeholder rows.
	DayStart timeline.TimeOfDay
}

// OpenStore opens (creating if needed) the timesheet database and
// migrates it to the current schema.
func OpenStore(cfg StoreConfig) (*Store, error) {
	if cfg.Clock == nil {
		return nil, fmt.Errorf("persist: Clock is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("persist: Logger is required")
	}

	conn, err := sqlite.OpenConn(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("persist: opening %s: %w", cfg.Path, err)
	}

	// One writer, interactive latency. WAL keeps the hypothetical
	// second reader (sqlite3 CLI poking at the file) from blocking
	// saves.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA cache_size=-8192",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("persist: %s: %w", pragma, err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{
		conn:     conn,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		dayStart: cfg.DayStart,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// UpsertEntry writes one entry, creating its timesheet row on first
// write to a day. Existing entries are overwritten wholesale; the
// version bookkeeping that decides whether to write at all lives with
// the caller.
func (s *Store) UpsertEntry(entry Entry) (err error) {
	endTransaction, err := sqlitex.ImmediateTransaction(s.conn)
	if err != nil {
		return fmt.Errorf("persist: begin upsert: %w", err)
	}
	defer endTransaction(&err)

	if err := s.ensureTimesheet(entry.TimesheetDay); err != nil {
		return err
	}

	var ticketKey any
	if entry.TicketKeySet {
		ticketKey = entry.TicketKey
	}
	err = sqlitex.Execute(s.conn, `
		INSERT INTO time_entry
			(id, timesheet_day, start_time, duration_mins, description, project_key, ticket_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			timesheet_day = excluded.timesheet_day,
			start_time    = excluded.start_time,
			duration_mins = excluded.duration_mins,
			description   = excluded.description,
			project_key   = excluded.project_key,
			ticket_key    = excluded.ticket_key`,
		&sqlitex.ExecOptions{
			Args: []any{
				entry.ID, entry.TimesheetDay, entry.StartTime,
				entry.DurationMins, entry.Description, entry.ProjectKey,
				ticketKey,
			},
		})
	if err != nil {
		return fmt.Errorf("persist: upserting entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *Store) ensureTimesheet(day string) error {
	err := sqlitex.Execute(s.conn,
		`INSERT INTO timesheet (day, status) VALUES (?, 'open')
		 ON CONFLICT (day) DO NOTHING`,
		&sqlitex.ExecOptions{Args: []any{day}})
	if err != nil {
		return fmt.Errorf("persist: ensuring timesheet %s: %w", day, err)
	}
	return nil
}

// DeleteEntry removes one entry by ID. Unknown IDs are not an error;
// merges can queue deletes for blocks that were never saved.
func (s *Store) DeleteEntry(id string) error {
	err := sqlitex.Execute(s.conn,
		`DELETE FROM time_entry WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{id}})
	if err != nil {
		return fmt.Errorf("persist: deleting entry %s: %w", id, err)
	}
	return nil
}

// LoadTimesheet returns a day's entries ordered by start time. Rows
// whose start time no longer parses are deleted rather than returned;
// a corrupt row would otherwise wedge the day forever.
//
// Loading also self-heals abandoned days: a timesheet header with no
// entries left is deleted, and a day holding only the untouched
// placeholder row the editor synthesizes is wiped entirely. Both
// steps are idempotent and invisible to the caller beyond an empty
// result.
func (s *Store) LoadTimesheet(day timeline.Day) ([]Entry, error) {
	var entries []Entry
	var corrupt []string

	err := sqlitex.Execute(s.conn, `
		SELECT id, timesheet_day, start_time, duration_mins, description, project_key, ticket_key
		FROM time_entry
		WHERE timesheet_day = ?
		ORDER BY start_time`,
		&sqlitex.ExecOptions{
			Args: []any{day.ISO()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entry := Entry{
					ID:           stmt.ColumnText(0),
					TimesheetDay: stmt.ColumnText(1),
					StartTime:    stmt.ColumnText(2),
					DurationMins: stmt.ColumnInt(3),
					Description:  stmt.ColumnText(4),
					ProjectKey:   stmt.ColumnText(5),
				}
				if !stmt.ColumnIsNull(6) {
					entry.TicketKey = stmt.ColumnText(6)
					entry.TicketKeySet = true
				}
				if _, err := timeline.ParseTimeOfDay(entry.StartTime); err != nil {
					corrupt = append(corrupt, entry.ID)
					return nil
				}
				entries = append(entries, entry)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("persist: loading timesheet %s: %w", day, err)
	}

	for _, id := range corrupt {
		s.logger.Warn("dropping entry with unparseable start time",
			"entry_id", id, "day", day.ISO())
		if err := s.DeleteEntry(id); err != nil {
			return nil, err
		}
	}

	if len(entries) == 1 && s.isUntouchedPlaceholder(entries[0]) {
		s.logger.Debug("deleting lone placeholder row",
			"entry_id", entries[0].ID, "day", day.ISO())
		if err := s.DeleteEntry(entries[0].ID); err != nil {
			return nil, err
		}
		entries = nil
	}
	if len(entries) == 0 {
		if err := s.deleteTimesheetHeader(day); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// isUntouchedPlaceholder reports whether the entry is the blank open
// block a new day starts with: zero duration at the configured day
// start and no other data.
func (s *Store) isUntouchedPlaceholder(entry Entry) bool {
	return entry.IsEmptyDefault() &&
		entry.ProjectKey == "" &&
		entry.StartTime == s.dayStart.String()
}

// deleteTimesheetHeader removes a day's header row once no entries
// reference it. The guard keeps the delete safe to run on any load.
func (s *Store) deleteTimesheetHeader(day timeline.Day) error {
	err := sqlitex.Execute(s.conn, `
		DELETE FROM timesheet
		WHERE day = ?
		  AND NOT EXISTS (
			SELECT 1 FROM time_entry WHERE time_entry.timesheet_day = timesheet.day
		  )`,
		&sqlitex.ExecOptions{Args: []any{day.ISO()}})
	if err != nil {
		return fmt.Errorf("persist: deleting empty timesheet %s: %w", day, err)
	}
	return nil
}

// DaysOfMonth returns the days of the given month that have at least
// one entry, ascending.
func (s *Store) DaysOfMonth(day timeline.Day) ([]timeline.Day, error) {
	var days []timeline.Day
	err := sqlitex.Execute(s.conn, `
		SELECT DISTINCT timesheet_day
		FROM time_entry
		WHERE timesheet_day LIKE ?
		ORDER BY timesheet_day`,
		&sqlitex.ExecOptions{
			Args: []any{day.MonthPrefix() + "-%"},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				parsed, err := timeline.ParseDay(stmt.ColumnText(0))
				if err != nil {
					// Day keys are written by us; an unparseable one
					// is debris, not data.
					s.logger.Warn("skipping unparseable timesheet day",
						"day", stmt.ColumnText(0))
					return nil
				}
				days = append(days, parsed)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("persist: listing month %s: %w", day.MonthPrefix(), err)
	}
	return days, nil
}

// SuggestTickets returns up to ten ticket keys matching the query,
// most used first, drawn from the last six months. A query with a
// dash matches project prefix and issue fragment separately, so "sh-12"
// finds "SHARK-123"; anything else is a plain prefix match.
func (s *Store) SuggestTickets(query string) ([]string, error) {
	since := timeline.DayOf(s.clock.Now()).AddDays(-suggestionWindowDays)

	where := `ticket_key LIKE ? ESCAPE '\'`
	args := []any{likePattern(query) + "%"}
	if project, issue, found := strings.Cut(query, "-"); found {
		where = `ticket_key LIKE ? ESCAPE '\' AND ticket_key LIKE ? ESCAPE '\'`
		args = []any{likePattern(project) + "%", "%-" + likePattern(issue) + "%"}
	}

	var keys []string
	err := sqlitex.Execute(s.conn, `
		SELECT ticket_key
		FROM time_entry
		WHERE timesheet_day >= ?
		  AND ticket_key IS NOT NULL
		  AND ticket_key != ''
		  AND `+where+`
		GROUP BY lower(ticket_key)
		ORDER BY count(*) DESC, lower(ticket_key)
		LIMIT ?`,
		&sqlitex.ExecOptions{
			Args: append(append([]any{since.ISO()}, args...), suggestionLimit),
			ResultFunc: func(stmt *sqlite.Stmt) error {
				keys = append(keys, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("persist: suggesting tickets for %q: %w", query, err)
	}
	return keys, nil
}

// likePattern escapes LIKE metacharacters in user input.
func likePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
