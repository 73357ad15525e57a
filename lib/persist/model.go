// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"github.com/sheetshark/sheetshark/lib/timeline"
)

// EmptyDefaultVersion is the version acknowledged for stores of
// empty-default entries. No row is written for them, so the
// acknowledgement carries a sentinel instead of a saved version.
const EmptyDefaultVersion = -1

// Entry is a time block in storage form. Times are strings because
// that is what the database holds; conversion to and from
// [timeline.TimeBlock] happens at the package boundary.
type Entry struct {
	ID           string
	TimesheetDay string
	StartTime    string
	DurationMins int
	Description  string
	ProjectKey   string

	// TicketKey distinguishes "no ticket yet" (unset) from an
	// explicitly empty ticket. Unset maps to NULL in storage.
	TicketKey    string
	TicketKeySet bool
}

// IsEmptyDefault reports whether the entry carries no user data
// beyond its position: no duration, no description, no ticket. Such
// entries are placeholder rows and are never written to storage.
func (e Entry) IsEmptyDefault() bool {
	return e.DurationMins == 0 && e.Description == "" && !e.TicketKeySet
}

// EntryFromBlock converts a timeline block to storage form.
func EntryFromBlock(day timeline.Day, block timeline.TimeBlock) Entry {
	e := Entry{
		ID:           block.ID,
		TimesheetDay: day.ISO(),
		StartTime:    block.Start.String(),
		DurationMins: block.Duration,
		Description:  block.Description,
		ProjectKey:   block.ProjectKey,
	}
	if block.TicketKey != "" {
		e.TicketKey = block.TicketKey
		e.TicketKeySet = true
	}
	return e
}

// Block converts the entry back to a timeline block with the given
// version state. Returns an error for rows whose stored time does not
// parse; the loader skips such rows rather than crashing the UI.
func (e Entry) Block() (timeline.TimeBlock, error) {
	start, err := timeline.ParseTimeOfDay(e.StartTime)
	if err != nil {
		return timeline.TimeBlock{}, err
	}
	return timeline.TimeBlock{
		ID:          e.ID,
		Start:       start,
		Duration:    e.DurationMins,
		Description: e.Description,
		ProjectKey:  e.ProjectKey,
		TicketKey:   e.TicketKey,
		Version:     timeline.LoadedVersion(),
	}, nil
}

// Command is the closed set of requests the UI sends to the actor.
// Exactly one Event comes back per command.
type Command interface{ isCommand() }

// StoreEntry upserts one entry at the given local version. The
// acknowledgement is [EntryStored] echoing the version, or the
// sentinel for empty-default entries.
type StoreEntry struct {
	Entry   Entry
	Version int
}

// DeleteEntry removes one entry by ID. Deleting an ID that was never
// stored is fine; the acknowledgement is [EntryDeleted] either way.
type DeleteEntry struct {
	ID string
}

// LoadTimesheet loads all entries of one day, ordered by start time.
// Answered with [TimesheetLoaded].
type LoadTimesheet struct {
	Day timeline.Day
}

// LoadTimesheetsOfMonth lists which days of a month have stored
// entries. Answered with [TimesheetsOfMonthLoaded]. Used by the
// calendar view.
type LoadTimesheetsOfMonth struct {
	Day timeline.Day
}

// SuggestTickets asks for ticket keys matching a query, most used
// first. Answered with [TicketsSuggested].
type SuggestTickets struct {
	Query string
}

func (StoreEntry) isCommand()            {}
func (DeleteEntry) isCommand()           {}
func (LoadTimesheet) isCommand()         {}
func (LoadTimesheetsOfMonth) isCommand() {}
func (SuggestTickets) isCommand()        {}

// Event is the closed set of answers the actor sends back.
type Event interface{ isEvent() }

// EntryStored acknowledges a [StoreEntry]. Version echoes the stored
// local version, or [EmptyDefaultVersion] when the entry was an
// unwritten placeholder.
type EntryStored struct {
	ID      string
	Version int
}

// EntryDeleted acknowledges a [DeleteEntry].
type EntryDeleted struct {
	ID string
}

// TimesheetLoaded answers a [LoadTimesheet]. Entries are ordered by
// start time. A day with no stored rows yields an empty slice.
type TimesheetLoaded struct {
	Day     timeline.Day
	Entries []Entry
}

// TimesheetsOfMonthLoaded answers a [LoadTimesheetsOfMonth]. Days are
// those of the queried month that have at least one entry, ascending.
type TimesheetsOfMonthLoaded struct {
	Month string // "2006-01"
	Days  []timeline.Day
}

// TicketsSuggested answers a [SuggestTickets]. Query echoes the
// request so stale answers can be discarded after the query moved on.
type TicketsSuggested struct {
	Query      string
	TicketKeys []string
}

// Failure reports a command that could not be executed. Command
// carries the failed request for context.
type Failure struct {
	Command Command
	Err     error
}

func (EntryStored) isEvent()             {}
func (EntryDeleted) isEvent()            {}
func (TimesheetLoaded) isEvent()         {}
func (TimesheetsOfMonthLoaded) isEvent() {}
func (TicketsSuggested) isEvent()        {}
func (Failure) isEvent()                 {}
