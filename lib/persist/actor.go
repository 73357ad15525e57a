// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Actor runs the store on its own goroutine, processing commands
// strictly in submission order. One event comes back per command; see
// the package documentation for the queueing contract.
type Actor struct {
	store  *Store
	logger *slog.Logger

	commands *unbounded[Command]
	events   *unbounded[Event]

	shuttingDown atomic.Bool
	closeOnce    sync.Once
	done         chan struct{}
}

// NewActor starts the command loop. The actor takes over the store;
// nothing else may touch it until Close returns.
func NewActor(store *Store, logger *slog.Logger) *Actor {
	a := &Actor{
		store:    store,
		logger:   logger,
		commands: newUnbounded[Command](),
		events:   newUnbounded[Event](),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Submit enqueues a command. Never blocks. Submitting after Close
// panics.
func (a *Actor) Submit(command Command) {
	a.commands.Push(command)
}

// Events returns the event channel. It is closed after Close once all
// acknowledged commands have been delivered.
func (a *Actor) Events() <-chan Event {
	return a.events.Out()
}

// Close stops intake and blocks until every queued command has been
// executed, so edits in flight at quit time still reach the store.
// Leftover answers are delivered before the event queue closes. The
// store itself stays open for the caller to close. Safe to call more
// than once.
func (a *Actor) Close() {
	a.closeOnce.Do(func() {
		a.shuttingDown.Store(true)
		a.commands.Close()
	})
	<-a.done
}

func (a *Actor) run() {
	defer close(a.done)
	defer a.events.Close()

	for command := range a.commands.Out() {
		if a.shuttingDown.Load() {
			a.logger.Info("handling leftover command at shutdown",
				"command", fmt.Sprintf("%T", command))
		}
		a.events.Push(a.handle(command))
	}
}

func (a *Actor) handle(command Command) Event {
	switch cmd := command.(type) {
	case StoreEntry:
		if cmd.Entry.IsEmptyDefault() {
			// Placeholder rows never hit the database. The sentinel
			// acknowledgement keeps the one-event-per-command
			// contract without inventing a saved version.
			a.logger.Debug("skipping empty-default entry",
				"entry_id", cmd.Entry.ID)
			return EntryStored{ID: cmd.Entry.ID, Version: EmptyDefaultVersion}
		}
		if err := a.store.UpsertEntry(cmd.Entry); err != nil {
			return Failure{Command: cmd, Err: err}
		}
		return EntryStored{ID: cmd.Entry.ID, Version: cmd.Version}

	case DeleteEntry:
		if err := a.store.DeleteEntry(cmd.ID); err != nil {
			return Failure{Command: cmd, Err: err}
		}
		return EntryDeleted{ID: cmd.ID}

	case LoadTimesheet:
		entries, err := a.store.LoadTimesheet(cmd.Day)
		if err != nil {
			return Failure{Command: cmd, Err: err}
		}
		return TimesheetLoaded{Day: cmd.Day, Entries: entries}

	case LoadTimesheetsOfMonth:
		days, err := a.store.DaysOfMonth(cmd.Day)
		if err != nil {
			return Failure{Command: cmd, Err: err}
		}
		return TimesheetsOfMonthLoaded{Month: cmd.Day.MonthPrefix(), Days: days}

	case SuggestTickets:
		keys, err := a.store.SuggestTickets(cmd.Query)
		if err != nil {
			return Failure{Command: cmd, Err: err}
		}
		return TicketsSuggested{Query: cmd.Query, TicketKeys: keys}
	}

	return Failure{Command: command, Err: fmt.Errorf("persist: unknown command %T", command)}
}
