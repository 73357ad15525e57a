// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sheetshark/sheetshark/lib/clock"
	"github.com/sheetshark/sheetshark/lib/config"
	"github.com/sheetshark/sheetshark/lib/export"
	"github.com/sheetshark/sheetshark/lib/persist"
	"github.com/sheetshark/sheetshark/lib/timeline"
)

// Persister is the command/event surface the editor drives. Submit
// never blocks; every command is answered with exactly one event on
// Events. [persist.Actor] is the production implementation.
type Persister interface {
	Submit(command persist.Command)
	Events() <-chan persist.Event
}

// persistEventMsg wraps a persistence event for delivery through the
// bubbletea message loop.
type persistEventMsg struct {
	event persist.Event
}

// noSelection is the row cursor value while no row is selected. Esc
// in select mode clears the selection; movement and jump keys bring
// it back.
const noSelection = -1

// viewKind identifies which full-screen view is active.
type viewKind int

const (
	viewSheet viewKind = iota
	viewCalendar
)

// Model is the top-level bubbletea model for the timesheet editor.
type Model struct {
	persister Persister
	config    *config.Config
	clock     clock.Clock
	logger    *slog.Logger
	theme     Theme
	keys      KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	view     viewKind
	calendar calendarState

	// timeline is the day being edited. Replaced wholesale when a
	// TimesheetLoaded answer for pendingDay arrives.
	timeline   *timeline.Timeline
	pendingDay timeline.Day

	// Cell cursor and input mode.
	row    int
	column int
	mode   editMode

	suggestions suggestionState

	// clipboard writes booking text to the system clipboard. A field
	// so tests can intercept the OSC 52 escape write.
	clipboard func(text string) error

	// Status line. A status set by one action is cleared by the next
	// action that sets none, so messages survive exactly until the
	// next meaningful keypress.
	status          string
	needStatusReset bool
	statusTouched   bool
}

// NewModel builds the editor on today's timesheet and queues its
// initial load.
func NewModel(cfg *config.Config, persister Persister, clk clock.Clock, logger *slog.Logger) Model {
	today := timeline.DayOf(clk.Now())

	model := Model{
		persister:   persister,
		config:      cfg,
		clock:       clk,
		logger:      logger,
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		timeline:    timeline.New(today, cfg.DayStartTime(), nil),
		pendingDay:  today,
		mode:        selectMode{},
		suggestions: newSuggestionState(),
		clipboard:   export.CopyToClipboard,
		calendar:    newCalendarState(today),
	}
	persister.Submit(persist.LoadTimesheet{Day: today})
	return model
}

func (model Model) Init() tea.Cmd {
	return listenForPersistEvent(model.persister.Events())
}

func listenForPersistEvent(channel <-chan persist.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return persistEventMsg{event: event}
	}
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case persistEventMsg:
		model.handlePersistEvent(message.event)
		return model, listenForPersistEvent(model.persister.Events())

	case tea.KeyMsg:
		command := model.handleKey(message)
		// Edits are flushed optimistically after every keystroke so
		// storage trails the screen by at most one command round-trip.
		model.flushDirty()
		return model, command
	}
	return model, nil
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	model.statusTouched = false
	defer func() {
		if !model.statusTouched && model.needStatusReset {
			model.status = ""
			model.needStatusReset = false
		}
	}()

	if model.view == viewCalendar {
		model.handleCalendarKey(message)
		return nil
	}

	if _, selecting := model.mode.(selectMode); selecting {
		if command, handled := model.handleGlobalKey(message); handled {
			return command
		}
	}
	return model.applyAction(model.mode.handleKey(model, message))
}

// handleGlobalKey covers the application-level keys that only apply
// while no cell is being edited.
func (model *Model) handleGlobalKey(message tea.KeyMsg) (tea.Cmd, bool) {
	keys := model.keys

	switch {
	case key.Matches(message, keys.Quit):
		return tea.Quit, true

	case key.Matches(message, keys.PreviousDay):
		model.switchDay(model.timeline.Day().AddDays(-1))
		return nil, true

	case key.Matches(message, keys.NextDay):
		model.switchDay(model.timeline.Day().AddDays(1))
		return nil, true

	case key.Matches(message, keys.Calendar):
		model.view = viewCalendar
		model.calendar = newCalendarState(model.timeline.Day())
		model.persister.Submit(persist.LoadTimesheetsOfMonth{Day: model.calendar.cursor})
		return nil, true

	case key.Matches(message, keys.Export):
		model.exportDay(export.WriteFiles)
		return nil, true

	case key.Matches(message, keys.ExportCSV):
		model.exportDay(singleFile(export.WriteCSVFile))
		return nil, true

	case key.Matches(message, keys.ExportJSON):
		model.exportDay(singleFile(export.WriteJSONFile))
		return nil, true

	case key.Matches(message, keys.CopyBookings):
		return model.copyBookings(), true
	}
	return nil, false
}

func (model *Model) handleCalendarKey(message tea.KeyMsg) {
	keys := model.keys

	switch {
	case key.Matches(message, keys.Up):
		model.calendar.moveDays(-7)
	case key.Matches(message, keys.Down):
		model.calendar.moveDays(7)
	case key.Matches(message, keys.Left):
		model.calendar.moveDays(-1)
	case key.Matches(message, keys.Right):
		model.calendar.moveDays(1)

	case key.Matches(message, keys.PreviousDay):
		model.calendar.moveMonths(-1)
		model.persister.Submit(persist.LoadTimesheetsOfMonth{Day: model.calendar.cursor})
	case key.Matches(message, keys.NextDay):
		model.calendar.moveMonths(1)
		model.persister.Submit(persist.LoadTimesheetsOfMonth{Day: model.calendar.cursor})

	case key.Matches(message, keys.PreviousYear):
		model.calendar.moveMonths(-12)
		model.persister.Submit(persist.LoadTimesheetsOfMonth{Day: model.calendar.cursor})
	case key.Matches(message, keys.NextYear):
		model.calendar.moveMonths(12)
		model.persister.Submit(persist.LoadTimesheetsOfMonth{Day: model.calendar.cursor})

	case key.Matches(message, keys.Commit):
		model.view = viewSheet
		model.switchDay(model.calendar.cursor)

	case key.Matches(message, keys.Cancel), key.Matches(message, keys.Calendar):
		model.view = viewSheet

	case key.Matches(message, keys.Quit):
		model.view = viewSheet
	}
}

// applyAction executes what a mode's key handling asked for.
func (model *Model) applyAction(act action) tea.Cmd {
	switch act := act.(type) {
	case actNone:

	case actEnterMode:
		model.mode = act.mode
		model.suggestions.reset()
		if act.mode.column() == columnTicket {
			// Seed the dropdown from what the cell already holds.
			if buffer, ok := act.mode.bufferText(); ok {
				model.requestSuggestions(buffer)
			}
		}

	case actExitEdit:
		model.mode = selectMode{}
		model.suggestions.reset()

	case actStatus:
		model.setStatus(act.message)

	case actSuggest:
		model.requestSuggestions(act.query)

	case actQuit:
		return tea.Quit

	case actMulti:
		var commands []tea.Cmd
		for _, sub := range act.actions {
			if command := model.applyAction(sub); command != nil {
				commands = append(commands, command)
			}
		}
		return tea.Batch(commands...)
	}
	return nil
}

func (model *Model) requestSuggestions(query string) {
	model.suggestions.expect(query)
	if query == "" {
		// The dropdown only shows for a typed prefix, so an empty
		// query has no answer worth fetching. Expecting it above
		// still invalidates whatever was in flight.
		return
	}
	model.persister.Submit(persist.SuggestTickets{Query: query})
}

// switchDay queues a load for another day. The current timeline keeps
// showing until the answer arrives; its dirty blocks are flushed by
// the surrounding Update cycle before the new day replaces it.
func (model *Model) switchDay(day timeline.Day) {
	model.pendingDay = day
	model.persister.Submit(persist.LoadTimesheet{Day: day})
}

func (model *Model) handlePersistEvent(event persist.Event) {
	switch event := event.(type) {
	case persist.EntryStored:
		if event.Version == persist.EmptyDefaultVersion {
			// Nothing was written for a placeholder row. Unpin its
			// in-flight marker so the block is flushed again once it
			// has content.
			if block := model.blockByID(event.ID); block != nil {
				block.Version.ClearSent()
			}
			return
		}
		if block := model.blockByID(event.ID); block != nil {
			if block.Version.NotifySaved(event.Version) {
				model.setStatus(fmt.Sprintf("Stored: %s v%d", event.ID, event.Version))
			}
		}

	case persist.EntryDeleted:
		// Nothing to update; the block is already gone from the list.

	case persist.TimesheetLoaded:
		if event.Day != model.pendingDay {
			return
		}
		model.installTimesheet(event)

	case persist.TimesheetsOfMonthLoaded:
		model.calendar.setMonthData(event.Month, event.Days)

	case persist.TicketsSuggested:
		model.suggestions.apply(event.Query, event.TicketKeys)

	case persist.Failure:
		model.logger.Error("persistence command failed",
			"command", fmt.Sprintf("%T", event.Command),
			"error", event.Err)
		model.setStatus(event.Err.Error())
	}
}

// installTimesheet replaces the edited timeline with a loaded day.
// Entries that fail to convert were already deleted by the loader, so
// skipping them here matches what storage now holds.
func (model *Model) installTimesheet(event persist.TimesheetLoaded) {
	blocks := make([]timeline.TimeBlock, 0, len(event.Entries))
	for _, entry := range event.Entries {
		block, err := entry.Block()
		if err != nil {
			model.logger.Warn("skipping unusable entry",
				"id", entry.ID, "error", err)
			continue
		}
		blocks = append(blocks, block)
	}

	model.timeline = timeline.New(event.Day, model.config.DayStartTime(), blocks)
	model.row = 0
	model.column = 0
	model.mode = selectMode{}
	model.suggestions.reset()
	model.setStatus("Loaded: " + event.Day.ISO())
}

// blockByID finds a block in the edited timeline, or nil. Acks can
// outlive their block when a merge or day switch removed it.
func (model *Model) blockByID(id string) *timeline.TimeBlock {
	for i := 0; i < model.timeline.Len(); i++ {
		block, _ := model.timeline.Block(i)
		if block.ID == id {
			return block
		}
	}
	return nil
}

// flushDirty issues store commands for every block whose local edits
// outrun what was last sent, and delete commands for blocks removed
// by merges and duration edits.
func (model *Model) flushDirty() {
	day := model.timeline.Day()
	for i := 0; i < model.timeline.Len(); i++ {
		block, _ := model.timeline.Block(i)
		if !block.Version.ShouldSave() {
			continue
		}
		entry := persist.EntryFromBlock(day, *block)
		if entry.IsEmptyDefault() {
			// Placeholder rows never persist; the actor answers them
			// with the sentinel instead of a saved version. Marking
			// one sent would pin its version in flight and swallow
			// the edits that fill it in.
			continue
		}
		block.Version.MarkSent()
		sent, _ := block.Version.InFlight()
		model.persister.Submit(persist.StoreEntry{
			Entry:   entry,
			Version: sent,
		})
	}
	for _, removed := range model.timeline.TakePendingDeletes() {
		model.persister.Submit(persist.DeleteEntry{ID: removed.ID})
	}
}

// singleFile adapts a one-format writer to the multi-path shape
// exportDay consumes.
func singleFile(write func(string, export.Summary) (string, error)) func(string, export.Summary) ([]string, error) {
	return func(dir string, summary export.Summary) ([]string, error) {
		path, err := write(dir, summary)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

func (model *Model) exportDay(write func(string, export.Summary) ([]string, error)) {
	summary := export.Summarize(model.timeline.Day(), model.timeline.Blocks())
	paths, err := write(model.config.ExportDir(), summary)
	if err != nil {
		model.setStatus(err.Error())
		return
	}
	model.setStatus("Exported: " + strings.Join(paths, " "))
}

// copyBookings puts the day's defragmented bookings on the system
// clipboard. The OSC 52 write happens in a command so a slow /dev/tty
// never stalls the event loop.
func (model *Model) copyBookings() tea.Cmd {
	summary := export.Summarize(model.timeline.Day(), model.timeline.Blocks())
	allocations := export.Allocate(summary)
	if len(allocations) == 0 {
		model.setStatus("nothing to copy")
		return nil
	}
	text := export.FormatBookings(allocations)
	model.setStatus(fmt.Sprintf("Copied %d bookings", len(allocations)))

	logger := model.logger
	clipboard := model.clipboard
	return func() tea.Msg {
		if err := clipboard(text); err != nil {
			logger.Warn("clipboard write failed", "error", err)
		}
		return nil
	}
}

func (model *Model) setStatus(message string) {
	model.status = message
	model.statusTouched = true
	model.needStatusReset = true
}

func (model *Model) hasSelection() bool {
	return model.row != noSelection
}

// ensureRowSelected restores a row selection before an operation that
// needs one, landing on the first row. Jump keys and row operations
// work from the unselected state this way.
func (model *Model) ensureRowSelected() {
	if !model.hasSelection() {
		model.row = 0
	}
}

// applyMovement moves the cell cursor one step. Left at the first
// column wraps to the previous row's last column; Right at the last
// column wraps to the next row's first column. The last row never
// wraps forward. With no selection, any movement selects the first
// cell.
func (model *Model) applyMovement(message tea.KeyMsg) {
	if !model.hasSelection() {
		model.row = 0
		model.column = 0
		return
	}

	keys := model.keys
	switch {
	case key.Matches(message, keys.Up):
		if model.row > 0 {
			model.row--
		}
	case key.Matches(message, keys.Down):
		if model.row < model.timeline.Len()-1 {
			model.row++
		}
	case key.Matches(message, keys.Left):
		if model.column > 0 {
			model.column--
		} else if model.row > 0 {
			model.row--
			model.column = columnCount - 1
		}
	case key.Matches(message, keys.Right):
		if model.column < columnCount-1 {
			model.column++
		} else if model.row < model.timeline.Len()-1 {
			model.row++
			model.column = 0
		}
	}
}

// selectedBlock returns the block under the cursor, clamping the row
// into range first. The timeline is never empty so there is always a
// block to return.
func (model *Model) selectedBlock() *timeline.TimeBlock {
	if model.row >= model.timeline.Len() {
		model.row = model.timeline.Len() - 1
	}
	if model.row < 0 {
		model.row = 0
	}
	block, _ := model.timeline.Block(model.row)
	return block
}

func (model *Model) onLastRow() bool {
	return model.row == model.timeline.Len()-1
}

func (model Model) View() string {
	if model.width == 0 {
		return ""
	}
	if model.view == viewCalendar {
		return model.viewCalendar()
	}
	return model.viewSheet()
}

func (model Model) viewSheet() string {
	renderer := newTableRenderer(model.theme, model.config, model.width)

	var out strings.Builder
	out.WriteString(model.renderHeadline())
	out.WriteString("\n")
	out.WriteString(renderer.renderHeader())
	out.WriteString("\n")

	_, selecting := model.mode.(selectMode)
	editing := !selecting

	for i, block := range model.timeline.Blocks() {
		state := rowState{
			selected:       i == model.row,
			selectedColumn: model.column,
		}
		if editing && i == model.row {
			state.editing = true
			state.editColumn = model.mode.column()
			state.buffer, _ = model.mode.bufferText()
		}
		out.WriteString(renderer.renderRow(block, i, model.timeline.Mismatched(i), state))
		out.WriteString("\n")
	}

	hints := sheetHints(model.keys)
	switch {
	case editing:
		hints = editHints(model.keys)
	case !model.hasSelection():
		hints = dayHints(model.keys)
	}

	contentLines := 2 + model.timeline.Len()
	view := out.String() +
		strings.Repeat("\n", max(0, model.height-contentLines-2)) +
		renderStatusBar(model.status, hints, model.theme, model.width)

	if model.mode.column() == columnTicket && model.suggestions.showing() {
		overlay := renderSuggestionLines(model.suggestions, model.theme)
		anchorX := columnWidthTime + columnWidthProject
		anchorY := 2 + model.row + 1
		view = spliceOverlay(view, overlay, anchorX, anchorY)
	}
	return view
}

func (model Model) renderHeadline() string {
	day := model.timeline.Day()
	total := timeline.FormatDurationMinutes(model.timeline.TotalWorkedMinutes())
	if total == "" {
		total = "0m"
	}
	headline := fmt.Sprintf(" %s %s  wk %d  worked %s ",
		weekdayShort(day.Weekday()), day.ISO(), day.ISOWeek(), total)
	return lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Background(model.theme.HeaderBackground).
		Bold(true).
		Render(headline)
}

func (model Model) viewCalendar() string {
	grid := renderCalendar(model.calendar, model.theme, timeline.DayOf(model.clock.Now()))
	gridLines := strings.Count(grid, "\n") + 1

	return grid +
		strings.Repeat("\n", max(0, model.height-gridLines-2)) +
		renderStatusBar(model.status, calendarHints(model.keys), model.theme, model.width)
}
