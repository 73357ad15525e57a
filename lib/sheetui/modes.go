// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	"fmt"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/sheetshark/sheetshark/lib/timeline"
)

// rejectedStatus is shown when a key asks for something the current
// cell cannot do.
const rejectedStatus = "⛔⛔⛔"

// selectMode is the resting state: the cursor moves between cells and
// structural keys (split, merge, jumps) act on the selected row. Esc
// drops the selection entirely; any row key brings it back on the
// first row. Application-level keys (day switching, calendar, export,
// quit) are handled by the model before the mode sees them.
type selectMode struct{}

func (selectMode) column() int                { return -1 }
func (selectMode) bufferText() (string, bool) { return "", false }

func (selectMode) handleKey(model *Model, message tea.KeyMsg) action {
	keys := model.keys

	switch {
	case isMovement(message, keys):
		model.applyMovement(message)
		return actNone{}

	case key.Matches(message, keys.Cancel):
		model.row = noSelection
		return actNone{}

	case key.Matches(message, keys.End):
		model.row = model.timeline.Len() - 1
		return actNone{}

	case key.Matches(message, keys.Edit):
		return enterColumn(model, model.column)

	case key.Matches(message, keys.JumpTime):
		return enterColumn(model, columnTime)
	case key.Matches(message, keys.JumpProject):
		return enterColumn(model, columnProject)
	case key.Matches(message, keys.JumpTicket):
		return enterColumn(model, columnTicket)
	case key.Matches(message, keys.JumpDescription):
		return enterColumn(model, columnDescription)
	case key.Matches(message, keys.JumpDuration):
		return enterColumn(model, columnDuration)

	case key.Matches(message, keys.Split):
		model.ensureRowSelected()
		if err := model.timeline.Split(model.row); err != nil {
			return actStatus{message: err.Error()}
		}
		return actNone{}

	case key.Matches(message, keys.MergeDown):
		model.ensureRowSelected()
		if err := model.timeline.MergeDown(model.row); err != nil {
			return actStatus{message: err.Error()}
		}
		return actNone{}
	}
	return actNone{}
}

// enterColumn moves the cursor to a column and enters its edit mode,
// selecting the first row if none is selected. Break rows take no
// ticket, so editing that cell is refused.
func enterColumn(model *Model, column int) action {
	model.ensureRowSelected()
	model.column = column
	if column == columnTicket && model.selectedBlock().IsBreak() {
		// Dropping back to select mode matters when the refusal
		// interrupts a movement out of another cell's edit.
		return actMulti{actions: []action{
			actExitEdit{},
			actStatus{message: rejectedStatus},
		}}
	}
	return actEnterMode{mode: modeForColumn(model, column)}
}

// timeMode edits the start-time cell. Only clock characters are
// accepted; the commit parses the buffer and moves the block's start,
// trading minutes with the previous block.
type timeMode struct {
	buffer editBuffer
}

func (*timeMode) column() int { return columnTime }

func (m *timeMode) bufferText() (string, bool) { return m.buffer.String(), true }

func (m *timeMode) handleKey(model *Model, message tea.KeyMsg) action {
	return handleBufferKey(model, message, &m.buffer, func() error {
		return m.commit(model)
	}, func(r rune) bool {
		return unicode.IsDigit(r) || r == ':'
	})
}

// commit applies the typed start time. An empty buffer means the
// time was not touched and commits as a no-op.
func (m *timeMode) commit(model *Model) error {
	if m.buffer.empty() {
		return nil
	}
	start, err := timeline.ParseTimeOfDay(m.buffer.String())
	if err != nil {
		return err
	}
	return model.timeline.SetStart(model.row, start)
}

// projectMode edits the project cell. The commit rejects keys outside
// the configured catalog; empty means the default project and the
// break key is always valid.
type projectMode struct {
	buffer editBuffer
}

func (*projectMode) column() int { return columnProject }

func (m *projectMode) bufferText() (string, bool) { return m.buffer.String(), true }

func (m *projectMode) handleKey(model *Model, message tea.KeyMsg) action {
	return handleBufferKey(model, message, &m.buffer, func() error {
		return m.commit(model)
	}, nil)
}

func (m *projectMode) commit(model *Model) error {
	projectKey := m.buffer.String()
	if projectKey != "" && projectKey != timeline.BreakProjectKey {
		if _, ok := model.config.Projects[projectKey]; !ok {
			return fmt.Errorf("unknown project %q", projectKey)
		}
	}
	block := model.selectedBlock()
	if block.ProjectKey != projectKey {
		block.ProjectKey = projectKey
		block.Version.Touch()
	}
	return nil
}

// ticketMode edits the ticket cell with a suggestion dropdown fed
// from past entries. Up and Down walk the suggestions while any are
// shown; committing with a suggestion highlighted takes it over the
// typed buffer.
type ticketMode struct {
	buffer editBuffer
}

func (*ticketMode) column() int { return columnTicket }

func (m *ticketMode) bufferText() (string, bool) { return m.buffer.String(), true }

func (m *ticketMode) handleKey(model *Model, message tea.KeyMsg) action {
	keys := model.keys
	suggestions := &model.suggestions

	if suggestions.showing() {
		switch {
		case key.Matches(message, keys.Up):
			suggestions.moveUp()
			return actNone{}
		case key.Matches(message, keys.Down):
			suggestions.moveDown()
			return actNone{}
		}
	}

	before := m.buffer.String()
	act := handleBufferKey(model, message, &m.buffer, func() error {
		return m.commit(model)
	}, nil)
	if after := m.buffer.String(); after != before {
		// Highlighted suggestions belong to the old query.
		suggestions.cursor = -1
		return actMulti{actions: []action{act, actSuggest{query: after}}}
	}
	return act
}

func (m *ticketMode) commit(model *Model) error {
	ticketKey := m.buffer.String()
	if selected, ok := model.suggestions.selected(); ok {
		ticketKey = selected
	}
	block := model.selectedBlock()
	if block.TicketKey != ticketKey {
		block.TicketKey = ticketKey
		block.Version.Touch()
	}
	return nil
}

// descriptionMode edits the free-text cell. Moving right off the
// last row of a filled block is the fast path for entering a day
// block by block: the commit appends a fresh open row and editing
// continues at its start time. While the block is still open, Right
// goes to the duration cell instead so the row can be finished first.
type descriptionMode struct {
	buffer editBuffer
}

func (*descriptionMode) column() int { return columnDescription }

func (m *descriptionMode) bufferText() (string, bool) { return m.buffer.String(), true }

func (m *descriptionMode) handleKey(model *Model, message tea.KeyMsg) action {
	if key.Matches(message, model.keys.Right) && model.onLastRow() && !model.selectedBlock().IsOpen() {
		if err := m.commit(model); err != nil {
			return actStatus{message: err.Error()}
		}
		model.row = model.timeline.AppendOpen()
		model.column = columnTime
		return actEnterMode{mode: modeForColumn(model, columnTime)}
	}
	return handleBufferKey(model, message, &m.buffer, func() error {
		return m.commit(model)
	}, nil)
}

func (m *descriptionMode) commit(model *Model) error {
	block := model.selectedBlock()
	if text := m.buffer.String(); block.Description != text {
		block.Description = text
		block.Version.Touch()
	}
	return nil
}

// durationMode edits the length cell. The buffer starts empty (the
// current value is shown dimmed) so a new length is typed outright.
// Committing on the last row grows the day: the timeline appends a
// fresh open row and the cursor lands on it.
type durationMode struct {
	buffer editBuffer
}

func (*durationMode) column() int { return columnDuration }

func (m *durationMode) bufferText() (string, bool) { return m.buffer.String(), true }

func (m *durationMode) handleKey(model *Model, message tea.KeyMsg) action {
	keys := model.keys

	switch {
	case key.Matches(message, keys.Cancel):
		return actExitEdit{}

	case key.Matches(message, keys.Commit):
		wasLast := model.onLastRow()
		if err := m.commit(model); err != nil {
			return actStatus{message: err.Error()}
		}
		if wasLast && !m.buffer.empty() {
			model.row = model.timeline.Len() - 1
			model.column = columnTime
		}
		return actExitEdit{}

	case isMovement(message, keys):
		wasLast := model.onLastRow()
		if err := m.commit(model); err != nil {
			return actStatus{message: err.Error()}
		}
		if wasLast && !m.buffer.empty() {
			model.row = model.timeline.Len() - 1
			model.column = columnTime
		} else {
			model.applyMovement(message)
		}
		return enterColumn(model, model.column)
	}

	return handleBufferKey(model, message, &m.buffer, func() error {
		return m.commit(model)
	}, func(r rune) bool {
		return unicode.IsDigit(r) || r == 'h' || r == 'm'
	})
}

// commit applies the typed duration. An empty buffer means the length
// was not touched and commits as a no-op.
func (m *durationMode) commit(model *Model) error {
	if m.buffer.empty() {
		return nil
	}
	minutes, err := timeline.ParseDurationMinutes(m.buffer.String())
	if err != nil {
		return err
	}
	return model.timeline.SetDuration(model.row, minutes)
}
