// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
)

// Table columns, left to right.
const (
	columnTime = iota
	columnProject
	columnTicket
	columnDescription
	columnDuration
	columnCount
)

// editMode is one state of the input machine. The set of
// implementations is closed: selectMode plus one mode per column.
// handleKey returns the action the reducer applies; modes never touch
// the model beyond reading it and committing their own cell.
type editMode interface {
	handleKey(model *Model, message tea.KeyMsg) action

	// column is the column this mode edits, or -1 for selectMode.
	column() int

	// bufferText returns the in-progress buffer for rendering in
	// place of the cell value. ok is false for selectMode.
	bufferText() (text string, ok bool)
}

// action is what a mode's key handling asks the reducer to do.
type action interface{ isAction() }

type actNone struct{}

// actEnterMode switches to the given mode, moving the column cursor
// to its column.
type actEnterMode struct{ mode editMode }

// actExitEdit returns to selectMode.
type actExitEdit struct{}

// actStatus shows a message in the status line.
type actStatus struct{ message string }

// actSuggest requests ticket suggestions for a query.
type actSuggest struct{ query string }

// actQuit ends the program.
type actQuit struct{}

// actMulti applies several actions in order.
type actMulti struct{ actions []action }

func (actNone) isAction()      {}
func (actEnterMode) isAction() {}
func (actExitEdit) isAction()  {}
func (actStatus) isAction()    {}
func (actSuggest) isAction()   {}
func (actQuit) isAction()      {}
func (actMulti) isAction()     {}

// editBuffer is the shared text buffer for the column modes. Rune
// based so backspace removes whole characters, not bytes.
type editBuffer struct {
	runes []rune
}

func newEditBuffer(seed string) editBuffer {
	return editBuffer{runes: []rune(seed)}
}

func (b *editBuffer) String() string { return string(b.runes) }

func (b *editBuffer) push(r rune) { b.runes = append(b.runes, r) }

func (b *editBuffer) backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

func (b *editBuffer) clear() { b.runes = b.runes[:0] }

func (b *editBuffer) empty() bool { return len(b.runes) == 0 }

// isMovement reports whether the key moves the cell cursor.
func isMovement(message tea.KeyMsg, keys KeyMap) bool {
	return key.Matches(message, keys.Up) ||
		key.Matches(message, keys.Down) ||
		key.Matches(message, keys.Left) ||
		key.Matches(message, keys.Right)
}

// handleBufferKey implements the behavior shared by all column modes:
// commit on Enter or movement, cancel on Esc, buffer editing
// otherwise. A movement commit that succeeds re-enters edit mode on
// the newly selected cell, which is what makes arrowing across a row
// edit cell after cell. A failed commit blocks the key and shows the
// error.
//
// accept filters typed runes; nil accepts everything printable.
func handleBufferKey(
	model *Model,
	message tea.KeyMsg,
	buffer *editBuffer,
	commit func() error,
	accept func(r rune) bool,
) action {
	keys := model.keys

	switch {
	case key.Matches(message, keys.Cancel):
		return actExitEdit{}

	case key.Matches(message, keys.Commit):
		if err := commit(); err != nil {
			return actStatus{message: err.Error()}
		}
		return actExitEdit{}

	case isMovement(message, keys):
		if err := commit(); err != nil {
			return actStatus{message: err.Error()}
		}
		model.applyMovement(message)
		return enterColumn(model, model.column)

	case key.Matches(message, keys.ClearBuf):
		buffer.clear()
		return actNone{}

	case message.Type == tea.KeyBackspace:
		buffer.backspace()
		return actNone{}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		runes := message.Runes
		if message.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		for _, r := range runes {
			if accept == nil || accept(r) {
				buffer.push(r)
			}
		}
		return actNone{}
	}
	return actNone{}
}

// modeForColumn constructs the edit mode for a column, seeding its
// buffer from the selected block.
func modeForColumn(model *Model, column int) editMode {
	block := model.selectedBlock()
	switch column {
	case columnTime:
		return &timeMode{buffer: newEditBuffer(block.Start.Clock())}
	case columnProject:
		return &projectMode{buffer: newEditBuffer(block.ProjectKey)}
	case columnTicket:
		return &ticketMode{buffer: newEditBuffer(block.TicketKey)}
	case columnDescription:
		return &descriptionMode{buffer: newEditBuffer(block.Description)}
	case columnDuration:
		return &durationMode{buffer: newEditBuffer("")}
	}
	return selectMode{}
}
