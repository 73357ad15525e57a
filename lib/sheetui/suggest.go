// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

// suggestionState caches the latest ticket suggestion answer. Queries
// race the typist, so every answer carries the query it was computed
// for and answers for anything but the current query are discarded.
type suggestionState struct {
	// query is the prefix the shown keys were computed for.
	query string

	// keys are the suggested ticket keys, most used first.
	keys []string

	// cursor is the highlighted suggestion, -1 for none.
	cursor int
}

func newSuggestionState() suggestionState {
	return suggestionState{cursor: -1}
}

// reset drops the cached answer and highlight.
func (s *suggestionState) reset() {
	s.query = ""
	s.keys = nil
	s.cursor = -1
}

// apply installs an answer if it matches the query in flight.
func (s *suggestionState) apply(query string, keys []string) {
	if query != s.query {
		return
	}
	s.keys = keys
	if s.cursor >= len(keys) {
		s.cursor = len(keys) - 1
	}
}

// expect records the query whose answer we are waiting for.
func (s *suggestionState) expect(query string) {
	s.query = query
}

// showing reports whether the dropdown is active: a non-empty query
// with at least one answer. An empty cell never pops the overlay.
func (s *suggestionState) showing() bool {
	return s.query != "" && len(s.keys) > 0
}

func (s *suggestionState) moveUp() {
	if s.cursor > -1 {
		s.cursor--
	}
}

func (s *suggestionState) moveDown() {
	if s.cursor < len(s.keys)-1 {
		s.cursor++
	}
}

// selected returns the highlighted suggestion, if any.
func (s *suggestionState) selected() (string, bool) {
	if s.cursor < 0 || s.cursor >= len(s.keys) {
		return "", false
	}
	return s.keys[s.cursor], true
}
