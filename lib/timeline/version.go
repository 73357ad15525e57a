// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

// DataVersion tracks the save state of one entry with three
// monotonically non-decreasing counters. It is not a database-side
// locking mechanism: it exists to tell the UI which of its changes
// have been confirmed durable, because the persistence actor may
// still be working on the last save when the user makes the next
// edit.
//
// The counters:
//
//   - local: bumped on mutation, except while a previous mutation is
//     still unsaved. Rapid edits therefore coalesce into one outgoing
//     save instead of one per keystroke.
//   - saved: the highest version storage has acknowledged.
//   - sent: the version currently in flight, if any. An ack clears it
//     only when it matches exactly, so a late ack for an old version
//     never masks a newer unsent edit.
//
// Invariant: saved <= local, always.
type DataVersion struct {
	local int
	saved int

	sent    int
	hasSent bool
}

// NewVersion returns the version state for a brand-new entry: dirty
// from birth (local 1, saved 0) so the first flush persists it.
func NewVersion() DataVersion {
	return DataVersion{local: 1, saved: 0}
}

// LoadedVersion returns the version state for an entry read back from
// storage: clean (local 1, saved 1).
func LoadedVersion() DataVersion {
	return DataVersion{local: 1, saved: 1}
}

// Touch records a mutation. If the previous mutation has not been
// saved yet the change folds into the pending version instead of
// minting a new one.
func (v *DataVersion) Touch() {
	if v.local > v.saved {
		return
	}
	v.local++
}

// MarkSent records that a save for the current local version is in
// flight. Monotonic because local is.
func (v *DataVersion) MarkSent() {
	v.sent = v.local
	v.hasSent = true
}

// NotifySaved applies a storage acknowledgement for savedVersion.
// Returns false for an out-of-order ack (savedVersion <= saved),
// which is a no-op: saved never retreats. The caller decides whether
// to log the anomaly.
func (v *DataVersion) NotifySaved(savedVersion int) bool {
	if savedVersion <= v.saved {
		return false
	}
	v.saved = savedVersion
	if v.hasSent && v.sent == savedVersion {
		v.hasSent = false
	}
	return true
}

// ClearSent abandons the in-flight marker. Used when a save is
// acknowledged without anything being written, so the dirty version
// goes out again on the next flush.
func (v *DataVersion) ClearSent() {
	v.hasSent = false
}

// ShouldSave reports whether a save command should go out: the entry
// is dirty and the dirty version is not already in flight.
func (v *DataVersion) ShouldSave() bool {
	return v.isDirty() && !(v.hasSent && v.sent == v.local)
}

// Local returns the current local version number, which a save
// command carries so the acknowledgement can be matched back.
func (v *DataVersion) Local() int { return v.local }

// Saved returns the highest acknowledged version number.
func (v *DataVersion) Saved() int { return v.saved }

// InFlight returns the version currently awaiting acknowledgement,
// if any.
func (v *DataVersion) InFlight() (int, bool) { return v.sent, v.hasSent }

func (v *DataVersion) isDirty() bool { return v.saved != v.local }
