// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import "testing"

func TestVersionFreshIsDirty(t *testing.T) {
	v := NewVersion()
	if !v.ShouldSave() {
		t.Fatal("fresh version should need saving")
	}
}

func TestVersionLoadedIsClean(t *testing.T) {
	v := LoadedVersion()
	if v.ShouldSave() {
		t.Fatal("loaded version should be clean")
	}
}

func TestVersionTouchThenSaveRoundtrip(t *testing.T) {
	v := LoadedVersion()
	v.Touch()
	if !v.ShouldSave() {
		t.Fatal("touched version should need saving")
	}
	sent := v.Local()
	v.MarkSent()
	if v.ShouldSave() {
		t.Fatal("in-flight version must not be resent")
	}
	if !v.NotifySaved(sent) {
		t.Fatal("acknowledgement of the sent version should apply")
	}
	if v.ShouldSave() {
		t.Fatal("acknowledged version should be clean")
	}
}

func TestVersionEditWhileInFlight(t *testing.T) {
	v := LoadedVersion()
	v.Touch()
	sent := v.Local()
	v.MarkSent()

	// Another edit lands before the acknowledgement.
	v.Touch()
	if !v.NotifySaved(sent) {
		t.Fatal("acknowledgement should still advance the saved mark")
	}
	if !v.ShouldSave() {
		t.Fatal("the newer edit still needs saving")
	}
}

func TestVersionStaleAckIgnored(t *testing.T) {
	v := LoadedVersion()
	v.Touch()
	v.Touch() // Touch is idempotent while dirty.
	if v.Local() != v.Saved()+1 {
		t.Fatalf("local = %d saved = %d, want one step apart", v.Local(), v.Saved())
	}
	if v.NotifySaved(v.Saved()) {
		t.Fatal("acknowledgement at or below saved must be ignored")
	}
}
