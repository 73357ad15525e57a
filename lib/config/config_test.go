// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DayStart != "09:00" {
		t.Errorf("expected day_start=09:00, got %s", cfg.DayStart)
	}
	if cfg.DataDir == "" {
		t.Error("expected a non-empty data_dir default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutEnvUsesDefaults(t *testing.T) {
	t.Setenv("SHEETSHARK_CONFIG", "")
	os.Unsetenv("SHEETSHARK_CONFIG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DayStart != "09:00" {
		t.Errorf("expected defaults, got day_start=%s", cfg.DayStart)
	}
}

func TestLoad_SetButMissingPathFails(t *testing.T) {
	t.Setenv("SHEETSHARK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for a set but missing config path")
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, "sheetshark.yaml", `
data_dir: /tmp/shark-test
day_start: "08:30"
default_project: acme
projects:
  acme:
    name: Acme Corp
    ticket_url: https://tickets.example.com/{key}
  int:
    name: Internal
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.DataDir != "/tmp/shark-test" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if got := cfg.DayStartTime(); got.String() != "08:30" {
		t.Errorf("DayStartTime() = %s, want 08:30", got)
	}
	if cfg.ProjectName("acme") != "Acme Corp" {
		t.Errorf("ProjectName(acme) = %q", cfg.ProjectName("acme"))
	}
	if cfg.ProjectName("unknown") != "unknown" {
		t.Errorf("unknown keys should echo back, got %q", cfg.ProjectName("unknown"))
	}
	if got := cfg.ProjectKeys(); len(got) != 2 || got[0] != "acme" || got[1] != "int" {
		t.Errorf("ProjectKeys() = %v", got)
	}
	if cfg.DatabasePath() != "/tmp/shark-test/sheetshark.sqlite" {
		t.Errorf("DatabasePath() = %q", cfg.DatabasePath())
	}
	if cfg.ExportDir() != "/tmp/shark-test/exports" {
		t.Errorf("ExportDir() = %q", cfg.ExportDir())
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "sheetshark.jsonc", `{
  // comments are fine in jsonc
  "data_dir": "/tmp/shark-jsonc",
  "day_start": "07:45",
  "projects": {
    "acme": {"name": "Acme Corp"},
  },
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DataDir != "/tmp/shark-jsonc" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.DayStart != "07:45" {
		t.Errorf("day_start = %q", cfg.DayStart)
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/shark")
	path := writeConfig(t, "sheetshark.yaml", "data_dir: ${HOME}/timesheets\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DataDir != "/home/shark/timesheets" {
		t.Errorf("data_dir = %q, want /home/shark/timesheets", cfg.DataDir)
	}
}

func TestValidate_RejectsBadDayStart(t *testing.T) {
	cfg := Default()
	cfg.DayStart = "25:00"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for day_start 25:00")
	}
}

func TestValidate_RejectsReservedBreakKey(t *testing.T) {
	cfg := Default()
	cfg.Projects = map[string]Project{"x": {Name: "Not a break"}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for reserved project key x")
	}
	if !strings.Contains(err.Error(), "reserved") {
		t.Errorf("error should mention reservation, got %v", err)
	}
}

func TestValidate_RejectsUnknownDefaultProject(t *testing.T) {
	cfg := Default()
	cfg.DefaultProjectKey = "ghost"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default_project not in catalog")
	}
}
