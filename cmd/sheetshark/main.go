// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// sheetshark is an interactive terminal timesheet editor. A day is a
// gap-free list of time blocks; every keystroke edits the visible
// timeline immediately and is flushed to a local SQLite database in
// the background.
//
// Configuration is read from the file named by $SHEETSHARK_CONFIG or
// --config; without either, built-in defaults apply. See lib/config
// for the file format.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sheetshark/sheetshark/lib/clock"
	"github.com/sheetshark/sheetshark/lib/config"
	"github.com/sheetshark/sheetshark/lib/persist"
	"github.com/sheetshark/sheetshark/lib/sheetui"
	"github.com/sheetshark/sheetshark/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var logOutput string

	flagSet := pflag.NewFlagSet("sheetshark", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the configuration file (overrides $SHEETSHARK_CONFIG)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("sheetshark " + version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	logger, closeLog, err := setupLogging(logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store, err := persist.OpenStore(persist.StoreConfig{
		Path:     cfg.DatabasePath(),
		Clock:    clock.Real(),
		Logger:   logger,
		DayStart: cfg.DayStartTime(),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	actor := persist.NewActor(store, logger)
	// Close drains queued writes before the store shuts down, so
	// edits made in the last UI frame still land on disk.
	defer actor.Close()

	model := sheetui.NewModel(cfg, actor, clock.Real(), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// setupLogging routes log records to the given file as JSON, or
// discards them. Writing to stderr would fight the TUI renderer for
// the terminal.
func setupLogging(logOutput string) (*slog.Logger, func(), error) {
	if logOutput == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `sheetshark: interactive terminal timesheet editor.

Tracks one day at a time as a gap-free timeline of blocks. Edits show
immediately and are saved to a local SQLite database in the
background. Days are exported as CSV and JSON, or copied to the
clipboard as defragmented bookings.

Usage:
  sheetshark [flags]

Flags:
%s
Keys (select mode):
  arrows      move between cells      Space  edit the cell
  #/p/t/x/d   jump into a column      s/m    split row / merge down
  PgUp/PgDn   previous / next day     c      calendar
  e           export CSV and JSON     y      copy bookings
  q           quit
`, flagSet.FlagUsages())
}
