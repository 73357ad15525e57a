// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteCSV writes the allocations as CSV with a header row. One row
// per booking span; durations are implied by start and end.
func WriteCSV(w io.Writer, day string, allocations []Allocation) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"day", "project", "ticket", "start", "end"}); err != nil {
		return fmt.Errorf("export: writing csv header: %w", err)
	}
	for _, a := range allocations {
		row := []string{day, a.ProjectKey, a.TicketKey, a.StartTime, a.EndTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("export: writing csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export: flushing csv: %w", err)
	}
	return nil
}

// jsonExport is the JSON file layout: the aggregated summary plus the
// defragmented spans derived from it.
type jsonExport struct {
	Day         string           `json:"day"`
	Projects    []ProjectSummary `json:"projects"`
	WorkedMins  int              `json:"worked_mins"`
	BreakMins   int              `json:"break_mins"`
	Allocations []Allocation     `json:"allocations"`
}

// WriteJSON writes the summary and its allocations as indented JSON.
func WriteJSON(w io.Writer, summary Summary, allocations []Allocation) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(jsonExport{
		Day:         summary.Day.ISO(),
		Projects:    summary.Projects,
		WorkedMins:  summary.TotalWorkedMinutes(),
		BreakMins:   summary.BreakMinutes(),
		Allocations: allocations,
	})
	if err != nil {
		return fmt.Errorf("export: encoding json: %w", err)
	}
	return nil
}

// WriteCSVFile writes <day>.csv into dir, creating the directory if
// needed, and returns the written path.
func WriteCSVFile(dir string, summary Summary) (string, error) {
	allocations := Allocate(summary)
	day := summary.Day.ISO()
	return writeFile(dir, day+".csv", func(w io.Writer) error {
		return WriteCSV(w, day, allocations)
	})
}

// WriteJSONFile writes <day>.json into dir, creating the directory if
// needed, and returns the written path.
func WriteJSONFile(dir string, summary Summary) (string, error) {
	allocations := Allocate(summary)
	return writeFile(dir, summary.Day.ISO()+".json", func(w io.Writer) error {
		return WriteJSON(w, summary, allocations)
	})
}

func writeFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("export: closing %s: %w", path, err)
	}
	return path, nil
}

// WriteFiles writes both export formats and returns the written
// paths.
func WriteFiles(dir string, summary Summary) ([]string, error) {
	csvPath, err := WriteCSVFile(dir, summary)
	if err != nil {
		return nil, err
	}
	jsonPath, err := WriteJSONFile(dir, summary)
	if err != nil {
		return nil, err
	}
	return []string{csvPath, jsonPath}, nil
}
