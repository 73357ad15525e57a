// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"slices"

	"github.com/sheetshark/sheetshark/lib/timeline"
)

// UnsetTicket is the ticket bucket for blocks that never got a ticket
// key. It groups them in summaries instead of dropping them.
const UnsetTicket = "-"

// TicketSum is one ticket's total minutes within a project.
type TicketSum struct {
	TicketKey string `json:"ticket_key"`
	Minutes   int    `json:"minutes"`
}

// ProjectSummary aggregates one project's tickets for a day.
type ProjectSummary struct {
	ProjectKey string             `json:"project_key"`
	FirstStart timeline.TimeOfDay `json:"-"`
	Tickets    []TicketSum        `json:"tickets"`
}

// BreakSpan is one recorded break.
type BreakSpan struct {
	Start   timeline.TimeOfDay `json:"-"`
	Minutes int                `json:"minutes"`
}

// Summary is a day's blocks aggregated by project and ticket.
// Projects are ordered by their first start time, tickets within a
// project by first use; open blocks contribute nothing.
type Summary struct {
	Day      timeline.Day
	Projects []ProjectSummary
	Breaks   []BreakSpan

	// Start and End span the filled part of the day. Meaningless
	// when HasWork is false.
	Start   timeline.TimeOfDay
	End     timeline.TimeOfDay
	HasWork bool
}

// Summarize aggregates a day's blocks. Blocks with zero duration are
// skipped; they are unfinished edits, not work.
func Summarize(day timeline.Day, blocks []timeline.TimeBlock) Summary {
	summary := Summary{Day: day}
	projectIndex := map[string]int{}

	for _, block := range blocks {
		if block.Duration == 0 {
			continue
		}

		if !summary.HasWork || block.Start < summary.Start {
			summary.Start = block.Start
		}
		if !summary.HasWork || block.End() > summary.End {
			summary.End = block.End()
		}
		summary.HasWork = true

		if block.IsBreak() {
			summary.Breaks = append(summary.Breaks, BreakSpan{
				Start:   block.Start,
				Minutes: block.Duration,
			})
			continue
		}

		i, ok := projectIndex[block.ProjectKey]
		if !ok {
			i = len(summary.Projects)
			projectIndex[block.ProjectKey] = i
			summary.Projects = append(summary.Projects, ProjectSummary{
				ProjectKey: block.ProjectKey,
				FirstStart: block.Start,
			})
		}
		project := &summary.Projects[i]
		if block.Start < project.FirstStart {
			project.FirstStart = block.Start
		}

		ticket := block.TicketKey
		if ticket == "" {
			ticket = UnsetTicket
		}
		j := slices.IndexFunc(project.Tickets, func(t TicketSum) bool {
			return t.TicketKey == ticket
		})
		if j < 0 {
			project.Tickets = append(project.Tickets, TicketSum{TicketKey: ticket})
			j = len(project.Tickets) - 1
		}
		project.Tickets[j].Minutes += block.Duration
	}

	slices.SortStableFunc(summary.Projects, func(a, b ProjectSummary) int {
		return int(a.FirstStart - b.FirstStart)
	})
	slices.SortFunc(summary.Breaks, func(a, b BreakSpan) int {
		return int(a.Start - b.Start)
	})
	return summary
}

// TotalWorkedMinutes sums all non-break minutes.
func (s Summary) TotalWorkedMinutes() int {
	total := 0
	for _, project := range s.Projects {
		for _, ticket := range project.Tickets {
			total += ticket.Minutes
		}
	}
	return total
}

// BreakMinutes sums the recorded breaks.
func (s Summary) BreakMinutes() int {
	total := 0
	for _, b := range s.Breaks {
		total += b.Minutes
	}
	return total
}
