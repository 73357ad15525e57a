// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package export

// Allocation is one booking span produced by defragmentation.
type Allocation struct {
	ProjectKey string `json:"project_key"`
	TicketKey  string `json:"ticket_key"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// Allocate repacks the summary's per-ticket totals into consecutive
// booking spans starting at the day's start, in project order (first
// start wins) and ticket order within each project. Breaks interrupt
// an allocation: the span in progress ends at the break, the rest of
// its minutes resume after.
func Allocate(summary Summary) []Allocation {
	if !summary.HasWork {
		return nil
	}

	var allocations []Allocation
	breaks := summary.Breaks
	current := summary.Start

	for _, project := range summary.Projects {
		for _, ticket := range project.Tickets {
			remaining := ticket.Minutes

			for remaining > 0 {
				// Consume any break that has already begun.
				for len(breaks) > 0 && breaks[0].Start <= current {
					current = current.Add(breaks[0].Minutes)
					breaks = breaks[1:]
				}

				end := current.Add(remaining)
				if len(breaks) > 0 && breaks[0].Start <= end {
					end = breaks[0].Start
				}
				spanMinutes := int(end - current)

				allocations = append(allocations, Allocation{
					ProjectKey: project.ProjectKey,
					TicketKey:  ticket.TicketKey,
					StartTime:  current.String(),
					EndTime:    end.String(),
				})

				remaining -= spanMinutes
				current = end
			}
		}
	}
	return allocations
}
