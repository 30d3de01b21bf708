// Package schedule proposes interview slots inside business hours, filters
// them against existing calendar commitments, and sends invites through
// Google Calendar.
package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/recruitflow/internal/types"
)

// Business-hours window for proposed interviews, in the target timezone
const (
	businessStartHour = 9
	businessEndHour   = 17
)

// SlotRequest describes what to propose
type SlotRequest struct {
	CandidateEmail    string
	InterviewerEmails []string
	WindowStart       time.Time
	WindowEnd         time.Time
	Duration          time.Duration
	Timezone          string
	MaxSlots          int
}

// GenerateSlots proposes up to MaxSlots interview slots inside the request
// window, on the hour, within business hours, skipping weekends and any
// interval that overlaps a busy period.
func GenerateSlots(req SlotRequest, busy []types.TimeSlot) ([]types.InterviewSlot, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive")
	}
	if !req.WindowEnd.After(req.WindowStart) {
		return nil, fmt.Errorf("scheduling window is empty")
	}
	if req.MaxSlots <= 0 {
		req.MaxSlots = 3
	}

	loc := time.UTC
	if req.Timezone != "" {
		parsed, err := time.LoadLocation(req.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %s: %w", req.Timezone, err)
		}
		loc = parsed
	}

	var slots []types.InterviewSlot
	cursor := req.WindowStart.In(loc).Truncate(time.Hour)
	if cursor.Before(req.WindowStart) {
		cursor = cursor.Add(time.Hour)
	}

	for cursor.Add(req.Duration).Before(req.WindowEnd.In(loc).Add(time.Second)) && len(slots) < req.MaxSlots {
		start := cursor
		cursor = cursor.Add(time.Hour)

		if start.Weekday() == time.Saturday || start.Weekday() == time.Sunday {
			continue
		}
		end := start.Add(req.Duration)
		dayEnd := time.Date(start.Year(), start.Month(), start.Day(), businessEndHour, 0, 0, 0, loc)
		if start.Hour() < businessStartHour || end.After(dayEnd) {
			continue
		}
		if overlapsAny(start, end, busy) {
			continue
		}

		slots = append(slots, types.InterviewSlot{
			SlotID:            uuid.NewString(),
			CandidateEmail:    req.CandidateEmail,
			InterviewerEmails: req.InterviewerEmails,
			Slot: types.TimeSlot{
				Start:    start,
				End:      end,
				Timezone: loc.String(),
			},
			Status: types.SlotProposed,
		})
	}

	if len(slots) == 0 {
		return nil, fmt.Errorf("no free slots in window %s - %s",
			req.WindowStart.Format(time.RFC3339), req.WindowEnd.Format(time.RFC3339))
	}
	return slots, nil
}

// overlapsAny reports whether [start, end) intersects any busy interval
func overlapsAny(start, end time.Time, busy []types.TimeSlot) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
