package schedule

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jonathan/recruitflow/internal/googleauth"
	"github.com/jonathan/recruitflow/internal/types"
)

// CalendarScheduler proposes slots against real availability and creates
// invite events through Google Calendar.
type CalendarScheduler struct {
	service    *calendar.Service
	calendarID string
}

// NewCalendarScheduler builds a scheduler from OAuth credential and token files
func NewCalendarScheduler(ctx context.Context, credentialsPath, tokenPath, calendarID string) (*CalendarScheduler, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	config, err := googleauth.LoadConfig(credentialsPath, calendar.CalendarEventsScope, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, err
	}

	client, err := googleauth.Client(ctx, config, tokenPath)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar client: %w", err)
	}

	return &CalendarScheduler{service: srv, calendarID: calendarID}, nil
}

// ProposeSlots queries interviewer availability and generates free slots
func (s *CalendarScheduler) ProposeSlots(ctx context.Context, req SlotRequest) ([]types.InterviewSlot, error) {
	busy, err := s.busyPeriods(ctx, req)
	if err != nil {
		return nil, err
	}
	return GenerateSlots(req, busy)
}

// busyPeriods collects busy intervals for every interviewer in the window
func (s *CalendarScheduler) busyPeriods(ctx context.Context, req SlotRequest) ([]types.TimeSlot, error) {
	items := make([]*calendar.FreeBusyRequestItem, 0, len(req.InterviewerEmails))
	for _, email := range req.InterviewerEmails {
		items = append(items, &calendar.FreeBusyRequestItem{Id: email})
	}

	resp, err := s.service.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: req.WindowStart.Format(time.RFC3339),
		TimeMax: req.WindowEnd.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	var busy []types.TimeSlot
	for _, cal := range resp.Calendars {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			busy = append(busy, types.TimeSlot{Start: start, End: end})
		}
	}
	return busy, nil
}

// CreateInvite creates the calendar event for a confirmed slot and fills in
// the meeting identifiers.
func (s *CalendarScheduler) CreateInvite(ctx context.Context, slot *types.InterviewSlot, summary, description string) error {
	attendees := make([]*calendar.EventAttendee, 0, len(slot.InterviewerEmails)+1)
	attendees = append(attendees, &calendar.EventAttendee{Email: slot.CandidateEmail})
	for _, email := range slot.InterviewerEmails {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	event := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: slot.Slot.Start.Format(time.RFC3339),
			TimeZone: slot.Slot.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: slot.Slot.End.Format(time.RFC3339),
			TimeZone: slot.Slot.Timezone,
		},
		Attendees: attendees,
	}

	created, err := s.service.Events.Insert(s.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}

	slot.Status = types.SlotConfirmed
	slot.MeetingID = created.Id
	slot.MeetingLink = created.HtmlLink
	return nil
}
