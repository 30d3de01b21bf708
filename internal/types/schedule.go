package types

import "time"

// SlotStatus represents the lifecycle state of an interview slot
type SlotStatus string

// Slot status values
const (
	SlotProposed    SlotStatus = "proposed"
	SlotConfirmed   SlotStatus = "confirmed"
	SlotDeclined    SlotStatus = "declined"
	SlotRescheduled SlotStatus = "rescheduled"
)

// TimeSlot is a candidate interview window
type TimeSlot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone,omitempty"`
}

// InterviewSlot tracks a proposed or confirmed interview for a candidate
type InterviewSlot struct {
	SlotID            string     `json:"slot_id"`
	CandidateEmail    string     `json:"candidate_email"`
	InterviewerEmails []string   `json:"interviewer_emails"`
	Slot              TimeSlot   `json:"slot"`
	Status            SlotStatus `json:"status"`
	MeetingLink       string     `json:"meeting_link,omitempty"`
	MeetingID         string     `json:"meeting_id,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}
