package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recruitflow/internal/types"
)

// monday is a fixed reference week start
var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func request(start, end time.Time, max int) SlotRequest {
	return SlotRequest{
		CandidateEmail:    "jane@example.com",
		InterviewerEmails: []string{"lead@example.com"},
		WindowStart:       start,
		WindowEnd:         end,
		Duration:          time.Hour,
		MaxSlots:          max,
	}
}

func TestGenerateSlotsWithinBusinessHours(t *testing.T) {
	slots, err := GenerateSlots(request(monday, monday.Add(24*time.Hour), 20), nil)
	require.NoError(t, err)

	// a one-hour grid from 09:00 gives 8 slots ending by 17:00
	assert.Len(t, slots, 8)
	for _, slot := range slots {
		assert.GreaterOrEqual(t, slot.Slot.Start.Hour(), 9)
		assert.LessOrEqual(t, slot.Slot.End.Hour(), 17)
		assert.Equal(t, types.SlotProposed, slot.Status)
		assert.Equal(t, "jane@example.com", slot.CandidateEmail)
		assert.NotEmpty(t, slot.SlotID)
	}
}

func TestGenerateSlotsSkipsBusyPeriods(t *testing.T) {
	busy := []types.TimeSlot{
		{Start: monday.Add(9 * time.Hour), End: monday.Add(12 * time.Hour)},
	}

	slots, err := GenerateSlots(request(monday, monday.Add(24*time.Hour), 20), busy)
	require.NoError(t, err)

	assert.Len(t, slots, 5)
	for _, slot := range slots {
		assert.GreaterOrEqual(t, slot.Slot.Start.Hour(), 12)
	}
}

func TestGenerateSlotsPartialOverlapExcluded(t *testing.T) {
	// busy 10:30-11:30 knocks out both the 10:00 and 11:00 slots
	busy := []types.TimeSlot{
		{Start: monday.Add(10*time.Hour + 30*time.Minute), End: monday.Add(11*time.Hour + 30*time.Minute)},
	}

	slots, err := GenerateSlots(request(monday, monday.Add(24*time.Hour), 20), busy)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.NotEqual(t, 10, slot.Slot.Start.Hour())
		assert.NotEqual(t, 11, slot.Slot.Start.Hour())
	}
}

func TestGenerateSlotsSkipsWeekends(t *testing.T) {
	saturday := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	// window spans saturday and sunday only
	_, err := GenerateSlots(request(saturday, saturday.Add(48*time.Hour), 5), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free slots")
}

func TestGenerateSlotsRejectsOvernightDurations(t *testing.T) {
	// a 9h interview starting at 16:00 would end 01:00 the next day; no
	// start inside business hours can fit it, so the window has no slots
	req := request(monday, monday.Add(24*time.Hour), 20)
	req.Duration = 9 * time.Hour
	_, err := GenerateSlots(req, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free slots")

	// an 8h slot still fits exactly once, 09:00-17:00
	req.Duration = 8 * time.Hour
	slots, err := GenerateSlots(req, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 9, slots[0].Slot.Start.Hour())
	assert.Equal(t, 17, slots[0].Slot.End.Hour())
	assert.Equal(t, slots[0].Slot.Start.Day(), slots[0].Slot.End.Day())
}

func TestGenerateSlotsRespectsMaxSlots(t *testing.T) {
	slots, err := GenerateSlots(request(monday, monday.Add(5*24*time.Hour), 3), nil)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestGenerateSlotsValidation(t *testing.T) {
	req := request(monday, monday.Add(24*time.Hour), 3)
	req.Duration = 0
	_, err := GenerateSlots(req, nil)
	require.Error(t, err)

	req = request(monday, monday, 3)
	_, err = GenerateSlots(req, nil)
	require.Error(t, err)

	req = request(monday, monday.Add(24*time.Hour), 3)
	req.Timezone = "Not/AZone"
	_, err = GenerateSlots(req, nil)
	require.Error(t, err)
}

func TestOverlapsAny(t *testing.T) {
	busy := []types.TimeSlot{
		{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
	}

	assert.True(t, overlapsAny(monday.Add(10*time.Hour+30*time.Minute), monday.Add(11*time.Hour+30*time.Minute), busy))
	// touching intervals do not overlap
	assert.False(t, overlapsAny(monday.Add(11*time.Hour), monday.Add(12*time.Hour), busy))
	assert.False(t, overlapsAny(monday.Add(9*time.Hour), monday.Add(10*time.Hour), busy))
}
