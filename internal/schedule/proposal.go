package schedule

import (
	"fmt"
	"strings"

	"github.com/jonathan/recruitflow/internal/types"
)

// ProposalSubject builds the subject line for a slot proposal email
func ProposalSubject(candidateEmail string) string {
	return fmt.Sprintf("Interview availability for %s", candidateEmail)
}

// ProposalBody formats proposed slots as a plain-text email body, the
// fallback when no calendar invite can be created.
func ProposalBody(slots []types.InterviewSlot) string {
	var sb strings.Builder

	sb.WriteString("Hi,\n\n")
	sb.WriteString("Please pick one of the following interview slots:\n\n")

	for i, slot := range slots {
		sb.WriteString(fmt.Sprintf("  %d. %s - %s",
			i+1,
			slot.Slot.Start.Format("Monday, January 2 at 15:04"),
			slot.Slot.End.Format("15:04")))
		if slot.Slot.Timezone != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", slot.Slot.Timezone))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nReply with the number that works best for you.\n")
	return sb.String()
}
