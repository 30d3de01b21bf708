package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/recruitflow/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Propose interview slots from interviewer calendars",
	Long:  `Queries the authorized Google Calendar for busy periods and proposes interview slots inside business hours.`,
	RunE:  runSchedule,
}

var (
	scheduleConfigPath   string
	scheduleCandidate    string
	scheduleInterviewers []string
	scheduleDays         int
	scheduleDuration     time.Duration
	scheduleTimezone     string
	scheduleMaxSlots     int
	scheduleCalendarID   string
	scheduleEmailBody    bool
)

func init() {
	scheduleCmd.Flags().StringVar(&scheduleConfigPath, "config", "", "Path to config.json file")
	scheduleCmd.Flags().StringVar(&scheduleCandidate, "candidate", "", "Candidate email address")
	scheduleCmd.Flags().StringSliceVar(&scheduleInterviewers, "interviewer", nil, "Interviewer email address (repeatable)")
	scheduleCmd.Flags().IntVar(&scheduleDays, "days", 5, "How many days ahead to search")
	scheduleCmd.Flags().DurationVar(&scheduleDuration, "duration", time.Hour, "Interview length")
	scheduleCmd.Flags().StringVar(&scheduleTimezone, "timezone", "UTC", "Timezone for business hours")
	scheduleCmd.Flags().IntVar(&scheduleMaxSlots, "max-slots", 3, "How many slots to propose")
	scheduleCmd.Flags().StringVar(&scheduleCalendarID, "calendar", "primary", "Calendar to query for busy periods")
	scheduleCmd.Flags().BoolVar(&scheduleEmailBody, "email-body", false, "Also print a ready-to-send proposal email")
	_ = scheduleCmd.MarkFlagRequired("candidate")
	_ = scheduleCmd.MarkFlagRequired("interviewer")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAndMergeConfig(scheduleConfigPath)
	if err != nil {
		return err
	}
	if cfg.CredentialsPath == "" || cfg.TokenPath == "" {
		return fmt.Errorf("credentials_path and token_path must be configured (run the auth command first)")
	}

	scheduler, err := schedule.NewCalendarScheduler(ctx, cfg.CredentialsPath, cfg.TokenPath, scheduleCalendarID)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	now := time.Now()
	slots, err := scheduler.ProposeSlots(ctx, schedule.SlotRequest{
		CandidateEmail:    scheduleCandidate,
		InterviewerEmails: scheduleInterviewers,
		WindowStart:       now,
		WindowEnd:         now.AddDate(0, 0, scheduleDays),
		Duration:          scheduleDuration,
		Timezone:          scheduleTimezone,
		MaxSlots:          scheduleMaxSlots,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Proposed %d slots for %s:\n", len(slots), scheduleCandidate)
	for _, slot := range slots {
		fmt.Printf("  %s - %s (%s)\n",
			slot.Slot.Start.Format("Mon Jan 2 15:04"),
			slot.Slot.End.Format("15:04"),
			slot.SlotID)
	}

	if scheduleEmailBody {
		fmt.Printf("\nSubject: %s\n\n%s", schedule.ProposalSubject(scheduleCandidate), schedule.ProposalBody(slots))
	}
	return nil
}
