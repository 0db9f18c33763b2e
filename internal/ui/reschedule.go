package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) rescheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule [appointment-id] [date] [time]",
		Short: "Move a test drive to a new start time",
		Long: `Reschedule an appointment to a new slot.

The new start obeys the same rules as booking: slot boundary, working
hours, not in the past. Completed and cancelled appointments, and
appointments that have already started, cannot be moved.

Example:
  driveboard reschedule 7f3a91 2025-01-21 14:30`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			newStart, err := parseStart(args[1], args[2])
			if err != nil {
				return err
			}

			ctx := context.Background()
			appt, err := a.repo.RescheduleAppointment(ctx, args[0], newStart)
			if err != nil {
				return fmt.Errorf("rescheduling appointment: %w", err)
			}

			fmt.Printf("Rescheduled test drive %s to %s\n",
				appt.ID, appt.ScheduledStart.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
