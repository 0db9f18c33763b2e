package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm [appointment-id]",
		Short: "Mark a booking as confirmed by the customer",
		Long: `Confirm an appointment by its ID.

Only future, non-terminal appointments can be confirmed.

Example:
  driveboard confirm 7f3a91`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			appt, err := a.repo.ConfirmAppointment(ctx, args[0])
			if err != nil {
				return fmt.Errorf("confirming appointment: %w", err)
			}

			fmt.Printf("Confirmed test drive %s (%s at %s)\n",
				appt.ID, appt.CustomerRef, appt.ScheduledStart.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
