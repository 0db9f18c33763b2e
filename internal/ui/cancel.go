package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [appointment-id]",
		Short: "Cancel a test drive",
		Long: `Cancel an appointment by its ID.

Only future, non-terminal appointments can be cancelled.

Example:
  driveboard cancel 7f3a91`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			appt, err := a.repo.CancelAppointment(ctx, args[0])
			if err != nil {
				return fmt.Errorf("cancelling appointment: %w", err)
			}

			fmt.Printf("Cancelled test drive %s (%s at %s)\n",
				appt.ID, appt.CustomerRef, appt.ScheduledStart.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
