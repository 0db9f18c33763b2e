package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [appointment-id] [note...]",
		Short: "Mark a finished test drive as completed",
		Long: `Complete an appointment whose scheduled end has passed.

A note of at least 10 characters is required; it records how the
test drive went.

Example:
  driveboard complete 7f3a91 customer liked the car, wants a quote`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			note := strings.Join(args[1:], " ")

			ctx := context.Background()
			appt, err := a.repo.CompleteAppointment(ctx, args[0], note)
			if err != nil {
				return fmt.Errorf("completing appointment: %w", err)
			}

			fmt.Printf("Completed test drive %s (%s)\n", appt.ID, appt.CustomerRef)
			return nil
		},
	}
}
