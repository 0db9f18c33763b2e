package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlot/driveboard/internal/appointment"
)

func (a *App) bookCmd() *cobra.Command {
	var (
		customer string
		vehicle  string
		staff    string
	)

	cmd := &cobra.Command{
		Use:   "book [date] [time]",
		Short: "Book a new test drive",
		Long: `Book a test drive at the given date and time.

The start must fall on a slot boundary inside working hours and cannot
be in the past. Duration is fixed at 60 minutes.

Example:
  driveboard book 2025-01-20 09:00 --customer C-1042 --vehicle V-208 --staff anna`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			start, err := parseStart(args[0], args[1])
			if err != nil {
				return err
			}

			req := appointment.CreateRequest{
				CustomerRef:    customer,
				VehicleRef:     vehicle,
				AssignedBy:     staff,
				ScheduledStart: start,
			}

			ctx := context.Background()
			appt, err := a.repo.CreateAppointment(ctx, a.dealerID(), req)
			if err != nil {
				return fmt.Errorf("booking test drive: %w", err)
			}

			fmt.Printf("Booked test drive %s for %s at %s\n",
				appt.ID, appt.CustomerRef, appt.ScheduledStart.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer reference (required)")
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "Vehicle reference (required)")
	cmd.Flags().StringVar(&staff, "staff", "", "Staff member booking the drive")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("vehicle")

	return cmd
}
