package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/calendar"
)

func (a *App) listCmd() *cobra.Command {
	var (
		day     string
		all     bool
		verbose bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test-drive appointments",
		Long: `List appointments for a single day (default: today).

Examples:
  driveboard list
  driveboard list --day 2025-01-20
  driveboard list --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if noColor {
				DisableColor()
			}

			ctx := context.Background()
			appts, err := a.repo.ListAppointments(ctx, a.dealerID())
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}

			now := time.Now()
			opts := PrintOpts{Verbose: verbose, ShowActions: verbose, Now: now}

			if all {
				for _, appt := range appts {
					PrintAppointmentRow(appt, opts)
				}
				return nil
			}

			target := calendar.TruncateToDay(now)
			if day != "" {
				target, err = time.ParseInLocation("2006-01-02", day, time.Local)
				if err != nil {
					return fmt.Errorf("invalid day %q (want YYYY-MM-DD)", day)
				}
			}

			var onDay []*appointment.Appointment
			for _, appt := range appts {
				if calendar.SameDay(appt.ScheduledStart, target) {
					onDay = append(onDay, appt)
				}
			}

			PrintDayHeading(target, len(onDay))
			for _, appt := range onDay {
				PrintAppointmentRow(appt, opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day to list (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&all, "all", false, "List every appointment regardless of date")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show notes, staff, and permitted actions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
