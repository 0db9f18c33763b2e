package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/calendar"
)

func (a *App) weekCmd() *cobra.Command {
	var anchor string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the week board",
		Long: `Print the scheduling board for one week (Monday through Sunday).

Colliding bookings share a cell, separated by '/'. Appointments outside
working hours are listed below the board instead of being dropped.

Example:
  driveboard week --date 2025-01-20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			anchorDay := time.Now()
			if anchor != "" {
				var err error
				anchorDay, err = time.ParseInLocation("2006-01-02", anchor, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", anchor)
				}
			}

			ctx := context.Background()
			appts, err := a.repo.ListAppointments(ctx, a.dealerID())
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}

			printWeekBoard(a.config.Window(), anchorDay, appts)
			return nil
		},
	}

	cmd.Flags().StringVar(&anchor, "date", "", "Any day of the week to show (YYYY-MM-DD, default today)")

	return cmd
}

// printWeekBoard renders the week layout as a text grid.
func printWeekBoard(window appointment.Window, anchor time.Time, appts []*appointment.Appointment) {
	grid := calendar.NewGrid(window)
	weekStart := calendar.StartOfWeek(anchor)
	layout := calendar.BuildWeekLayout(grid, weekStart, appts)

	byID := make(map[string]*appointment.Appointment, len(appts))
	for _, appt := range appts {
		byID[appt.ID] = appt
	}

	colWidth := (termWidth() - 8) / 7
	if colWidth < 8 {
		colWidth = 8
	}
	if colWidth > 16 {
		colWidth = 16
	}

	// cells[row][day] collects the labels occupying that slot.
	rows := grid.Rows()
	cells := make([][][]string, rows)
	for r := range cells {
		cells[r] = make([][]string, 7)
	}
	for _, b := range layout.Blocks {
		appt := byID[b.AppointmentID]
		label := truncate(appt.CustomerRef, colWidth/2)
		for r := b.RowStart; r < b.RowEnd && r < rows; r++ {
			cells[r][b.DayColumn] = append(cells[r][b.DayColumn], label)
		}
	}

	fmt.Println(formatHeader(fmt.Sprintf("Week of %s", weekStart.Format("02 Jan 2006"))))

	header := strings.Repeat(" ", 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		header += pad(day.Format("Mon 02"), colWidth)
	}
	fmt.Println(formatHeader(header))

	for r := calendar.HeaderRows; r < rows; r++ {
		line := pad(grid.RowLabel(r), 7)
		for d := 0; d < 7; d++ {
			line += pad(strings.Join(cells[r][d], "/"), colWidth)
		}
		fmt.Println(line)
	}

	if len(layout.Excluded) > 0 {
		fmt.Println(formatMuted("outside working hours:"))
		for _, appt := range layout.Excluded {
			fmt.Printf("  %s %s %s\n",
				formatMuted(appt.ScheduledStart.Format("Mon 02 Jan 15:04")),
				appt.CustomerRef,
				formatMuted(appt.ID),
			)
		}
	}
}

// pad right-pads or trims s to width runes.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width-1]) + " "
	}
	return s + strings.Repeat(" ", width-len(runes))
}
