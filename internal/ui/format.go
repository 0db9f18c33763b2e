package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/openlot/driveboard/internal/appointment"
)

// statusColor returns the color used for a status.
func statusColor(s appointment.Status) *color.Color {
	switch s {
	case appointment.StatusConfirmed:
		return colorConfirmed
	case appointment.StatusRescheduled:
		return colorRescheduled
	case appointment.StatusCompleted:
		return colorCompleted
	case appointment.StatusCancelled:
		return colorCancelled
	default:
		return colorScheduled
	}
}

// statusSymbol returns the one-character marker for a status.
func statusSymbol(s appointment.Status) string {
	switch s {
	case appointment.StatusConfirmed:
		return "●"
	case appointment.StatusRescheduled:
		return "◷"
	case appointment.StatusCompleted:
		return "✓"
	case appointment.StatusCancelled:
		return "✗"
	default:
		return "○"
	}
}

// PrintOpts configures appointment printing behavior.
type PrintOpts struct {
	Verbose     bool // Show notes and assignment info
	ShowActions bool // Show the actions currently permitted
	Now         time.Time
}

// PrintAppointmentRow prints a single appointment row with consistent formatting.
func PrintAppointmentRow(a *appointment.Appointment, opts PrintOpts) {
	c := statusColor(a.Status)
	symbol := c.Sprint(statusSymbol(a.Status))

	timeRange := fmt.Sprintf("%s  %s-%s",
		a.ScheduledStart.Format("Mon 02 Jan"),
		a.ScheduledStart.Format("15:04"),
		a.ScheduledEnd().Format("15:04"),
	)

	fmt.Printf("  %s  %s  %-12s %-14s %-14s %s\n",
		symbol,
		timeRange,
		c.Sprint(string(a.Status)),
		truncate(a.CustomerRef, 14),
		truncate(a.VehicleRef, 14),
		formatMuted(a.ID),
	)

	if opts.Verbose {
		if a.AssignedBy != "" {
			fmt.Printf("      %s\n", formatMuted("booked by "+a.AssignedBy))
		}
		if a.Notes != "" {
			fmt.Printf("      %s\n", formatMuted("note: "+a.Notes))
		}
	}

	if opts.ShowActions {
		actions := a.AllowedActions(opts.Now)
		if len(actions) > 0 {
			parts := make([]string, len(actions))
			for i, act := range actions {
				parts[i] = string(act)
			}
			fmt.Printf("      %s\n", formatMuted("allowed: "+strings.Join(parts, ", ")))
		}
	}
}

// PrintDayHeading prints a day heading with the appointment count.
func PrintDayHeading(day time.Time, count int) {
	heading := day.Format("Monday 02 January 2006")
	switch count {
	case 0:
		fmt.Printf("%s  %s\n", formatHeader(heading), formatMuted("no test drives"))
	case 1:
		fmt.Printf("%s  %s\n", formatHeader(heading), formatMuted("1 test drive"))
	default:
		fmt.Printf("%s  %s\n", formatHeader(heading), formatMuted(fmt.Sprintf("%d test drives", count)))
	}
}

// truncate shortens s to max runes, appending an ellipsis if trimmed.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// parseStart parses a CLI start time in "YYYY-MM-DD HH:MM" form (a T
// separator is also accepted). The result is in the local timezone; no
// conversion is applied.
func parseStart(date, clock string) (time.Time, error) {
	s := strings.TrimSpace(date + " " + clock)
	s = strings.ReplaceAll(s, "T", " ")
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q (want YYYY-MM-DD HH:MM)", s)
	}
	return t, nil
}
