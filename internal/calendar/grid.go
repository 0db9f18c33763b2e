// Package calendar implements the scheduling board: time-grid math, overlap
// grouping, view navigation, and the layout contract consumed by presentation.
// Everything in this package is a pure function of its inputs.
package calendar

import (
	"fmt"
	"time"

	"github.com/openlot/driveboard/internal/appointment"
)

// HeaderRows is the number of rows above the first time slot. Row 0 holds the
// day heading and row 1 the column captions; time rows start at index 2.
const HeaderRows = 2

// Grid maps timestamps to grid row indices for a working-hours window.
//
// Grid does not clamp: callers must filter out appointments that fall outside
// the window before asking for rows. Out-of-range input yields out-of-range
// output. BuildDayLayout and BuildWeekLayout apply that filter and report the
// exclusions instead of dropping them silently.
type Grid struct {
	Window appointment.Window
}

// NewGrid returns a Grid over the given window.
func NewGrid(w appointment.Window) Grid {
	return Grid{Window: w}
}

// RowStart returns the first grid row occupied by an appointment starting at t.
func (g Grid) RowStart(t time.Time) int {
	row := (t.Hour()-g.Window.StartHour)*g.Window.SlotsPerHour() + HeaderRows
	return row + t.Minute()/g.Window.SlotMinutes
}

// RowEnd returns the row index just past the last row occupied by an
// appointment ending at t. A minute of zero maps to the row boundary; any
// other minute rounds up to the next slot boundary.
func (g Grid) RowEnd(t time.Time) int {
	row := (t.Hour()-g.Window.StartHour)*g.Window.SlotsPerHour() + HeaderRows
	if m := t.Minute(); m > 0 {
		row += (m + g.Window.SlotMinutes - 1) / g.Window.SlotMinutes
	}
	return row
}

// Rows returns the total number of grid rows, headers included.
func (g Grid) Rows() int {
	return (g.Window.EndHour-g.Window.StartHour)*g.Window.SlotsPerHour() + HeaderRows
}

// RowLabel returns the "HH:MM" label for a time row, or "" for header rows
// and out-of-range rows.
func (g Grid) RowLabel(row int) string {
	slot := row - HeaderRows
	if slot < 0 || slot >= g.Rows()-HeaderRows {
		return ""
	}
	mins := g.Window.StartHour*60 + slot*g.Window.SlotMinutes
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// InWindow returns true if the appointment lies entirely inside the grid's
// working-hours window on its own day.
func (g Grid) InWindow(a *appointment.Appointment) bool {
	return g.Window.Contains(a.ScheduledStart, a.DurationMinutes)
}
