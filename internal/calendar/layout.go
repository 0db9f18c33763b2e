package calendar

import (
	"slices"
	"strings"
	"time"

	"github.com/openlot/driveboard/internal/appointment"
)

// Block is one layout instruction: where a single appointment's visual block
// sits on the grid. Rows come from Grid, columns from GroupOverlaps, and
// DayColumn identifies the day column in week view (0 = Monday; always 0 in
// day view).
type Block struct {
	AppointmentID string
	RowStart      int
	RowEnd        int
	ColumnIndex   int
	TotalColumns  int
	DayColumn     int
}

// Layout is the full set of layout instructions for one view, plus the
// appointments that were left off the grid for falling outside the
// working-hours window. Presentation decides how to flag the exclusions; the
// core never drops them silently.
type Layout struct {
	Blocks   []Block
	Excluded []*appointment.Appointment
}

// BuildDayLayout lays out the appointments of a single day.
func BuildDayLayout(g Grid, day time.Time, appts []*appointment.Appointment) Layout {
	return buildLayout(g, []time.Time{TruncateToDay(day)}, appts)
}

// BuildWeekLayout lays out a 7-day week starting at weekStart (a Monday).
// Overlap grouping runs once per day, never across days.
func BuildWeekLayout(g Grid, weekStart time.Time, appts []*appointment.Appointment) Layout {
	days := make([]time.Time, 7)
	monday := StartOfWeek(weekStart)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return buildLayout(g, days, appts)
}

func buildLayout(g Grid, days []time.Time, appts []*appointment.Appointment) Layout {
	var layout Layout

	for col, day := range days {
		var kept []*appointment.Appointment
		for _, a := range appts {
			if !SameDay(a.ScheduledStart, day) {
				continue
			}
			if !g.InWindow(a) {
				layout.Excluded = append(layout.Excluded, a)
				continue
			}
			kept = append(kept, a)
		}
		if len(kept) == 0 {
			continue
		}

		placements := GroupOverlaps(kept)
		for _, a := range kept {
			p := placements[a.ID]
			layout.Blocks = append(layout.Blocks, Block{
				AppointmentID: a.ID,
				RowStart:      g.RowStart(a.ScheduledStart),
				RowEnd:        g.RowEnd(a.ScheduledEnd()),
				ColumnIndex:   p.ColumnIndex,
				TotalColumns:  p.TotalColumns,
				DayColumn:     col,
			})
		}
	}

	slices.SortFunc(layout.Blocks, func(a, b Block) int {
		if a.DayColumn != b.DayColumn {
			return a.DayColumn - b.DayColumn
		}
		if a.RowStart != b.RowStart {
			return a.RowStart - b.RowStart
		}
		return strings.Compare(a.AppointmentID, b.AppointmentID)
	})

	return layout
}

// CountByDay tallies appointments per calendar day within the given month.
// Month and year views render these tallies instead of a time grid.
func CountByDay(monthStart time.Time, appts []*appointment.Appointment) map[int]int {
	counts := make(map[int]int)
	for _, a := range appts {
		s := a.ScheduledStart
		if s.Year() == monthStart.Year() && s.Month() == monthStart.Month() {
			counts[s.Day()]++
		}
	}
	return counts
}

// CountByMonth tallies appointments per month of the anchor's year.
func CountByMonth(year int, appts []*appointment.Appointment) map[time.Month]int {
	counts := make(map[time.Month]int)
	for _, a := range appts {
		if a.ScheduledStart.Year() == year {
			counts[a.ScheduledStart.Month()]++
		}
	}
	return counts
}
