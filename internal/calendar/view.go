package calendar

import (
	"fmt"
	"time"
)

// Mode identifies the active calendar view.
type Mode int

const (
	ModeDay Mode = iota
	ModeWeek
	ModeMonth
	ModeYear
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "day"
	case ModeWeek:
		return "week"
	case ModeMonth:
		return "month"
	case ModeYear:
		return "year"
	default:
		return "unknown"
	}
}

// ViewState is the navigation state of the board: the anchor date the view is
// framed around and the active mode. It is a value type; every transition
// returns a new state.
type ViewState struct {
	Anchor time.Time // truncated to midnight
	Mode   Mode
}

// NewViewState returns the initial state: week view anchored on today.
func NewViewState(now time.Time) ViewState {
	return ViewState{Anchor: TruncateToDay(now), Mode: ModeWeek}
}

// Today re-anchors the view on the current date, keeping the mode.
func (v ViewState) Today(now time.Time) ViewState {
	v.Anchor = TruncateToDay(now)
	return v
}

// Previous shifts the anchor back by one unit of the active mode.
func (v ViewState) Previous() ViewState {
	return v.shift(-1)
}

// Next shifts the anchor forward by one unit of the active mode.
func (v ViewState) Next() ViewState {
	return v.shift(1)
}

func (v ViewState) shift(n int) ViewState {
	switch v.Mode {
	case ModeDay:
		v.Anchor = v.Anchor.AddDate(0, 0, n)
	case ModeWeek:
		v.Anchor = v.Anchor.AddDate(0, 0, 7*n)
	case ModeMonth:
		v.Anchor = v.Anchor.AddDate(0, n, 0)
	case ModeYear:
		v.Anchor = v.Anchor.AddDate(n, 0, 0)
	}
	return v
}

// WithMode switches the view mode without moving the anchor.
func (v ViewState) WithMode(m Mode) ViewState {
	v.Mode = m
	return v
}

// SelectDay drills into day view anchored on the selected date. Used when a
// day is picked from the month view.
func (v ViewState) SelectDay(day time.Time) ViewState {
	return ViewState{Anchor: TruncateToDay(day), Mode: ModeDay}
}

// SelectMonth drills into month view anchored on the selected month. Used
// when a month is picked from the year view.
func (v ViewState) SelectMonth(month time.Time) ViewState {
	return ViewState{
		Anchor: time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location()),
		Mode:   ModeMonth,
	}
}

// WeekStart returns the Monday of the anchor's week. The whole system uses a
// Monday week start.
func (v ViewState) WeekStart() time.Time {
	return StartOfWeek(v.Anchor)
}

// WeekDays returns the 7 days of the anchor's week, Monday first.
func (v ViewState) WeekDays() [7]time.Time {
	var days [7]time.Time
	monday := v.WeekStart()
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// MonthStart returns the first day of the anchor's month.
func (v ViewState) MonthStart() time.Time {
	return time.Date(v.Anchor.Year(), v.Anchor.Month(), 1, 0, 0, 0, 0, v.Anchor.Location())
}

// Title returns the heading for the active view, e.g. "Mon 20 Jan 2025" or
// "Week of 20 Jan 2025".
func (v ViewState) Title() string {
	switch v.Mode {
	case ModeDay:
		return v.Anchor.Format("Mon 02 Jan 2006")
	case ModeWeek:
		return fmt.Sprintf("Week of %s", v.WeekStart().Format("02 Jan 2006"))
	case ModeMonth:
		return v.Anchor.Format("January 2006")
	case ModeYear:
		return v.Anchor.Format("2006")
	default:
		return ""
	}
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	// Convert Sunday (0) to 7 for easier calculation
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// TruncateToDay removes the time component from t.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay returns true if both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
