package calendar

import (
	"testing"
	"time"

	"github.com/openlot/driveboard/internal/appointment"
)

func testGrid() Grid {
	return NewGrid(appointment.DefaultWindow())
}

func at(hour, min int) time.Time {
	return time.Date(2025, 1, 20, hour, min, 0, 0, time.UTC)
}

func TestRowStart(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{name: "window start", t: at(8, 0), want: 2},
		{name: "first half slot", t: at(8, 30), want: 3},
		{name: "9am", t: at(9, 0), want: 4},
		{name: "9:30", t: at(9, 30), want: 5},
		{name: "last slot", t: at(17, 30), want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.RowStart(tt.t); got != tt.want {
				t.Errorf("RowStart(%s) = %d, want %d", tt.t.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestRowEnd(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{name: "on the hour maps to boundary", t: at(10, 0), want: 6},
		{name: "half past", t: at(10, 30), want: 7},
		{name: "mid slot rounds up", t: at(10, 15), want: 7},
		{name: "window end", t: at(18, 0), want: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.RowEnd(tt.t); got != tt.want {
				t.Errorf("RowEnd(%s) = %d, want %d", tt.t.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestRowSpanOneHourBooking(t *testing.T) {
	// A 09:00-10:00 booking on the default 08-18/30min grid must occupy
	// rows [4, 6).
	g := testGrid()

	start := at(9, 0)
	end := start.Add(time.Hour)

	if got := g.RowStart(start); got != 4 {
		t.Errorf("RowStart = %d, want 4", got)
	}
	if got := g.RowEnd(end); got != 6 {
		t.Errorf("RowEnd = %d, want 6", got)
	}
}

func TestRowsAndLabels(t *testing.T) {
	g := testGrid()

	if got := g.Rows(); got != 22 {
		t.Fatalf("Rows() = %d, want 22", got)
	}

	tests := []struct {
		row  int
		want string
	}{
		{row: 0, want: ""},
		{row: 1, want: ""},
		{row: 2, want: "08:00"},
		{row: 3, want: "08:30"},
		{row: 21, want: "17:30"},
		{row: 22, want: ""},
	}

	for _, tt := range tests {
		if got := g.RowLabel(tt.row); got != tt.want {
			t.Errorf("RowLabel(%d) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestInWindow(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name  string
		start time.Time
		dur   int
		want  bool
	}{
		{name: "inside", start: at(9, 0), dur: 60, want: true},
		{name: "ends exactly at close", start: at(17, 0), dur: 60, want: true},
		{name: "runs past close", start: at(17, 30), dur: 60, want: false},
		{name: "before open", start: at(7, 30), dur: 60, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &appointment.Appointment{ID: "a", ScheduledStart: tt.start, DurationMinutes: tt.dur}
			if got := g.InWindow(a); got != tt.want {
				t.Errorf("InWindow = %v, want %v", got, tt.want)
			}
		})
	}
}
