package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/calendar"
)

const timeColWidth = 6 // "HH:MM "

// View renders the board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.view.Mode {
	case calendar.ModeDay:
		b.WriteString(m.renderTimeGrid(1))
	case calendar.ModeWeek:
		b.WriteString(m.renderTimeGrid(7))
	case calendar.ModeMonth:
		b.WriteString(m.renderMonth())
	case calendar.ModeYear:
		b.WriteString(m.renderYear())
	}

	if m.showDetail {
		if a := m.selectedAppointment(); a != nil {
			b.WriteString("\n")
			b.WriteString(m.styles.Detail.Render(detailText(a)))
		}
	}

	if m.mode == ModePrompt {
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(m.promptTitle() + "\n" + m.prompt.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, 4)
	for _, mode := range []calendar.Mode{calendar.ModeDay, calendar.ModeWeek, calendar.ModeMonth, calendar.ModeYear} {
		if mode == m.view.Mode {
			tabs = append(tabs, m.styles.TabActive.Render(mode.String()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(mode.String()))
		}
	}

	title := m.styles.Title.Render("driveboard  " + m.view.Title())
	if m.loading {
		title += m.styles.Help.Render("  fetching...")
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTimeGrid renders the day (days=1) or week (days=7) board: a time
// column on the left and one column per day, with overlapping appointments
// splitting their day column.
func (m Model) renderTimeGrid(days int) string {
	appts := m.visibleAppointments()

	var layout calendar.Layout
	var dayDates []time.Time
	if days == 1 {
		layout = calendar.BuildDayLayout(m.grid, m.view.Anchor, appts)
		dayDates = []time.Time{m.view.Anchor}
	} else {
		layout = calendar.BuildWeekLayout(m.grid, m.view.WeekStart(), appts)
		wd := m.view.WeekDays()
		dayDates = wd[:]
	}

	dayWidth := (m.width - timeColWidth) / days
	if dayWidth < 8 {
		dayWidth = 8
	}

	selID := ""
	if a := m.selectedAppointment(); a != nil {
		selID = a.ID
	}

	cols := make([]string, 0, days+1)
	cols = append(cols, m.renderTimeColumn())
	for d := 0; d < days; d++ {
		cols = append(cols, m.renderDayColumn(layout, d, dayDates[d], dayWidth, selID))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	if len(layout.Excluded) > 0 {
		board += "\n" + m.renderExcluded(layout.Excluded)
	}
	return board
}

func (m Model) renderTimeColumn() string {
	lines := make([]string, m.grid.Rows())
	for row := range lines {
		label := m.grid.RowLabel(row)
		lines[row] = m.styles.TimeColumn.Render(pad(label, timeColWidth))
	}
	return strings.Join(lines, "\n")
}

// renderDayColumn paints one day's column. Within a row, blocks of the
// overlap cluster covering that row share the width evenly; the first row of
// each block carries the customer and vehicle label.
func (m Model) renderDayColumn(layout calendar.Layout, dayCol int, date time.Time, width int, selID string) string {
	lines := make([]string, m.grid.Rows())

	head := date.Format("Mon 02")
	headStyle := m.styles.DayHeader
	if calendar.SameDay(date, m.now()) {
		headStyle = m.styles.TodayHead
	}
	lines[0] = headStyle.Render(pad(head, width))
	lines[1] = m.styles.EmptyCell.Render(pad(strings.Repeat("-", width-1), width))

	for row := calendar.HeaderRows; row < m.grid.Rows(); row++ {
		var covering []calendar.Block
		for _, blk := range layout.Blocks {
			if blk.DayColumn == dayCol && blk.RowStart <= row && row < blk.RowEnd {
				covering = append(covering, blk)
			}
		}
		if len(covering) == 0 {
			lines[row] = m.styles.EmptyCell.Render(pad("·", width))
			continue
		}

		// All blocks covering one row belong to the same overlap cluster,
		// so they agree on TotalColumns.
		total := covering[0].TotalColumns
		cellW := width / total
		cells := make([]string, total)
		for i := range cells {
			cells[i] = strings.Repeat(" ", cellW)
		}
		for _, blk := range covering {
			a := m.byID[blk.AppointmentID]
			if a == nil {
				continue
			}
			label := ""
			if row == blk.RowStart {
				label = fmt.Sprintf("%s %s", a.CustomerRef, a.VehicleRef)
			}
			style := m.styles.Block(a.Status)
			if a.ID == selID {
				style = style.Reverse(true).Bold(true)
			}
			cells[blk.ColumnIndex] = style.Render(pad(ansi.Truncate(label, cellW, "…"), cellW))
		}
		line := strings.Join(cells, "")
		if extra := width - cellW*total; extra > 0 {
			line += strings.Repeat(" ", extra)
		}
		lines[row] = line
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderExcluded(excluded []*appointment.Appointment) string {
	parts := make([]string, 0, len(excluded))
	for _, a := range excluded {
		parts = append(parts, fmt.Sprintf("%s %s (%s)", a.ScheduledStart.Format("Mon 15:04"), a.CustomerRef, a.ID))
	}
	return m.styles.Excluded.Render("outside working hours: " + strings.Join(parts, ", "))
}

// renderMonth renders a weekday calendar with appointment counts per day.
func (m Model) renderMonth() string {
	monthStart := m.view.MonthStart()
	counts := calendar.CountByDay(monthStart, m.appts)
	total := daysInMonth(monthStart)

	const cellW = 9
	var b strings.Builder
	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		b.WriteString(m.styles.DayHeader.Render(pad(wd, cellW)))
	}
	b.WriteString("\n")

	// Leading blanks up to the weekday of the 1st, Monday first.
	offset := int(monthStart.Weekday())
	if offset == 0 {
		offset = 7
	}
	offset--
	b.WriteString(strings.Repeat(" ", offset*cellW))

	for day := 1; day <= total; day++ {
		cell := fmt.Sprintf("%2d", day)
		if n := counts[day]; n > 0 {
			cell = fmt.Sprintf("%2d (%d)", day, n)
		}
		date := monthStart.AddDate(0, 0, day-1)
		style := m.styles.EmptyCell
		if counts[day] > 0 {
			style = m.styles.Status
		}
		if calendar.SameDay(date, m.now()) {
			style = m.styles.TodayHead
		}
		if day == m.selDay {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(pad(cell, cellW)))

		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderYear renders the 12 months with their appointment counts.
func (m Model) renderYear() string {
	counts := calendar.CountByMonth(m.view.Anchor.Year(), m.appts)

	const cellW = 16
	var b strings.Builder
	for mo := 1; mo <= 12; mo++ {
		month := time.Month(mo)
		cell := month.String()
		if n := counts[month]; n > 0 {
			cell = fmt.Sprintf("%s (%d)", month, n)
		}
		style := m.styles.EmptyCell
		if counts[month] > 0 {
			style = m.styles.Status
		}
		if mo == m.selMonth {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(pad(cell, cellW)))
		if mo%3 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	status := ""
	if m.statusMsg != "" {
		if m.statusErr {
			status = m.styles.StatusErr.Render(m.statusMsg)
		} else {
			status = m.styles.Status.Render(m.statusMsg)
		}
	}

	help := "d/w/m/y views · t today · n/p move · j/k select · enter open · a book · c confirm · r reschedule · x cancel · C complete · Y copy · R refresh · q quit"
	if m.mode == ModePrompt {
		help = "enter submit · esc cancel"
	}
	return status + "\n" + m.styles.Help.Render(ansi.Truncate(help, max(m.width, 20), "…"))
}

func (m Model) promptTitle() string {
	switch m.pending {
	case promptBook:
		return "Book test drive"
	case promptReschedule:
		return "Reschedule " + m.pendingID
	case promptComplete:
		return "Complete " + m.pendingID
	default:
		return ""
	}
}

// detailText formats the detail panel and clipboard payload.
func detailText(a *appointment.Appointment) string {
	lines := []string{
		fmt.Sprintf("Test drive %s", a.ID),
		fmt.Sprintf("Customer:  %s", a.CustomerRef),
		fmt.Sprintf("Vehicle:   %s", a.VehicleRef),
		fmt.Sprintf("When:      %s - %s", a.ScheduledStart.Format("Mon 02 Jan 2006 15:04"), a.ScheduledEnd().Format("15:04")),
		fmt.Sprintf("Status:    %s", a.Status),
		fmt.Sprintf("Booked by: %s", a.AssignedBy),
	}
	if a.Notes != "" {
		lines = append(lines, "Notes:     "+a.Notes)
	}
	return strings.Join(lines, "\n")
}

// pad right-pads s with spaces to exactly width display cells, truncating if
// it is too long.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
