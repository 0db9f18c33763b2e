package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openlot/driveboard/internal/api"
	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/calendar"
	"github.com/openlot/driveboard/internal/tui/commands"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.AppointmentsLoadedMsg:
		// Stale-response guard: a fetch issued before the latest
		// navigation or mutation must not clobber the newer snapshot.
		if msg.Seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.setAppointments(msg.Appointments)
		return m, nil

	case commands.MutatedMsg:
		// Mandatory re-fetch: layout is always recomputed from the
		// confirmed server state, never patched optimistically.
		m.setStatus(fmt.Sprintf("%s %s for %s", capitalize(msg.Verb), msg.Appointment.ID, msg.Appointment.CustomerRef), false)
		return m, tea.Batch(m.reload(), commands.ClearStatusAfter(statusDisplayDuration))

	case commands.ErrMsg:
		return m.handleError(msg.Err)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleError maps command failures onto the three user-facing categories.
func (m Model) handleError(err error) (tea.Model, tea.Cmd) {
	m.loading = false
	switch {
	case errors.Is(err, api.ErrConflict):
		// The board is stale: resync before the user acts again.
		m.setStatus("Action did not apply: appointment changed on the server, reloading", true)
		return m, tea.Batch(m.reload(), commands.ClearStatusAfter(statusDisplayDuration))
	case errors.Is(err, api.ErrUnavailable):
		m.setStatus("Backend unreachable, showing last known schedule (press R to retry)", true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	default:
		m.setStatus(err.Error(), true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModePrompt {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// View modes
	case "d":
		m.view = m.view.WithMode(calendar.ModeDay)
		m.clampSelection()
	case "w":
		m.view = m.view.WithMode(calendar.ModeWeek)
		m.clampSelection()
	case "m":
		m.view = m.view.WithMode(calendar.ModeMonth)
		m.selDay = clamp(m.view.Anchor.Day(), 1, daysInMonth(m.view.MonthStart()))
	case "y":
		m.view = m.view.WithMode(calendar.ModeYear)
		m.selMonth = int(m.view.Anchor.Month())

	// Navigation
	case "t":
		m.view = m.view.Today(m.now())
		m.clampSelection()
	case "n", "right", "l":
		m.view = m.view.Next()
		m.clampSelection()
	case "p", "left", "h":
		m.view = m.view.Previous()
		m.clampSelection()

	// Selection
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)

	case "enter":
		return m.handleEnter()

	case "esc":
		m.showDetail = false

	// Lifecycle actions
	case "a":
		return m.openPrompt(promptBook, "", "customer vehicle YYYY-MM-DD HH:MM")
	case "c":
		return m.confirmSelected()
	case "r":
		return m.promptForSelected(promptReschedule, "YYYY-MM-DD HH:MM", func(a *appointment.Appointment) error {
			return a.CanReschedule(m.now())
		})
	case "x":
		return m.cancelSelected()
	case "C":
		return m.promptForSelected(promptComplete, "outcome note (min 10 chars)", func(a *appointment.Appointment) error {
			return a.CanComplete(m.now(), strings.Repeat("x", appointment.MinNoteLength))
		})

	case "Y":
		return m.copySelected()

	case "R":
		return m, m.reload()
	}

	return m, nil
}

// handleEnter drills down from month/year views or toggles the detail panel.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view.Mode {
	case calendar.ModeMonth:
		day := m.view.MonthStart().AddDate(0, 0, m.selDay-1)
		m.view = m.view.SelectDay(day)
		m.clampSelection()
	case calendar.ModeYear:
		month := time.Date(m.view.Anchor.Year(), time.Month(m.selMonth), 1, 0, 0, 0, 0, m.view.Anchor.Location())
		m.view = m.view.SelectMonth(month)
		m.selDay = 1
	default:
		m.showDetail = !m.showDetail
	}
	return m, nil
}

// handlePromptKeys handles keys while a prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// openPrompt switches to prompt mode.
func (m Model) openPrompt(kind promptKind, apptID, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.pending = kind
	m.pendingID = apptID
	m.prompt.Placeholder = placeholder
	m.prompt.SetValue("")
	m.prompt.Focus()
	return m, nil
}

// promptForSelected opens a prompt acting on the selected appointment after
// checking its guard locally. Guard failures never reach the network.
func (m Model) promptForSelected(kind promptKind, placeholder string, guard func(*appointment.Appointment) error) (tea.Model, tea.Cmd) {
	a := m.selectedAppointment()
	if a == nil {
		m.setStatus("No appointment selected", true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	if err := guard(a); err != nil {
		m.setStatus(err.Error(), true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	return m.openPrompt(kind, a.ID, placeholder)
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.pending = promptNone
	m.pendingID = ""
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// submitPrompt parses the prompt input and issues the matching command.
func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.prompt.Value())
	kind := m.pending
	id := m.pendingID
	m.closePrompt()

	switch kind {
	case promptBook:
		req, err := parseBookInput(input)
		if err != nil {
			return m.handleError(err)
		}
		if err := m.config.Window().ValidateStart(req.ScheduledStart, m.now(), appointment.DefaultDurationMinutes); err != nil {
			return m.handleError(err)
		}
		return m, commands.Book(m.repo, m.dealerID, req)

	case promptReschedule:
		newStart, err := parsePromptTime(input)
		if err != nil {
			return m.handleError(err)
		}
		if err := m.config.Window().ValidateStart(newStart, m.now(), appointment.DefaultDurationMinutes); err != nil {
			return m.handleError(err)
		}
		return m, commands.Reschedule(m.repo, id, newStart)

	case promptComplete:
		if a := m.byID[id]; a != nil {
			if err := a.CanComplete(m.now(), input); err != nil {
				return m.handleError(err)
			}
		}
		return m, commands.Complete(m.repo, id, input)
	}

	return m, nil
}

// confirmSelected confirms the selected appointment after the local guard.
func (m Model) confirmSelected() (tea.Model, tea.Cmd) {
	a := m.selectedAppointment()
	if a == nil {
		m.setStatus("No appointment selected", true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	if err := a.CanConfirm(m.now()); err != nil {
		m.setStatus(err.Error(), true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	return m, commands.Confirm(m.repo, a.ID)
}

// cancelSelected cancels the selected appointment after the local guard.
func (m Model) cancelSelected() (tea.Model, tea.Cmd) {
	a := m.selectedAppointment()
	if a == nil {
		m.setStatus("No appointment selected", true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	if err := a.CanCancel(m.now()); err != nil {
		m.setStatus(err.Error(), true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	return m, commands.Cancel(m.repo, a.ID)
}

// copySelected puts the selected appointment's details on the clipboard.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	a := m.selectedAppointment()
	if a == nil {
		m.setStatus("No appointment selected", true)
		return m, commands.ClearStatusAfter(statusDisplayDuration)
	}
	if err := copyToClipboard(detailText(a)); err != nil {
		m.setStatus("Clipboard unavailable: "+err.Error(), true)
	} else {
		m.setStatus("Copied appointment details", false)
	}
	return m, commands.ClearStatusAfter(statusDisplayDuration)
}

// visibleAppointments returns the appointments inside the active view span,
// sorted by start time with ID as tie-break.
func (m *Model) visibleAppointments() []*appointment.Appointment {
	var from, to time.Time
	switch m.view.Mode {
	case calendar.ModeDay:
		from = m.view.Anchor
		to = from.AddDate(0, 0, 1)
	case calendar.ModeWeek:
		from = m.view.WeekStart()
		to = from.AddDate(0, 0, 7)
	case calendar.ModeMonth:
		from = m.view.MonthStart()
		to = from.AddDate(0, 1, 0)
	default:
		from = time.Date(m.view.Anchor.Year(), 1, 1, 0, 0, 0, 0, m.view.Anchor.Location())
		to = from.AddDate(1, 0, 0)
	}

	var visible []*appointment.Appointment
	for _, a := range m.appts {
		if !a.ScheduledStart.Before(from) && a.ScheduledStart.Before(to) {
			visible = append(visible, a)
		}
	}
	slices.SortFunc(visible, func(a, b *appointment.Appointment) int {
		if c := a.ScheduledStart.Compare(b.ScheduledStart); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return visible
}

// selectedAppointment returns the appointment under the selection, if any.
func (m *Model) selectedAppointment() *appointment.Appointment {
	visible := m.visibleAppointments()
	if len(visible) == 0 || m.selected < 0 || m.selected >= len(visible) {
		return nil
	}
	return visible[m.selected]
}

// moveSelection shifts the selection by delta in the active view.
func (m *Model) moveSelection(delta int) {
	switch m.view.Mode {
	case calendar.ModeMonth:
		m.selDay = clamp(m.selDay+delta, 1, daysInMonth(m.view.MonthStart()))
	case calendar.ModeYear:
		m.selMonth = clamp(m.selMonth+delta, 1, 12)
	default:
		n := len(m.visibleAppointments())
		if n == 0 {
			m.selected = 0
			return
		}
		m.selected = clamp(m.selected+delta, 0, n-1)
	}
}

// clampSelection keeps the selection valid after navigation or a new fetch.
func (m *Model) clampSelection() {
	n := len(m.visibleAppointments())
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = clamp(m.selected, 0, n-1)
}

// parseBookInput parses "customer vehicle YYYY-MM-DD HH:MM".
func parseBookInput(input string) (appointment.CreateRequest, error) {
	fields := strings.Fields(input)
	if len(fields) != 4 {
		return appointment.CreateRequest{}, fmt.Errorf("expected: customer vehicle YYYY-MM-DD HH:MM")
	}
	start, err := parsePromptTime(fields[2] + " " + fields[3])
	if err != nil {
		return appointment.CreateRequest{}, err
	}
	return appointment.CreateRequest{
		CustomerRef:    fields[0],
		VehicleRef:     fields[1],
		ScheduledStart: start,
	}, nil
}

// parsePromptTime parses "YYYY-MM-DD HH:MM" in local time.
func parsePromptTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD HH:MM)", s)
	}
	return t, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func daysInMonth(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
