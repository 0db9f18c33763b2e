// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openlot/driveboard/internal/appointment"
)

// AppointmentsLoadedMsg is sent when a list fetch resolves. Seq echoes the
// fetch sequence number the command was issued with; the model drops the
// message if a newer fetch has been started since (stale-response guard).
type AppointmentsLoadedMsg struct {
	Appointments []*appointment.Appointment
	Seq          int
}

// MutatedMsg is sent when a mutation command succeeds. The model always
// follows it with a re-fetch; the returned record is only used for the
// status line, never patched into the list.
type MutatedMsg struct {
	Verb        string
	Appointment *appointment.Appointment
}

// ErrMsg is sent when a command fails.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadAppointments fetches the full appointment list for the dealer.
func LoadAppointments(repo appointment.Repository, dealerID string, seq int) tea.Cmd {
	return func() tea.Msg {
		appts, err := repo.ListAppointments(context.Background(), dealerID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return AppointmentsLoadedMsg{Appointments: appts, Seq: seq}
	}
}

// Book creates a new appointment.
func Book(repo appointment.Repository, dealerID string, req appointment.CreateRequest) tea.Cmd {
	return func() tea.Msg {
		appt, err := repo.CreateAppointment(context.Background(), dealerID, req)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MutatedMsg{Verb: "booked", Appointment: appt}
	}
}

// Confirm marks an appointment as acknowledged by the customer.
func Confirm(repo appointment.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		appt, err := repo.ConfirmAppointment(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MutatedMsg{Verb: "confirmed", Appointment: appt}
	}
}

// Reschedule moves an appointment to a new start.
func Reschedule(repo appointment.Repository, id string, newStart time.Time) tea.Cmd {
	return func() tea.Msg {
		appt, err := repo.RescheduleAppointment(context.Background(), id, newStart)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MutatedMsg{Verb: "rescheduled", Appointment: appt}
	}
}

// Cancel cancels an appointment.
func Cancel(repo appointment.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		appt, err := repo.CancelAppointment(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MutatedMsg{Verb: "cancelled", Appointment: appt}
	}
}

// Complete marks an appointment completed with the given note.
func Complete(repo appointment.Repository, id, note string) tea.Cmd {
	return func() tea.Msg {
		appt, err := repo.CompleteAppointment(context.Background(), id, note)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MutatedMsg{Verb: "completed", Appointment: appt}
	}
}

// ClearStatusAfter clears the status line after the given delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
