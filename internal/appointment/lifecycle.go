package appointment

import (
	"strings"
	"time"
)

// Action is a mutating operation a staff member can attempt on an appointment.
type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionReschedule Action = "reschedule"
	ActionCancel     Action = "cancel"
	ActionComplete   Action = "complete"
)

// CanConfirm checks whether the appointment can move to confirmed.
// Only a freshly scheduled or rescheduled booking can be confirmed.
func (a *Appointment) CanConfirm(now time.Time) error {
	if a.IsTerminal() {
		return ErrAppointmentFinalized
	}
	if !a.ScheduledStart.After(now) {
		return ErrAlreadyStarted
	}
	return nil
}

// CanReschedule checks whether the appointment can be moved to a new start.
// Terminal appointments and appointments that have already started are frozen.
func (a *Appointment) CanReschedule(now time.Time) error {
	if a.IsTerminal() {
		return ErrAppointmentFinalized
	}
	if !a.ScheduledStart.After(now) {
		return ErrAlreadyStarted
	}
	return nil
}

// CanCancel checks whether the appointment can be cancelled.
// The guards are the same as for rescheduling.
func (a *Appointment) CanCancel(now time.Time) error {
	return a.CanReschedule(now)
}

// CanComplete checks whether the appointment can be marked completed with the
// given note. The scheduled end must have passed.
func (a *Appointment) CanComplete(now time.Time, note string) error {
	if a.IsTerminal() {
		return ErrAppointmentFinalized
	}
	if !a.IsPast(now) {
		return ErrNotYetFinished
	}
	if len(strings.TrimSpace(note)) < MinNoteLength {
		return ErrNoteTooShort
	}
	return nil
}

// Confirm transitions the appointment to confirmed.
func (a *Appointment) Confirm(now time.Time) error {
	if err := a.CanConfirm(now); err != nil {
		return err
	}
	a.Status = StatusConfirmed
	return nil
}

// Reschedule moves the appointment to newStart and marks it rescheduled.
// The new start must satisfy the same window precondition as creation.
func (a *Appointment) Reschedule(newStart, now time.Time, w Window) error {
	if err := a.CanReschedule(now); err != nil {
		return err
	}
	if err := w.ValidateStart(newStart, now, a.DurationMinutes); err != nil {
		return err
	}
	a.ScheduledStart = newStart
	a.Status = StatusRescheduled
	return nil
}

// Cancel transitions the appointment to cancelled. Terminal.
func (a *Appointment) Cancel(now time.Time) error {
	if err := a.CanCancel(now); err != nil {
		return err
	}
	a.Status = StatusCancelled
	return nil
}

// Complete records the outcome note and transitions to completed. Terminal.
func (a *Appointment) Complete(note string, now time.Time) error {
	if err := a.CanComplete(now, note); err != nil {
		return err
	}
	a.Notes = strings.TrimSpace(note)
	a.Status = StatusCompleted
	return nil
}

// AllowedActions returns the actions the UI should offer for the appointment.
// The guards mirror the Can* checks; the server remains the authority and may
// still reject a permitted action.
func (a *Appointment) AllowedActions(now time.Time) []Action {
	var actions []Action
	if a.CanConfirm(now) == nil && a.Status != StatusConfirmed {
		actions = append(actions, ActionConfirm)
	}
	if a.CanReschedule(now) == nil {
		actions = append(actions, ActionReschedule)
	}
	if a.CanCancel(now) == nil {
		actions = append(actions, ActionCancel)
	}
	if !a.IsTerminal() && a.IsPast(now) {
		actions = append(actions, ActionComplete)
	}
	return actions
}
