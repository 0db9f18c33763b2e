// Package appointment defines the core domain types for driveboard.
package appointment

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrMissingCustomer      = errors.New("customer reference cannot be empty")
	ErrMissingVehicle       = errors.New("vehicle reference cannot be empty")
	ErrStartInPast          = errors.New("scheduled start cannot be in the past")
	ErrOffSlotBoundary      = errors.New("scheduled start must fall on a slot boundary")
	ErrOutsideWorkingHours  = errors.New("scheduled start must fall within working hours")
	ErrNoteTooShort         = errors.New("completion note must be at least 10 characters")
	ErrAppointmentFinalized = errors.New("appointment is completed or cancelled")
	ErrNotYetFinished       = errors.New("appointment has not finished yet")
	ErrAlreadyStarted       = errors.New("appointment start is not in the future")
)

// Domain errors.
var (
	ErrNotFound = errors.New("appointment not found")
)

// DefaultDurationMinutes is the fixed length of a test drive.
const DefaultDurationMinutes = 60

// MinNoteLength is the minimum length of a completion note.
const MinNoteLength = 10

// Status represents the state of an appointment.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusRescheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status allows no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Window describes the bookable portion of a day and the slot granularity.
type Window struct {
	StartHour   int // first bookable hour, e.g. 8
	EndHour     int // exclusive end hour, e.g. 18
	SlotMinutes int // minimum addressable unit, e.g. 30
}

// DefaultWindow returns the standard dealer schedule: 08:00-18:00, 30-minute slots.
func DefaultWindow() Window {
	return Window{StartHour: 8, EndHour: 18, SlotMinutes: 30}
}

// SlotsPerHour returns how many slots fit in one hour.
func (w Window) SlotsPerHour() int {
	return 60 / w.SlotMinutes
}

// Contains returns true if an appointment of the given duration starting at t
// fits entirely inside the window.
func (w Window) Contains(t time.Time, durationMinutes int) bool {
	startMins := t.Hour()*60 + t.Minute()
	endMins := startMins + durationMinutes
	return startMins >= w.StartHour*60 && endMins <= w.EndHour*60
}

// OnSlotBoundary returns true if t is aligned to the slot granularity.
func (w Window) OnSlotBoundary(t time.Time) bool {
	return t.Minute()%w.SlotMinutes == 0 && t.Second() == 0
}

// ValidateStart checks the creation precondition for a start time: on a slot
// boundary, inside working hours, and not in the past relative to now.
func (w Window) ValidateStart(start, now time.Time, durationMinutes int) error {
	if !w.OnSlotBoundary(start) {
		return ErrOffSlotBoundary
	}
	if !w.Contains(start, durationMinutes) {
		return ErrOutsideWorkingHours
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// Appointment represents a scheduled test drive.
type Appointment struct {
	ID              string
	ScheduledStart  time.Time // local time, minute precision
	DurationMinutes int
	Status          Status
	CustomerRef     string // opaque, display-only
	VehicleRef      string // opaque, display-only
	Notes           string
	AssignedBy      string // staff member who booked it, immutable
	CreatedAt       time.Time
}

// New creates a new Appointment with validation. The start time must satisfy
// the window precondition relative to now.
func New(customerRef, vehicleRef, assignedBy string, start time.Time, now time.Time, w Window) (*Appointment, error) {
	if strings.TrimSpace(customerRef) == "" {
		return nil, ErrMissingCustomer
	}
	if strings.TrimSpace(vehicleRef) == "" {
		return nil, ErrMissingVehicle
	}
	if err := w.ValidateStart(start, now, DefaultDurationMinutes); err != nil {
		return nil, err
	}

	return &Appointment{
		ScheduledStart:  start,
		DurationMinutes: DefaultDurationMinutes,
		Status:          StatusScheduled,
		CustomerRef:     customerRef,
		VehicleRef:      vehicleRef,
		AssignedBy:      assignedBy,
		CreatedAt:       now,
	}, nil
}

// ScheduledEnd returns the derived end time. It is never stored.
func (a *Appointment) ScheduledEnd() time.Time {
	return a.ScheduledStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsTerminal returns true if the appointment is completed or cancelled.
func (a *Appointment) IsTerminal() bool {
	return a.Status.Terminal()
}

// IsPast returns true if the appointment's scheduled end has passed.
func (a *Appointment) IsPast(now time.Time) bool {
	return now.After(a.ScheduledEnd())
}

// SameDay returns true if both appointments fall on the same calendar day.
func (a *Appointment) SameDay(other *Appointment) bool {
	if other == nil {
		return false
	}
	ay, am, ad := a.ScheduledStart.Date()
	by, bm, bd := other.ScheduledStart.Date()
	return ay == by && am == bm && ad == bd
}

// OverlapsWith returns true if the two appointments' half-open intervals
// intersect on the same day.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	if other == nil || !a.SameDay(other) {
		return false
	}
	return a.ScheduledStart.Before(other.ScheduledEnd()) &&
		other.ScheduledStart.Before(a.ScheduledEnd())
}
