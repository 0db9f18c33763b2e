package api

import (
	"fmt"
	"time"

	"github.com/openlot/driveboard/internal/appointment"
)

// timeLayout is the wire format for timestamps. Times are dealer-local; no
// timezone conversion happens anywhere in the system.
const timeLayout = "2006-01-02T15:04:05"

// appointmentDTO is the wire representation of an appointment.
type appointmentDTO struct {
	ID              string `json:"id"`
	ScheduledStart  string `json:"scheduled_start"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CustomerRef     string `json:"customer_ref"`
	VehicleRef      string `json:"vehicle_ref"`
	Notes           string `json:"notes,omitempty"`
	AssignedBy      string `json:"assigned_by"`
	CreatedAt       string `json:"created_at"`
}

// createDTO is the request body for booking a new test drive.
type createDTO struct {
	CustomerRef    string `json:"customer_ref"`
	VehicleRef     string `json:"vehicle_ref"`
	AssignedBy     string `json:"assigned_by"`
	ScheduledStart string `json:"scheduled_start"`
}

// rescheduleDTO is the request body for moving an appointment.
type rescheduleDTO struct {
	ScheduledStart string `json:"scheduled_start"`
}

// completeDTO is the request body for closing out an appointment.
type completeDTO struct {
	Note string `json:"note"`
}

// toDomain converts a wire appointment into the domain type.
func (d appointmentDTO) toDomain() (*appointment.Appointment, error) {
	start, err := time.ParseInLocation(timeLayout, d.ScheduledStart, time.Local)
	if err != nil {
		return nil, err
	}
	created, err := time.ParseInLocation(timeLayout, d.CreatedAt, time.Local)
	if err != nil {
		return nil, err
	}

	duration := d.DurationMinutes
	if duration == 0 {
		duration = appointment.DefaultDurationMinutes
	}

	status := appointment.Status(d.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", d.Status)
	}

	return &appointment.Appointment{
		ID:              d.ID,
		ScheduledStart:  start,
		DurationMinutes: duration,
		Status:          status,
		CustomerRef:     d.CustomerRef,
		VehicleRef:      d.VehicleRef,
		Notes:           d.Notes,
		AssignedBy:      d.AssignedBy,
		CreatedAt:       created,
	}, nil
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}
