package appointment

import (
	"context"
	"time"
)

// CreateRequest carries the fields needed to book a new test drive.
type CreateRequest struct {
	CustomerRef    string
	VehicleRef     string
	AssignedBy     string
	ScheduledStart time.Time
}

// Repository defines the storage boundary for appointments. The REST client
// and the offline SQLite store both implement it; the scheduling core only
// ever sees plain Appointment values.
type Repository interface {
	// ListAppointments returns every appointment for the dealer, regardless
	// of date range. Callers filter by day or week themselves.
	ListAppointments(ctx context.Context, dealerID string) ([]*Appointment, error)

	// CreateAppointment persists a new booking and returns the stored record.
	CreateAppointment(ctx context.Context, dealerID string, req CreateRequest) (*Appointment, error)

	// ConfirmAppointment marks a booking as acknowledged by the customer.
	ConfirmAppointment(ctx context.Context, id string) (*Appointment, error)

	// RescheduleAppointment moves an appointment to a new start time.
	RescheduleAppointment(ctx context.Context, id string, newStart time.Time) (*Appointment, error)

	// CancelAppointment marks an appointment as cancelled.
	CancelAppointment(ctx context.Context, id string) (*Appointment, error)

	// CompleteAppointment records the outcome note and marks the appointment
	// as completed.
	CompleteAppointment(ctx context.Context, id string, note string) (*Appointment, error)

	// Close releases any resources held by the repository.
	Close() error
}
