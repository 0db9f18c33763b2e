// Package db provides the SQLite-backed appointment repository for offline mode.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/openlot/driveboard/internal/appointment"
)

// timeLayout is how timestamps are stored. Dealer-local, no zone.
const timeLayout = "2006-01-02T15:04:05"

// SQLite implements appointment.Repository against a local database. In
// offline mode it is the authority of record, so it enforces the same
// lifecycle guards the dealer backend would.
type SQLite struct {
	db     *sql.DB
	window appointment.Window
	now    func() time.Time // injectable for testing
}

// New creates a new SQLite repository and runs migrations.
func New(path string, window appointment.Window, now func() time.Time) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if now == nil {
		now = time.Now
	}

	s := &SQLite{db: db, window: window, now: now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS appointments (
			id               TEXT PRIMARY KEY,
			dealer_id        TEXT NOT NULL,
			scheduled_start  TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			status           TEXT NOT NULL,
			customer_ref     TEXT NOT NULL,
			vehicle_ref      TEXT NOT NULL,
			notes            TEXT NOT NULL DEFAULT '',
			assigned_by      TEXT NOT NULL,
			created_at       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_appointments_dealer
			ON appointments(dealer_id, scheduled_start);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ListAppointments returns every appointment for the dealer, oldest first.
func (s *SQLite) ListAppointments(ctx context.Context, dealerID string) ([]*appointment.Appointment, error) {
	query := `
		SELECT id, scheduled_start, duration_minutes, status,
		       customer_ref, vehicle_ref, notes, assigned_by, created_at
		FROM appointments
		WHERE dealer_id = ?
		ORDER BY scheduled_start, id
	`

	rows, err := s.db.QueryContext(ctx, query, dealerID)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var appts []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}

	return appts, nil
}

// CreateAppointment validates the booking and persists it.
func (s *SQLite) CreateAppointment(ctx context.Context, dealerID string, req appointment.CreateRequest) (*appointment.Appointment, error) {
	a, err := appointment.New(req.CustomerRef, req.VehicleRef, req.AssignedBy, req.ScheduledStart, s.now(), s.window)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.NewString()

	query := `
		INSERT INTO appointments (
			id, dealer_id, scheduled_start, duration_minutes, status,
			customer_ref, vehicle_ref, notes, assigned_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		a.ID,
		dealerID,
		a.ScheduledStart.Format(timeLayout),
		a.DurationMinutes,
		a.Status,
		a.CustomerRef,
		a.VehicleRef,
		a.Notes,
		a.AssignedBy,
		a.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting appointment: %w", err)
	}

	return a, nil
}

// ConfirmAppointment marks the booking as acknowledged by the customer.
func (s *SQLite) ConfirmAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.Confirm(s.now())
	})
}

// RescheduleAppointment moves an appointment to a new start time.
func (s *SQLite) RescheduleAppointment(ctx context.Context, id string, newStart time.Time) (*appointment.Appointment, error) {
	return s.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.Reschedule(newStart, s.now(), s.window)
	})
}

// CancelAppointment marks an appointment as cancelled.
func (s *SQLite) CancelAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.Cancel(s.now())
	})
}

// CompleteAppointment records the outcome note and completes the appointment.
func (s *SQLite) CompleteAppointment(ctx context.Context, id string, note string) (*appointment.Appointment, error) {
	return s.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.Complete(note, s.now())
	})
}

// transition loads an appointment, applies a lifecycle mutation, and writes
// the result back. The read and write run in one transaction so concurrent
// console instances cannot interleave updates.
func (s *SQLite) transition(ctx context.Context, id string, apply func(*appointment.Appointment) error) (*appointment.Appointment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		SELECT id, scheduled_start, duration_minutes, status,
		       customer_ref, vehicle_ref, notes, assigned_by, created_at
		FROM appointments
		WHERE id = ?
	`
	a, err := scanAppointment(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, appointment.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := apply(a); err != nil {
		return nil, err
	}

	update := `
		UPDATE appointments
		SET scheduled_start = ?, status = ?, notes = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, update,
		a.ScheduledStart.Format(timeLayout), a.Status, a.Notes, a.ID,
	); err != nil {
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return a, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanAppointment reads one appointment row.
func scanAppointment(row scanner) (*appointment.Appointment, error) {
	var (
		a         appointment.Appointment
		start     string
		createdAt string
	)

	err := row.Scan(
		&a.ID,
		&start,
		&a.DurationMinutes,
		&a.Status,
		&a.CustomerRef,
		&a.VehicleRef,
		&a.Notes,
		&a.AssignedBy,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning appointment: %w", err)
	}

	a.ScheduledStart, err = time.ParseInLocation(timeLayout, start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled start: %w", err)
	}
	a.CreatedAt, err = time.ParseInLocation(timeLayout, createdAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &a, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
