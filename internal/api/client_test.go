package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openlot/driveboard/internal/appointment"
)

func sampleDTO(id string) appointmentDTO {
	return appointmentDTO{
		ID:              id,
		ScheduledStart:  "2025-01-20T09:00:00",
		DurationMinutes: 60,
		Status:          "scheduled",
		CustomerRef:     "cust-42",
		VehicleRef:      "veh-7",
		AssignedBy:      "staff-1",
		CreatedAt:       "2025-01-15T12:00:00",
	}
}

func TestListAppointments(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]appointmentDTO{sampleDTO("a1"), sampleDTO("a2")})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)

	appts, err := c.ListAppointments(context.Background(), "dealer-9")
	if err != nil {
		t.Fatalf("ListAppointments failed: %v", err)
	}

	if gotPath != "/dealers/dealer-9/appointments" {
		t.Errorf("path = %q", gotPath)
	}
	if len(appts) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appts))
	}

	a := appts[0]
	wantStart := time.Date(2025, 1, 20, 9, 0, 0, 0, time.Local)
	if !a.ScheduledStart.Equal(wantStart) {
		t.Errorf("ScheduledStart = %v, want %v", a.ScheduledStart, wantStart)
	}
	if a.Status != appointment.StatusScheduled {
		t.Errorf("Status = %v", a.Status)
	}
}

func TestCreateAppointment(t *testing.T) {
	var gotBody createDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sampleDTO("new-1"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)
	req := appointment.CreateRequest{
		CustomerRef:    "cust-42",
		VehicleRef:     "veh-7",
		AssignedBy:     "staff-1",
		ScheduledStart: time.Date(2025, 1, 20, 9, 0, 0, 0, time.Local),
	}

	a, err := c.CreateAppointment(context.Background(), "dealer-9", req)
	if err != nil {
		t.Fatalf("CreateAppointment failed: %v", err)
	}

	if a.ID != "new-1" {
		t.Errorf("ID = %q, want new-1", a.ID)
	}
	if gotBody.ScheduledStart != "2025-01-20T09:00:00" {
		t.Errorf("wire start = %q", gotBody.ScheduledStart)
	}
}

func TestRescheduleAppointment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appointments/a1/reschedule" {
			t.Errorf("path = %q", r.URL.Path)
		}
		dto := sampleDTO("a1")
		dto.ScheduledStart = "2025-01-21T10:00:00"
		dto.Status = "rescheduled"
		_ = json.NewEncoder(w).Encode(dto)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)

	a, err := c.RescheduleAppointment(context.Background(), "a1", time.Date(2025, 1, 21, 10, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("RescheduleAppointment failed: %v", err)
	}
	if a.Status != appointment.StatusRescheduled {
		t.Errorf("Status = %v, want rescheduled", a.Status)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: appointment.ErrNotFound},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "guard rejected", status: http.StatusUnprocessableEntity, wantErr: ErrConflict},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "dealer-9", time.Second)
			_, err := c.CancelAppointment(context.Background(), "a1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections.

	c := NewClient(srv.URL, "dealer-9", time.Second)

	_, err := c.ListAppointments(context.Background(), "dealer-9")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)

	_, err := c.ListAppointments(context.Background(), "dealer-9")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestMalformedTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dto := sampleDTO("a1")
		dto.ScheduledStart = "20/01/2025 09:00"
		_ = json.NewEncoder(w).Encode([]appointmentDTO{dto})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)

	_, err := c.ListAppointments(context.Background(), "dealer-9")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dto := sampleDTO("a1")
		dto.Status = "on-hold"
		_ = json.NewEncoder(w).Encode([]appointmentDTO{dto})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)

	_, err := c.ListAppointments(context.Background(), "dealer-9")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestCompleteAppointmentSendsNote(t *testing.T) {
	var gotBody completeDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		dto := sampleDTO("a1")
		dto.Status = "completed"
		dto.Notes = gotBody.Note
		_ = json.NewEncoder(w).Encode(dto)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dealer-9", time.Second)

	a, err := c.CompleteAppointment(context.Background(), "a1", "smooth drive, follow up monday")
	if err != nil {
		t.Fatalf("CompleteAppointment failed: %v", err)
	}
	if gotBody.Note != "smooth drive, follow up monday" {
		t.Errorf("wire note = %q", gotBody.Note)
	}
	if a.Status != appointment.StatusCompleted {
		t.Errorf("Status = %v, want completed", a.Status)
	}
}
