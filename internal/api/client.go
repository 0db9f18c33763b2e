// Package api implements the appointment repository against the dealer REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/openlot/driveboard/internal/appointment"
)

// Client talks to the dealer backend. It implements appointment.Repository.
// The backend is the authority of record: every guard checked locally may
// still be rejected here, surfacing as ErrConflict.
type Client struct {
	baseURL    string
	dealerID   string
	httpClient *http.Client
}

// NewClient creates a new backend client.
func NewClient(baseURL, dealerID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		dealerID: dealerID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListAppointments returns every appointment for the dealer.
func (c *Client) ListAppointments(ctx context.Context, dealerID string) ([]*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/dealers/%s/appointments", c.baseURL, url.PathEscape(dealerID))

	var dtos []appointmentDTO
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &dtos); err != nil {
		return nil, err
	}

	appts := make([]*appointment.Appointment, 0, len(dtos))
	for _, d := range dtos {
		a, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: decoding appointment %s: %v", ErrInvalidResponse, d.ID, err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// CreateAppointment books a new test drive and returns the stored record.
func (c *Client) CreateAppointment(ctx context.Context, dealerID string, req appointment.CreateRequest) (*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/dealers/%s/appointments", c.baseURL, url.PathEscape(dealerID))
	body := createDTO{
		CustomerRef:    req.CustomerRef,
		VehicleRef:     req.VehicleRef,
		AssignedBy:     req.AssignedBy,
		ScheduledStart: formatTime(req.ScheduledStart),
	}
	return c.mutate(ctx, http.MethodPost, endpoint, body)
}

// ConfirmAppointment marks the booking as acknowledged by the customer.
func (c *Client) ConfirmAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/appointments/%s/confirm", c.baseURL, url.PathEscape(id))
	return c.mutate(ctx, http.MethodPost, endpoint, nil)
}

// RescheduleAppointment moves an appointment to a new start time.
func (c *Client) RescheduleAppointment(ctx context.Context, id string, newStart time.Time) (*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/appointments/%s/reschedule", c.baseURL, url.PathEscape(id))
	return c.mutate(ctx, http.MethodPost, endpoint, rescheduleDTO{ScheduledStart: formatTime(newStart)})
}

// CancelAppointment marks an appointment as cancelled.
func (c *Client) CancelAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/appointments/%s/cancel", c.baseURL, url.PathEscape(id))
	return c.mutate(ctx, http.MethodPost, endpoint, nil)
}

// CompleteAppointment records the outcome note and completes the appointment.
func (c *Client) CompleteAppointment(ctx context.Context, id string, note string) (*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/appointments/%s/complete", c.baseURL, url.PathEscape(id))
	return c.mutate(ctx, http.MethodPost, endpoint, completeDTO{Note: note})
}

// Close implements appointment.Repository. The HTTP client holds no state.
func (c *Client) Close() error {
	return nil
}

// mutate issues a command request and decodes the updated record.
func (c *Client) mutate(ctx context.Context, method, endpoint string, body any) (*appointment.Appointment, error) {
	var dto appointmentDTO
	if err := c.do(ctx, method, endpoint, body, &dto); err != nil {
		return nil, err
	}

	a, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding appointment %s: %v", ErrInvalidResponse, dto.ID, err)
	}
	return a, nil
}

// do executes one request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Continue below.
	case http.StatusNotFound:
		return appointment.ErrNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s", ErrConflict, string(msg))
	default:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status %d: %s", ErrInvalidResponse, resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrInvalidResponse, err)
	}
	return nil
}
