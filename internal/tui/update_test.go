package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openlot/driveboard/internal/api"
	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/calendar"
	"github.com/openlot/driveboard/internal/config"
	"github.com/openlot/driveboard/internal/tui/commands"
)

var testNow = time.Date(2025, 1, 20, 8, 0, 0, 0, time.Local)

// fakeRepo records calls; commands run against it in tests that execute cmds.
type fakeRepo struct {
	appts     []*appointment.Appointment
	listCalls int
}

func (f *fakeRepo) ListAppointments(ctx context.Context, dealerID string) ([]*appointment.Appointment, error) {
	f.listCalls++
	return f.appts, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, dealerID string, req appointment.CreateRequest) (*appointment.Appointment, error) {
	return &appointment.Appointment{ID: "new", CustomerRef: req.CustomerRef}, nil
}

func (f *fakeRepo) ConfirmAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return &appointment.Appointment{ID: id, Status: appointment.StatusConfirmed}, nil
}

func (f *fakeRepo) RescheduleAppointment(ctx context.Context, id string, newStart time.Time) (*appointment.Appointment, error) {
	return &appointment.Appointment{ID: id, ScheduledStart: newStart}, nil
}

func (f *fakeRepo) CancelAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return &appointment.Appointment{ID: id, Status: appointment.StatusCancelled}, nil
}

func (f *fakeRepo) CompleteAppointment(ctx context.Context, id, note string) (*appointment.Appointment, error) {
	return &appointment.Appointment{ID: id, Status: appointment.StatusCompleted, Notes: note}, nil
}

func (f *fakeRepo) Close() error { return nil }

func testModel(repo appointment.Repository) Model {
	m := New(repo, config.Default(), "local")
	m.now = func() time.Time { return testNow }
	m.view = calendar.ViewState{Anchor: calendar.TruncateToDay(testNow), Mode: calendar.ModeWeek}
	return *m
}

func weekAppt(id string, day, hour int, status appointment.Status) *appointment.Appointment {
	return &appointment.Appointment{
		ID:              id,
		ScheduledStart:  time.Date(2025, 1, day, hour, 0, 0, 0, time.Local),
		DurationMinutes: 60,
		Status:          status,
		CustomerRef:     "cust-" + id,
		VehicleRef:      "veh-" + id,
		AssignedBy:      "staff-1",
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func TestLoadedSnapshotReplacesBoard(t *testing.T) {
	m := testModel(&fakeRepo{})

	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("a", 20, 9, appointment.StatusScheduled)},
		Seq:          0,
	})

	if len(m.appts) != 1 || m.byID["a"] == nil {
		t.Errorf("snapshot not applied: %d appointments", len(m.appts))
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	m := testModel(&fakeRepo{})

	// A newer fetch is in flight.
	_ = m.reload()
	if m.fetchSeq != 1 {
		t.Fatalf("fetchSeq = %d, want 1", m.fetchSeq)
	}

	// The old fetch resolves late; its snapshot must be ignored.
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("stale", 20, 9, appointment.StatusScheduled)},
		Seq:          0,
	})
	if len(m.appts) != 0 {
		t.Error("stale snapshot was applied")
	}

	// The current fetch lands normally.
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("fresh", 20, 9, appointment.StatusScheduled)},
		Seq:          1,
	})
	if m.byID["fresh"] == nil {
		t.Error("current snapshot was not applied")
	}
}

func TestMutationTriggersRefetch(t *testing.T) {
	m := testModel(&fakeRepo{})
	seqBefore := m.fetchSeq

	m, cmd := update(t, m, commands.MutatedMsg{Verb: "booked", Appointment: weekAppt("a", 20, 9, appointment.StatusScheduled)})

	if cmd == nil {
		t.Fatal("expected a re-fetch command")
	}
	if m.fetchSeq != seqBefore+1 {
		t.Errorf("fetchSeq = %d, want %d", m.fetchSeq, seqBefore+1)
	}
	if m.statusMsg == "" || m.statusErr {
		t.Errorf("status = %q (err=%v), want success message", m.statusMsg, m.statusErr)
	}
	// The mutation result is never patched into the list directly.
	if len(m.appts) != 0 {
		t.Error("mutation result was patched into the snapshot")
	}
}

func TestConflictErrorReloads(t *testing.T) {
	m := testModel(&fakeRepo{})
	seqBefore := m.fetchSeq

	m, cmd := update(t, m, commands.ErrMsg{Err: api.ErrConflict})

	if !m.statusErr || !strings.Contains(m.statusMsg, "reload") {
		t.Errorf("status = %q, want conflict notice", m.statusMsg)
	}
	if cmd == nil || m.fetchSeq != seqBefore+1 {
		t.Error("conflict did not trigger a re-fetch")
	}
}

func TestUnavailableErrorKeepsSnapshot(t *testing.T) {
	m := testModel(&fakeRepo{})
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("a", 20, 9, appointment.StatusScheduled)},
		Seq:          0,
	})
	seqBefore := m.fetchSeq

	m, _ = update(t, m, commands.ErrMsg{Err: api.ErrUnavailable})

	if len(m.appts) != 1 {
		t.Error("last known snapshot was discarded")
	}
	if m.fetchSeq != seqBefore {
		t.Error("transport error must not auto-reload")
	}
	if !m.statusErr {
		t.Error("expected an error status")
	}
}

func TestNavigationKeys(t *testing.T) {
	m := testModel(&fakeRepo{})

	m, _ = update(t, m, key("n"))
	if !m.view.Anchor.Equal(calendar.TruncateToDay(testNow).AddDate(0, 0, 7)) {
		t.Errorf("n: anchor = %v, want next week", m.view.Anchor)
	}

	m, _ = update(t, m, key("t"))
	if !m.view.Anchor.Equal(calendar.TruncateToDay(testNow)) {
		t.Errorf("t: anchor = %v, want today", m.view.Anchor)
	}

	m, _ = update(t, m, key("d"))
	if m.view.Mode != calendar.ModeDay {
		t.Errorf("d: mode = %v, want day", m.view.Mode)
	}

	m, _ = update(t, m, key("y"))
	if m.view.Mode != calendar.ModeYear {
		t.Errorf("y: mode = %v, want year", m.view.Mode)
	}
}

func TestSelectionMovesAndClamps(t *testing.T) {
	m := testModel(&fakeRepo{})
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{
			weekAppt("a", 20, 9, appointment.StatusScheduled),
			weekAppt("b", 21, 10, appointment.StatusScheduled),
		},
		Seq: 0,
	})

	m, _ = update(t, m, key("j"))
	if got := m.selectedAppointment(); got == nil || got.ID != "b" {
		t.Errorf("selection = %v, want b", got)
	}

	// Clamped at the end of the list.
	m, _ = update(t, m, key("j"))
	if got := m.selectedAppointment(); got == nil || got.ID != "b" {
		t.Errorf("selection = %v, want still b", got)
	}

	m, _ = update(t, m, key("k"))
	if got := m.selectedAppointment(); got == nil || got.ID != "a" {
		t.Errorf("selection = %v, want a", got)
	}
}

func TestCancelChecksGuardLocally(t *testing.T) {
	// A completed appointment cannot be cancelled; the key must produce an
	// error status without any command.
	m := testModel(&fakeRepo{})
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("a", 20, 9, appointment.StatusCompleted)},
		Seq:          0,
	})

	m, _ = update(t, m, key("x"))

	if !m.statusErr {
		t.Error("expected a guard error status")
	}
	if !strings.Contains(m.statusMsg, "completed or cancelled") {
		t.Errorf("status = %q, want the finalized guard message", m.statusMsg)
	}
}

func TestCompleteGuardRejectsUnfinished(t *testing.T) {
	m := testModel(&fakeRepo{})
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("a", 20, 9, appointment.StatusScheduled)},
		Seq:          0,
	})

	m, _ = update(t, m, key("C"))

	if m.mode == ModePrompt {
		t.Error("prompt opened for an unfinished appointment")
	}
	if !m.statusErr {
		t.Error("expected a guard error status")
	}
}

func TestBookPromptFlow(t *testing.T) {
	m := testModel(&fakeRepo{})

	m, _ = update(t, m, key("a"))
	if m.mode != ModePrompt || m.pending != promptBook {
		t.Fatalf("mode = %v pending = %v, want book prompt", m.mode, m.pending)
	}

	m.prompt.SetValue("cust-1 veh-2 2025-01-21 09:30")
	m, cmd := update(t, m, key("enter"))

	if m.mode != ModeNormal {
		t.Error("prompt did not close on submit")
	}
	if cmd == nil {
		t.Fatal("expected a booking command")
	}
	msg, ok := cmd().(commands.MutatedMsg)
	if !ok {
		t.Fatalf("command produced %T, want MutatedMsg", cmd())
	}
	if msg.Appointment.CustomerRef != "cust-1" {
		t.Errorf("CustomerRef = %q", msg.Appointment.CustomerRef)
	}
}

func TestBookPromptRejectsOffSlotStart(t *testing.T) {
	m := testModel(&fakeRepo{})

	m, _ = update(t, m, key("a"))
	m.prompt.SetValue("cust-1 veh-2 2025-01-21 09:10")
	m, _ = update(t, m, key("enter"))

	if !m.statusErr || !strings.Contains(m.statusMsg, "slot boundary") {
		t.Errorf("status = %q, want slot boundary error", m.statusMsg)
	}
}

func TestPromptEscCancels(t *testing.T) {
	m := testModel(&fakeRepo{})

	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("esc"))

	if m.mode != ModeNormal || m.pending != promptNone {
		t.Errorf("mode = %v pending = %v, want normal", m.mode, m.pending)
	}
}

func TestMonthDrillDown(t *testing.T) {
	m := testModel(&fakeRepo{})

	m, _ = update(t, m, key("m"))
	m.selDay = 15
	m, _ = update(t, m, key("enter"))

	if m.view.Mode != calendar.ModeDay {
		t.Fatalf("mode = %v, want day", m.view.Mode)
	}
	if m.view.Anchor.Day() != 15 {
		t.Errorf("anchor day = %d, want 15", m.view.Anchor.Day())
	}
}

func TestClipboardCopy(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}
	defer func() { copyToClipboard = orig }()

	m := testModel(&fakeRepo{})
	m, _ = update(t, m, commands.AppointmentsLoadedMsg{
		Appointments: []*appointment.Appointment{weekAppt("a", 20, 9, appointment.StatusScheduled)},
		Seq:          0,
	})

	m, _ = update(t, m, key("Y"))

	if !strings.Contains(copied, "cust-a") || !strings.Contains(copied, "veh-a") {
		t.Errorf("copied = %q, want appointment details", copied)
	}
	if m.statusErr {
		t.Errorf("status = %q, want success", m.statusMsg)
	}
}

func TestParsePromptTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "valid", in: "2025-01-21 09:30"},
		{name: "padded", in: "  2025-01-21 09:30  "},
		{name: "wrong format", in: "21/01/2025 09:30", wantErr: true},
		{name: "missing clock", in: "2025-01-21", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePromptTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePromptTime(%q) accepted", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePromptTime failed: %v", err)
			}
			want := time.Date(2025, 1, 21, 9, 30, 0, 0, time.Local)
			if !got.Equal(want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}
