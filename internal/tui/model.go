// Package tui provides the terminal scheduling board for driveboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/calendar"
	"github.com/openlot/driveboard/internal/config"
	"github.com/openlot/driveboard/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // A text prompt is open
)

// promptKind identifies what the open prompt collects.
type promptKind int

const (
	promptNone promptKind = iota
	promptBook        // "customer vehicle YYYY-MM-DD HH:MM"
	promptReschedule  // "YYYY-MM-DD HH:MM"
	promptComplete    // free-text outcome note
)

// statusDisplayDuration is how long transient status messages stay visible.
const statusDisplayDuration = 4 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo     appointment.Repository
	config   *config.Config
	dealerID string

	// Theme and styles
	styles *Styles

	// Board state
	view   calendar.ViewState
	grid   calendar.Grid
	appts  []*appointment.Appointment
	byID   map[string]*appointment.Appointment
	now    func() time.Time // injectable for testing

	// Selection: index into visibleAppointments for day/week view,
	// day-of-month for month view, month (1-12) for year view.
	selected int
	selDay   int
	selMonth int

	// Fetch state. fetchSeq increments on every issued fetch; a response
	// carrying an older sequence number is stale and ignored.
	fetchSeq int
	loading  bool

	// Prompt state
	mode       Mode
	prompt     textinput.Model
	pending    promptKind
	pendingID  string // appointment the prompt acts on
	showDetail bool

	// Messages
	statusMsg string
	statusErr bool
	err       error

	// Terminal dimensions
	width  int
	height int
}

// New creates a new TUI model.
func New(repo appointment.Repository, cfg *config.Config, dealerID string) *Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 60

	now := time.Now

	return &Model{
		repo:     repo,
		config:   cfg,
		dealerID: dealerID,
		styles:   NewStyles(LoadTheme(cfg.UI.Theme)),
		view:     calendar.NewViewState(now()),
		grid:     calendar.NewGrid(cfg.Window()),
		byID:     make(map[string]*appointment.Appointment),
		now:      now,
		selDay:   now().Day(),
		selMonth: int(now().Month()),
		prompt:   ti,
		width:    100,
		height:   35,
	}
}

// Init starts the initial fetch.
func (m Model) Init() tea.Cmd {
	return commands.LoadAppointments(m.repo, m.dealerID, m.fetchSeq)
}

// reload issues a fresh fetch, bumping the sequence number so any in-flight
// response is discarded when it lands.
func (m *Model) reload() tea.Cmd {
	m.fetchSeq++
	m.loading = true
	return commands.LoadAppointments(m.repo, m.dealerID, m.fetchSeq)
}

// setAppointments replaces the snapshot the board renders from.
func (m *Model) setAppointments(appts []*appointment.Appointment) {
	m.appts = appts
	m.byID = make(map[string]*appointment.Appointment, len(appts))
	for _, a := range appts {
		m.byID[a.ID] = a
	}
	m.clampSelection()
}

// Run starts the TUI.
func Run(repo appointment.Repository, cfg *config.Config) error {
	dealerID := cfg.API.DealerID
	if cfg.Offline() {
		dealerID = "local"
	}
	model := New(repo, cfg, dealerID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
