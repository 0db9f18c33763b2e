// Package ui provides the command line interface for driveboard.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/config"
	"github.com/openlot/driveboard/internal/db"
	"github.com/openlot/driveboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   appointment.Repository
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the config (backend client or local
// store) the first time a command needs one.
func NewApp(repo appointment.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "driveboard",
		Short: "Test-drive scheduling console for dealership staff",
		Long: `Driveboard is a terminal console for managing test-drive appointments.

It shows a day/week/month/year scheduling board, lays out colliding
bookings side by side, and drives the appointment lifecycle
(book, confirm, reschedule, cancel, complete) against the dealer backend.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.confirmCmd())
	a.root.AddCommand(a.rescheduleCmd())
	a.root.AddCommand(a.cancelCmd())
	a.root.AddCommand(a.completeCmd())

	return a
}

// ensureRepo opens the repository if the app was constructed without one.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := openRepo(a.config)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

// openRepo picks the backend client or the local store based on config.
func openRepo(cfg *config.Config) (appointment.Repository, error) {
	if cfg.Offline() {
		repo, err := db.New(cfg.Storage.DBPath, cfg.Window(), nil)
		if err != nil {
			return nil, fmt.Errorf("opening local store: %w", err)
		}
		return repo, nil
	}
	return newBackendClient(cfg), nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("driveboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
