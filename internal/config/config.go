// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/openlot/driveboard/internal/appointment"
)

// Config holds the application configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig holds the dealer backend settings. An empty BaseURL means the
// console runs against the local SQLite store instead.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`        // e.g., "https://api.dealer.example"
	DealerID       string `toml:"dealer_id"`       // dealer the console operates for
	TimeoutSeconds int    `toml:"timeout_seconds"` // per-request timeout
}

// ScheduleConfig holds the working-hours window and slot granularity.
type ScheduleConfig struct {
	DayStart    string `toml:"day_start"`    // e.g., "08:00", whole hours only
	DayEnd      string `toml:"day_end"`      // e.g., "18:00", whole hours only
	SlotMinutes int    `toml:"slot_minutes"` // e.g., 30; must divide 60
}

// StorageConfig holds local database settings for offline mode.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "dark" or "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "",
			DealerID:       "",
			TimeoutSeconds: 10,
		},
		Schedule: ScheduleConfig{
			DayStart:    "08:00",
			DayEnd:      "18:00",
			SlotMinutes: 30,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "driveboard.db"
	}
	return filepath.Join(home, ".local", "share", "driveboard", "driveboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "driveboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DRIVEBOARD_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("DRIVEBOARD_DEALER_ID"); v != "" {
		cfg.API.DealerID = v
	}
	if v := os.Getenv("DRIVEBOARD_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutSeconds = n
		}
	}

	if v := os.Getenv("DRIVEBOARD_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("DRIVEBOARD_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("DRIVEBOARD_SLOT_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.SlotMinutes = n
		}
	}

	if v := os.Getenv("DRIVEBOARD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("DRIVEBOARD_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	startHour, err := parseHour(c.Schedule.DayStart, "day_start")
	if err != nil {
		return err
	}
	endHour, err := parseHour(c.Schedule.DayEnd, "day_end")
	if err != nil {
		return err
	}
	if startHour >= endHour {
		return errors.New("day_start must be before day_end")
	}

	switch c.Schedule.SlotMinutes {
	case 10, 15, 20, 30, 60:
	default:
		return fmt.Errorf("slot_minutes must divide an hour evenly, got %d", c.Schedule.SlotMinutes)
	}

	if c.API.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	if c.API.BaseURL != "" && c.API.DealerID == "" {
		return errors.New("dealer_id must be set when base_url is configured")
	}
	if c.API.BaseURL == "" && c.Storage.DBPath == "" {
		return errors.New("db_path must be set when no base_url is configured")
	}
	return nil
}

// parseHour parses a whole-hour "HH:00" time string and returns the hour.
func parseHour(t, field string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%s must be in HH:00 format, got %q", field, t)
	}
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return 0, fmt.Errorf("%s must be in HH:00 format, got %q", field, t)
	}
	if parsed.Minute() != 0 {
		return 0, fmt.Errorf("%s must be a whole hour, got %q", field, t)
	}
	return parsed.Hour(), nil
}

// Window returns the working-hours window the scheduling core operates on.
// Validate must have passed before calling it.
func (c *Config) Window() appointment.Window {
	start, _ := parseHour(c.Schedule.DayStart, "day_start")
	end, _ := parseHour(c.Schedule.DayEnd, "day_end")
	return appointment.Window{
		StartHour:   start,
		EndHour:     end,
		SlotMinutes: c.Schedule.SlotMinutes,
	}
}

// Offline returns true if the console should use the local store instead of
// the dealer backend.
func (c *Config) Offline() bool {
	return c.API.BaseURL == ""
}

// Timeout returns the per-request API timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
