package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"confsched/internal/schedule"
)

// DayConfig pins one conference day shown in the day picker.
type DayConfig struct {
	// Date in YYYY-MM-DD form, interpreted in the configured timezone.
	Date string `yaml:"date" json:"date"`
	// Label is a human-friendly caption, e.g. "Tuesday, June 3, 2025".
	Label string `yaml:"label" json:"label"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone the schedule is displayed in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// DayStartHour / DayEndHour bound the display window (whole hours).
	DayStartHour int `yaml:"day_start_hour" json:"day_start_hour"`
	DayEndHour   int `yaml:"day_end_hour" json:"day_end_hour"`

	// BlockMinutes is the grid quantum. Must evenly divide 60.
	BlockMinutes int `yaml:"block_minutes" json:"block_minutes"`

	// ScheduleURL is the remote schedule JSON endpoint. If empty, or if the
	// fetch fails, the bundled dataset is used instead.
	ScheduleURL string `yaml:"schedule_url" json:"schedule_url"`

	// CacheDir is where fetched schedule bodies and HTTP cache metadata live.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// SelectionPath is the JSON file holding the user's selected session ids.
	SelectionPath string `yaml:"selection_path" json:"selection_path"`

	// UIDSuffix is appended to session ids to form iCalendar UIDs on export.
	UIDSuffix string `yaml:"uid_suffix" json:"uid_suffix"`

	// Days pins the day picker. When empty, days are derived from the
	// loaded schedule.
	Days []DayConfig `yaml:"days" json:"days"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        "127.0.0.1:8418",
		Timezone:      "UTC",
		DayStartHour:  9,
		DayEndHour:    18,
		BlockMinutes:  10,
		ScheduleURL:   "",
		CacheDir:      "./var/schedule-cache",
		SelectionPath: "./var/selection.json",
		UIDSuffix:     "@confsched",
		Days:          []DayConfig{},
		BasicAuth:     nil,
	}
}

// Normalize fills in empty values with defaults and repairs grid settings
// that would make the quantizer arithmetic invalid. A zero DayStartHour is a
// valid midnight window start, not a missing value.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8418"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	// Zero is a valid start (midnight window); only out-of-range values
	// are repaired. Load distinguishes "absent from the file" from an
	// explicit zero by unmarshaling over the defaults.
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		c.DayStartHour = 9
	}
	if c.DayEndHour <= c.DayStartHour || c.DayEndHour > 24 {
		c.DayEndHour = c.DayStartHour + 9
		if c.DayEndHour > 24 {
			c.DayEndHour = 24
		}
	}
	// The quantizer requires a block size that evenly divides one hour.
	if c.BlockMinutes <= 0 || 60%c.BlockMinutes != 0 {
		c.BlockMinutes = 10
	}
	if c.CacheDir == "" {
		c.CacheDir = "./var/schedule-cache"
	}
	if c.SelectionPath == "" {
		c.SelectionPath = "./var/selection.json"
	}
	if c.UIDSuffix == "" {
		c.UIDSuffix = "@confsched"
	}
	if c.Days == nil {
		c.Days = []DayConfig{}
	}
}

// Grid returns the quantizer configured by this config.
func (c *Config) Grid() schedule.Grid {
	return schedule.Grid{
		DayStartHour: c.DayStartHour,
		DayEndHour:   c.DayEndHour,
		BlockMinutes: c.BlockMinutes,
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: bad timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there (0600,
//     parent dir created) and returned.
//   - If the file exists, it is unmarshaled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	// Unmarshal over the defaults so fields absent from the file keep
	// their default value, while explicit settings (including zero) win.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename)
// with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".confsched-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
