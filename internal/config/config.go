package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted engine configuration. Every field has a working
// default so a missing or partial file never blocks startup.
type Config struct {
	// Timezone is the default primary IANA timezone for searches and
	// briefs when a request does not name one.
	Timezone string `yaml:"timezone"`

	// WorkStartHour and WorkEndHour are the default working hours
	// (0-23, half-open) applied in every timezone.
	WorkStartHour int `yaml:"work_start_hour"`
	WorkEndHour   int `yaml:"work_end_hour"`

	// SlotStepMinutes is the sliding-window advance between candidate
	// slots within one free block.
	SlotStepMinutes int `yaml:"slot_step_minutes"`

	// LargeMeetingThreshold is the attendee count at which an event
	// becomes a weekly-brief highlight.
	LargeMeetingThreshold int `yaml:"large_meeting_threshold"`

	// CacheTTLSeconds bounds reuse of provider responses within the
	// server process. Zero disables caching.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// Calendars is the default calendar set consulted when a request
	// does not name any.
	Calendars []string `yaml:"calendars"`
}

// DefaultConfig returns the in-memory defaults.
func DefaultConfig() *Config {
	return &Config{
		Timezone:              "UTC",
		WorkStartHour:         9,
		WorkEndHour:           17,
		SlotStepMinutes:       30,
		LargeMeetingThreshold: 5,
		CacheTTLSeconds:       60,
		Calendars:             []string{"primary"},
	}
}

// Normalize fills in missing or invalid values so partially filled
// configs from older versions still behave.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.WorkStartHour < 0 || c.WorkStartHour > 23 {
		c.WorkStartHour = 9
	}
	if c.WorkEndHour < 0 || c.WorkEndHour > 23 {
		c.WorkEndHour = 17
	}
	if c.WorkStartHour >= c.WorkEndHour {
		c.WorkStartHour = 9
		c.WorkEndHour = 17
	}
	if c.SlotStepMinutes <= 0 {
		c.SlotStepMinutes = 30
	}
	if c.LargeMeetingThreshold <= 0 {
		c.LargeMeetingThreshold = 5
	}
	if c.CacheTTLSeconds < 0 {
		c.CacheTTLSeconds = 0
	}
	if len(c.Calendars) == 0 {
		c.Calendars = []string{"primary"}
	}
}

// DefaultPath returns the config file location under the user config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "slotwise", "config.yaml")
}

// Load loads configuration from the given YAML path. A missing file is
// created with defaults on first run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
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

	// Atomic write: temp file in the same directory, then rename.
	tmp, err := os.CreateTemp(dir, ".slotwise-config-*.tmp")
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
