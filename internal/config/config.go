// Package config loads the agenda configuration file and applies
// environment overrides.
//
// Configuration lives at ~/.config/agenda/config.yaml by default. Every
// value can be overridden through an AGENDA_* environment variable, and
// secrets (the CalDAV password) are accepted from the environment only so
// they never end up in a file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/teemow/agenda/internal/logging"
)

// Backend names accepted in the config file and AGENDA_BACKEND.
const (
	BackendCalDAV = "caldav"
	BackendGoogle = "google"
)

// CalDAVConfig holds connection settings for a CalDAV server. The password
// is environment-only (AGENDA_CALDAV_PASSWORD) and never serialized.
type CalDAVConfig struct {
	// URL is the CalDAV endpoint, e.g. https://caldav.icloud.com/.
	URL string `yaml:"url"`
	// Username is the account name, usually an email address.
	Username string `yaml:"username"`
	// Password is populated from the environment, never from the file.
	Password string `yaml:"-"`
}

// GoogleConfig holds paths for the Google backend's OAuth material.
type GoogleConfig struct {
	// CredentialsFile is the installed-app OAuth client JSON.
	CredentialsFile string `yaml:"credentials_file"`
	// TokenFile caches the user token obtained after authorization.
	TokenFile string `yaml:"token_file"`
}

// Config is the top-level application configuration.
type Config struct {
	// Backend selects the calendar store: "caldav" or "google".
	Backend string `yaml:"backend"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	CalDAV CalDAVConfig `yaml:"caldav"`
	Google GoogleConfig `yaml:"google"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "agenda", "config.yaml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "agenda", "config.yaml")
}

// Default returns an in-memory default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

// normalize fills in missing values so partially-filled configs still
// behave correctly.
func (c *Config) normalize() {
	if c.Backend == "" {
		c.Backend = BackendCalDAV
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CalDAV.URL == "" {
		c.CalDAV.URL = "https://caldav.icloud.com/"
	}
	if c.Google.CredentialsFile == "" {
		c.Google.CredentialsFile = filepath.Join(configDir(), "credentials.json")
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = filepath.Join(configDir(), "token.json")
	}
}

// Validate checks values that would otherwise fail deep inside a backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCalDAV, BackendGoogle:
	default:
		return fmt.Errorf("unknown backend %q (valid: %s, %s)", c.Backend, BackendCalDAV, BackendGoogle)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, and applies environment overrides on top.
func Load(path string, log logging.Logger) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if log == nil {
		log = logging.DefaultLogger()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("config file not found, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.normalize()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with AGENDA_* environment variables.
func (c *Config) applyEnv() {
	setFromEnv(&c.Backend, "AGENDA_BACKEND")
	setFromEnv(&c.LogLevel, "AGENDA_LOG_LEVEL")
	setFromEnv(&c.CalDAV.URL, "AGENDA_CALDAV_URL")
	setFromEnv(&c.CalDAV.Username, "AGENDA_CALDAV_USERNAME")
	setFromEnv(&c.CalDAV.Password, "AGENDA_CALDAV_PASSWORD")
	setFromEnv(&c.Google.CredentialsFile, "AGENDA_GOOGLE_CREDENTIALS_FILE")
	setFromEnv(&c.Google.TokenFile, "AGENDA_GOOGLE_TOKEN_FILE")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func configDir() string {
	return filepath.Dir(DefaultPath())
}
