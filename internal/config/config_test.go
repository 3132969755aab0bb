package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendCalDAV, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://caldav.icloud.com/", cfg.CalDAV.URL)
	assert.NotEmpty(t, cfg.Google.CredentialsFile)
	assert.NotEmpty(t, cfg.Google.TokenFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, BackendCalDAV, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `backend: google
log_level: debug
caldav:
  url: https://dav.example.com/
  username: user@example.com
google:
  credentials_file: /tmp/creds.json
  token_file: /tmp/token.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, BackendGoogle, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://dav.example.com/", cfg.CalDAV.URL)
	assert.Equal(t, "user@example.com", cfg.CalDAV.Username)
	assert.Equal(t, "/tmp/creds.json", cfg.Google.CredentialsFile)
	assert.Equal(t, "/tmp/token.json", cfg.Google.TokenFile)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o600))

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: google\n"), 0o600))

	t.Setenv("AGENDA_BACKEND", "caldav")
	t.Setenv("AGENDA_CALDAV_USERNAME", "env-user@example.com")
	t.Setenv("AGENDA_CALDAV_PASSWORD", "app-password")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, BackendCalDAV, cfg.Backend)
	assert.Equal(t, "env-user@example.com", cfg.CalDAV.Username)
	assert.Equal(t, "app-password", cfg.CalDAV.Password)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("AGENDA_BACKEND", "exchange")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestLoad_UnknownLogLevel(t *testing.T) {
	t.Setenv("AGENDA_LOG_LEVEL", "verbose")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestPasswordNeverSerialized(t *testing.T) {
	// The password field carries a yaml:"-" tag; a config file that tries
	// to set it is ignored.
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "caldav:\n  password: from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.CalDAV.Password)
}
