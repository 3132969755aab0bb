package google

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const testCredentials = `{
  "installed": {
    "client_id": "client-id.apps.googleusercontent.com",
    "client_secret": "client-secret",
    "redirect_uris": ["http://localhost"],
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token"
  }
}`

func newTestAuth(t *testing.T) *Auth {
	t.Helper()
	dir := t.TempDir()
	credsFile := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(credsFile, []byte(testCredentials), 0o600))
	return NewAuth(credsFile, filepath.Join(dir, "token.json"))
}

func TestHasToken(t *testing.T) {
	a := newTestAuth(t)
	assert.False(t, a.HasToken())

	require.NoError(t, a.writeToken(&oauth2.Token{AccessToken: "abc"}))
	assert.True(t, a.HasToken())
}

func TestAuthURL(t *testing.T) {
	a := newTestAuth(t)

	url, err := a.AuthURL()
	require.NoError(t, err)
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "calendar.readonly")
}

func TestAuthURL_MissingCredentials(t *testing.T) {
	a := NewAuth(filepath.Join(t.TempDir(), "missing.json"), "")

	_, err := a.AuthURL()
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuth(t)

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
	}
	require.NoError(t, a.writeToken(token))

	got, err := a.readToken()
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
}

func TestTokenSource_MissingToken(t *testing.T) {
	a := newTestAuth(t)

	_, err := a.TokenSource(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Google OAuth token")
}

func TestTokenFilePermissions(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.writeToken(&oauth2.Token{AccessToken: "abc"}))

	info, err := os.Stat(a.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
