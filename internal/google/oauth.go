package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Auth resolves OAuth2 tokens for the Google backend from a credentials
// file and a token file.
type Auth struct {
	credentialsFile string
	tokenFile       string
}

// NewAuth creates an Auth reading the installed-app client from
// credentialsFile and the cached user token from tokenFile.
func NewAuth(credentialsFile, tokenFile string) *Auth {
	return &Auth{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
	}
}

// HasToken reports whether a cached token file exists.
func (a *Auth) HasToken() bool {
	_, err := os.Stat(a.tokenFile)
	return err == nil
}

// oauthConfig builds the OAuth2 config from the credentials file.
func (a *Auth) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, OAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}
	return conf, nil
}

// AuthURL returns the URL a user visits to authorize access.
func (a *Auth) AuthURL() (string, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// SaveAuthCode exchanges an authorization code for tokens and caches them
// in the token file.
func (a *Auth) SaveAuthCode(ctx context.Context, code string) error {
	conf, err := a.oauthConfig()
	if err != nil {
		return err
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging auth code: %w", err)
	}
	return a.writeToken(token)
}

// TokenSource returns a refreshing token source for the cached token.
// Refreshed tokens are persisted back to the token file.
func (a *Auth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	token, err := a.readToken()
	if err != nil {
		return nil, err
	}

	return &savingTokenSource{
		auth:   a,
		source: conf.TokenSource(ctx, token),
		last:   token.AccessToken,
	}, nil
}

// HTTPClient returns an HTTP client that authenticates requests with the
// cached token, refreshing it as needed.
func (a *Auth) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := a.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

func (a *Auth) readToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return &token, nil
}

func (a *Auth) writeToken(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenFile), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(a.tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// savingTokenSource persists refreshed tokens so the next process start
// does not need to refresh again.
type savingTokenSource struct {
	auth   *Auth
	source oauth2.TokenSource
	last   string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		// Best effort: an unwritable token file only costs a refresh later.
		_ = s.auth.writeToken(token)
	}
	return token, nil
}
