// Package google provides OAuth2 authentication for the Google calendar
// backend.
//
// It loads an installed-app OAuth client from a credentials JSON file and
// caches the user token in a token file. Both paths come from the
// application config. Tokens refresh transparently through the oauth2
// token source; a refreshed token is written back to the token file.
package google
