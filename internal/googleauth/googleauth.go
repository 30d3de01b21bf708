// Package googleauth builds authorized HTTP clients for Google APIs from an
// OAuth credentials file and a cached token file. Gmail and Calendar
// integrations share this flow.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadConfig reads an OAuth client credentials file for the given scopes
func LoadConfig(credentialsPath string, scopes ...string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return config, nil
}

// Client returns an authorized HTTP client using the cached token. It does
// not start an interactive flow; run the auth command first when the token
// file is missing.
func Client(ctx context.Context, config *oauth2.Config, tokenPath string) (*http.Client, error) {
	tok, err := TokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("no cached token at %s (run the auth command first): %w", tokenPath, err)
	}
	return config.Client(ctx, tok), nil
}

// AuthCodeURL returns the URL a user visits to authorize access
func AuthCodeURL(config *oauth2.Config) string {
	return config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and caches it
func Exchange(ctx context.Context, config *oauth2.Config, authCode, tokenPath string) (*oauth2.Token, error) {
	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	if err := SaveToken(tokenPath, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// TokenFromFile retrieves a token from a local file
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// SaveToken saves a token to a file path
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
