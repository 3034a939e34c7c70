// Package googleauth exchanges the local OAuth client secret for an
// authorized HTTP client shared by the Gmail and Calendar modules. Token
// refresh is handled by the oauth2 TokenSource; this package only caches the
// token file between runs.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	log "log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// ScopeMail covers list/send/read/modify/trash in Gmail.
	ScopeMail = "https://mail.google.com/"
	// ScopeCalendarEvents covers event CRUD in Calendar.
	ScopeCalendarEvents = "https://www.googleapis.com/auth/calendar.events"
)

// Client loads client_secret.json, reuses the cached token when present,
// and otherwise walks the installed-app consent flow on the terminal.
func Client(ctx context.Context, secretPath, tokenPath string, scopes ...string) (*http.Client, error) {
	b, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret %s: %w", secretPath, err)
	}
	conf, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		log.Info("no cached Google token, starting consent flow", "path", tokenPath)
		tok, err = tokenFromWeb(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			log.Warn("failed to cache Google token", "err", err)
		}
	}

	return conf.Client(ctx, tok), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

func tokenFromWeb(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	url := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%s\n> ", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
