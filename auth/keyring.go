// Package auth persists the reporting endpoint credentials in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/watchtime-cli/watchtime/constant"
	"github.com/zalando/go-keyring"
)

const (
	service    = constant.App
	sessionKey = "session-cookie"
	csrfKey    = "csrf-token"
)

// Credentials are the values the endpoint expects from a logged-in browser.
type Credentials struct {
	Session   string
	CSRFToken string
}

// Save stores both credentials. Empty values are skipped.
func Save(c Credentials) error {
	if c.Session != "" {
		if err := keyring.Set(service, sessionKey, c.Session); err != nil {
			return err
		}
	}
	if c.CSRFToken != "" {
		if err := keyring.Set(service, csrfKey, c.CSRFToken); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored credentials. Missing entries come back empty.
func Load() (Credentials, error) {
	var c Credentials
	var err error

	if c.Session, err = get(sessionKey); err != nil {
		return c, err
	}
	if c.CSRFToken, err = get(csrfKey); err != nil {
		return c, err
	}
	return c, nil
}

// Delete removes both credentials.
func Delete() error {
	for _, k := range []string{sessionKey, csrfKey} {
		if err := keyring.Delete(service, k); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	return nil
}

func get(user string) (string, error) {
	v, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Mask hides all but the first four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", min(len(secret)-4, 12))
}
