// Package authstore persists the identity token and profile across process
// restarts. The store is a single JSON file; it is cleared on logout or
// when the identity service rejects the token.
package authstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"squarebuzz/internal/domain"
)

// Credentials is what survives a restart.
type Credentials struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
	SavedAt time.Time      `json:"savedAt"`
}

// ErrNoCredentials is returned when nothing is stored.
var ErrNoCredentials = errors.New("no stored credentials")

type Store struct {
	path string
}

// New opens a store at path. DefaultPath puts it under the user config dir.
func New(path string) *Store {
	return &Store{path: path}
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "squarebuzz", "credentials.json"), nil
}

func (s *Store) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrNoCredentials
		}
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, err
	}
	if creds.Token == "" {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the stored credentials. Clearing an empty store is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Expired reports whether the token's exp claim has passed. The token is
// decoded without signature verification; only the identity service can
// actually vouch for it, this is a cheap local pre-check that saves a
// round-trip for obviously dead sessions. Tokens without an exp claim or
// that are not JWTs are treated as not expired.
func (c Credentials) Expired(now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(c.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
