// Package session persists the bearer token across client restarts, the way
// the browser app kept it in local storage under a fixed key.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const sessionFileName = "session.json"

// Session is the persisted credential. The token is opaque; the client never
// inspects it.
type Session struct {
	AccessToken string    `json:"accessToken,omitempty"`
	SavedAt     time.Time `json:"savedAt,omitempty"`
}

// Store reads and writes the session file inside the workspace dir.
type Store struct {
	Dir string
}

func (s Store) path() string {
	return filepath.Join(s.Dir, sessionFileName)
}

// Load returns the persisted session, or an empty session if none exists.
// A corrupted file is treated as missing; the stale credential is useless
// anyway and the caller falls back to Anonymous.
func (s Store) Load() (Session, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return Session{}, nil
	}
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, nil
	}
	return sess, nil
}

// Save persists the token atomically. The file is user-only: it holds a
// credential.
func (s Store) Save(token string) error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("session store dir is empty")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(Session{AccessToken: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(s.Dir, sessionFileName+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o600)
	return os.Rename(tmp, s.path())
}

// Clear removes the persisted session. Missing file is not an error: logout
// and 401 teardown must be idempotent.
func (s Store) Clear() error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
