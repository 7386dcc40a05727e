// Package store owns the client's on-disk workspace (~/.palchi): the global
// config file, persisted TUI state, and the snapshot cache of the last
// successful list loads.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes files inside the workspace directory.
type Store struct {
	Dir string
}

// DefaultDir resolves the workspace directory. PALCHI_CONFIG_DIR overrides it
// (keeps unit tests from touching ~/.palchi).
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("PALCHI_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".palchi"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
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
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
