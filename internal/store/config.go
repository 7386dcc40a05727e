package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const configFileName = "config.json"

// GlobalConfig holds user preferences that persist across sessions. The
// environment (internal/config) wins over anything stored here.
type GlobalConfig struct {
	// APIBaseURL optionally pins the backend for this workspace.
	APIBaseURL string `json:"apiBaseUrl,omitempty"`

	// TUI holds optional preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is "light", "dark" or "auto".
	Theme string `json:"theme,omitempty"`
}

func (s Store) configPath() string {
	return filepath.Join(s.Dir, configFileName)
}

func (s Store) LoadConfig() (*GlobalConfig, error) {
	b, err := os.ReadFile(s.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s Store) SaveConfig(cfg *GlobalConfig) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := s.configPath()

	// Keep a copy of the previous config to make recovery from accidental
	// overwrites easier. Ignore errors to avoid blocking normal usage.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(s.Dir, configFileName+".bak.*.tmp", path+".bak", prev, 0o644)
	}

	return atomicWriteFile(s.Dir, configFileName+".*.tmp", path, b, 0o600)
}
