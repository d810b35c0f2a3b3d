package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/soloforge/internal/coop"
	"github.com/alfredjeanlab/soloforge/internal/state"
)

// SessionConfig tracks which campaign is active and who the local player is
// between invocations.
type SessionConfig struct {
	Active string `toml:"active,omitempty"`
	Player string `toml:"player,omitempty"`
}

func sessionConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "soloforge")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.toml"), nil
}

func loadSessionConfig() (SessionConfig, error) {
	path, err := sessionConfigPath()
	if err != nil {
		return SessionConfig{}, err
	}
	var s SessionConfig
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if os.IsNotExist(err) {
			return SessionConfig{}, nil
		}
		return SessionConfig{}, err
	}
	return s, nil
}

func saveSessionConfig(s SessionConfig) error {
	path, err := sessionConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}

// loadPlayerTruths opens the per-player truth record under dir, falling back
// to an in-memory record if the file is unreadable.
func loadPlayerTruths(dir, player string) coop.TruthRecord {
	r, err := state.LoadPlayerTruths(state.PlayerSavePath(dir, player))
	if err != nil {
		r, _ = state.LoadPlayerTruths("")
	}
	return r
}
