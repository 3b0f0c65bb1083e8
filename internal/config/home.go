package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the minigrep state directory.
const HomeEnv = "MINIGREP_HOME"

// HomeDir returns the minigrep state directory.
// Priority order:
//  1. MINIGREP_HOME (if set and non-empty)
//  2. $HOME/.minigrep
//
// The directory is not created here; components that write into it do that.
func HomeDir(lookup LookupFunc) (string, error) {
	if lookup != nil {
		if home, ok := lookup(HomeEnv); ok && home != "" {
			return home, nil
		}
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	return filepath.Join(userHome, ".minigrep"), nil
}

// SettingsPath returns the default settings file location: <home>/config.yaml
func SettingsPath(lookup LookupFunc) (string, error) {
	home, err := HomeDir(lookup)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// HistoryDBPath returns the default history database location: <home>/history.db
func HistoryDBPath(lookup LookupFunc) (string, error) {
	home, err := HomeDir(lookup)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
