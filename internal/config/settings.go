package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// HistorySettings controls the optional search history store.
type HistorySettings struct {
	// Enabled records every run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the history database location (empty = <home>/history.db)
	DBPath string `yaml:"db_path"`
}

// Settings holds user preferences read from the settings file.
// Command-line flags take precedence over these values.
type Settings struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// IgnoreCase behaves as if IGNORE_CASE were set
	IgnoreCase bool `yaml:"ignore_case"`

	// LineNumbers prefixes every emitted line with its 1-based line number
	LineNumbers bool `yaml:"line_numbers"`

	// History contains search history configuration
	History HistorySettings `yaml:"history"`
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:    "info",
		IgnoreCase:  false,
		LineNumbers: false,
		History: HistorySettings{
			Enabled: false,
			DBPath:  "",
		},
	}
}

// LoadSettings loads settings from the specified file path.
// If the file doesn't exist, returns defaults without error.
// If the file exists but is malformed, returns an error.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var fileSettings Settings
	if err := yaml.Unmarshal(data, &fileSettings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	// Apply non-zero values from file over defaults
	if fileSettings.LogLevel != "" {
		s.LogLevel = strings.ToLower(strings.TrimSpace(fileSettings.LogLevel))
	}
	if fileSettings.IgnoreCase {
		s.IgnoreCase = true
	}
	if fileSettings.LineNumbers {
		s.LineNumbers = true
	}
	if fileSettings.History.Enabled {
		s.History.Enabled = true
	}
	if fileSettings.History.DBPath != "" {
		s.History.DBPath = fileSettings.History.DBPath
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate validates the settings values.
func (s *Settings) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[s.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", s.LogLevel)
	}
	return nil
}
