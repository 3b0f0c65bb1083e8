package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.IgnoreCase)
	assert.False(t, s.LineNumbers)
	assert.False(t, s.History.Enabled)
	assert.Empty(t, s.History.DBPath)
	assert.NoError(t, s.Validate())
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, s *Settings)
		wantErr string
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultSettings(), s)
			},
		},
		{
			name: "full file overrides defaults",
			content: `log_level: DEBUG
ignore_case: true
line_numbers: true
history:
  enabled: true
  db_path: /tmp/h.db
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "debug", s.LogLevel)
				assert.True(t, s.IgnoreCase)
				assert.True(t, s.LineNumbers)
				assert.True(t, s.History.Enabled)
				assert.Equal(t, "/tmp/h.db", s.History.DBPath)
			},
		},
		{
			name:    "partial file merges",
			content: "line_numbers: true\n",
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "info", s.LogLevel)
				assert.True(t, s.LineNumbers)
				assert.False(t, s.IgnoreCase)
			},
		},
		{
			name:    "malformed yaml",
			content: "log_level: [unterminated\n",
			wantErr: "failed to parse settings file",
		},
		{
			name:    "invalid log level",
			content: "log_level: loud\n",
			wantErr: "invalid log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSettings(writeSettings(t, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsUnreadable(t *testing.T) {
	// A directory cannot be read as a file
	_, err := LoadSettings(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read settings file")
}

func TestHomeDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		home, err := HomeDir(MapLookup(map[string]string{HomeEnv: "/srv/minigrep"}))
		require.NoError(t, err)
		assert.Equal(t, "/srv/minigrep", home)
	})

	t.Run("empty override falls back to user home", func(t *testing.T) {
		userHome := t.TempDir()
		t.Setenv("HOME", userHome)
		home, err := HomeDir(MapLookup(map[string]string{HomeEnv: ""}))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, ".minigrep"), home)
	})

	t.Run("derived paths", func(t *testing.T) {
		lookup := MapLookup(map[string]string{HomeEnv: "/srv/minigrep"})

		settings, err := SettingsPath(lookup)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/srv/minigrep", "config.yaml"), settings)

		db, err := HistoryDBPath(lookup)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/srv/minigrep", "history.db"), db)
	})
}
