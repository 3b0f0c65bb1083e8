package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/minigrep/internal/history"
)

func TestHistoryDisabledByDefault(t *testing.T) {
	e := newTestEnv(t)
	path := e.writeFile(t, "poem.txt", poem)

	_, _, err := e.execute("frog", path)
	require.NoError(t, err)

	stdout, _, err := e.execute("history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No search history recorded")
	assert.Contains(t, stdout, filepath.Join(e.home, "history.db"))
}

func TestHistoryRecordsRuns(t *testing.T) {
	e := newTestEnv(t)
	e.writeSettings(t, "history:\n  enabled: true\n")
	path := e.writeFile(t, "poem.txt", poem)
	missing := filepath.Join(e.home, "missing.txt")

	_, _, err := e.execute("frog", path)
	require.NoError(t, err)
	_, _, err = e.execute("-i", "to", path)
	require.NoError(t, err)
	_, _, err = e.execute("x", missing)
	require.Error(t, err)

	store, err := history.NewStore(filepath.Join(e.home, "history.db"))
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byQuery := map[string]*history.Entry{}
	for _, entry := range entries {
		byQuery[entry.Query] = entry
	}

	assert.Equal(t, 1, byQuery["frog"].MatchCount)
	assert.True(t, byQuery["frog"].CaseSensitive)
	assert.Empty(t, byQuery["frog"].ErrorMessage)

	assert.Equal(t, 4, byQuery["to"].MatchCount)
	assert.False(t, byQuery["to"].CaseSensitive)

	assert.Contains(t, byQuery["x"].ErrorMessage, missing)

	stdout, _, err := e.execute("history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "QUERY")
	assert.Contains(t, stdout, `"frog"`)
	assert.Contains(t, stdout, "ignore-case")
	assert.Contains(t, stdout, "error")
}

func TestHistoryLimit(t *testing.T) {
	e := newTestEnv(t)
	e.writeSettings(t, "history:\n  enabled: true\n")
	path := e.writeFile(t, "poem.txt", poem)

	for _, q := range []string{"a", "b", "c"} {
		_, _, err := e.execute(q, path)
		require.NoError(t, err)
	}

	stdout, _, err := e.execute("history", "--limit", "1")
	require.NoError(t, err)

	// Header plus one row
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 2)
}

func TestHistoryNegativeLimit(t *testing.T) {
	_, _, err := newTestEnv(t).execute("history", "--limit", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit must be >= 0")
}

func TestHistoryCustomDBPath(t *testing.T) {
	e := newTestEnv(t)
	dbPath := filepath.Join(e.home, "db", "runs.db")
	e.writeSettings(t, "history:\n  enabled: true\n  db_path: "+dbPath+"\n")
	path := e.writeFile(t, "poem.txt", poem)

	_, _, err := e.execute("frog", path)
	require.NoError(t, err)

	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHistoryFailureDoesNotFailSearch(t *testing.T) {
	e := newTestEnv(t)
	blocker := e.writeFile(t, "blocker", "not a directory")
	e.writeSettings(t, "history:\n  enabled: true\n  db_path: "+filepath.Join(blocker, "history.db")+"\n")
	path := e.writeFile(t, "poem.txt", poem)

	stdout, stderr, err := e.execute("frog", path)
	require.NoError(t, err)
	assert.Equal(t, "How public, like a frog\n", stdout)
	assert.Contains(t, stderr, "history not recorded")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0123abcd", shortID("0123abcd-ef45-6789"))
	assert.Equal(t, "abc", shortID("abc"))
}
