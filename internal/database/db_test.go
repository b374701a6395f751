package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := New(Config{Path: path, Profile: ProfileStandard, Name: "test"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "test", db.Name())
	assert.True(t, filepath.IsAbs(db.Path()))
	assert.NoError(t, db.HealthCheck(context.Background()))

	// The connection is usable
	_, err = db.Conn().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
}

func TestNew_DefaultsToStandardProfile(t *testing.T) {
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "test.db"), Name: "test"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileStandard, db.profile)
}

func TestNew_WALModeEnabled(t *testing.T) {
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "test.db"), Profile: ProfileCache, Name: "cache"})
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.Conn().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
