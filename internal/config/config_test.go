package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("QSIGNAL_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 4, cfg.DefaultQubits)
	assert.Equal(t, 100, cfg.DefaultShots)
	assert.Equal(t, 720*time.Hour, cfg.RunTTL)
	assert.Equal(t, "@every 1h", cfg.CalibrationSchedule)
	assert.False(t, cfg.Backup.Enabled)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("QSIGNAL_DATA_DIR", t.TempDir())
	t.Setenv("QSIGNAL_PORT", "9100")
	t.Setenv("QSIGNAL_LOG_LEVEL", "debug")
	t.Setenv("QSIGNAL_DEV_MODE", "true")
	t.Setenv("QSIGNAL_DEFAULT_QUBITS", "8")
	t.Setenv("QSIGNAL_DEFAULT_SHOTS", "256")
	t.Setenv("QSIGNAL_RUN_TTL_HOURS", "48")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 8, cfg.DefaultQubits)
	assert.Equal(t, 256, cfg.DefaultShots)
	assert.Equal(t, 48*time.Hour, cfg.RunTTL)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("QSIGNAL_DATA_DIR", t.TempDir())
	t.Setenv("QSIGNAL_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BackupRequiresBucket(t *testing.T) {
	t.Setenv("QSIGNAL_DATA_DIR", t.TempDir())
	t.Setenv("QSIGNAL_BACKUP_ENABLED", "true")
	t.Setenv("QSIGNAL_BACKUP_BUCKET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "QSIGNAL_BACKUP_BUCKET")
}

func TestDatabasePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QSIGNAL_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.DataDir, "runs.db"), cfg.DatabasePath())
}
