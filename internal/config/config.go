// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the run-history database (always absolute)
	LogLevel string
	Port     int
	DevMode  bool

	// Pipeline defaults used by the scheduled calibration run
	DefaultQubits int
	DefaultShots  int

	// How long stored runs are kept before the cleanup job removes them
	RunTTL time.Duration

	// Cron expression for the periodic calibration run (empty disables it)
	CalibrationSchedule string

	// Commentary service (OpenAI); empty key disables the endpoint
	OpenAIAPIKey string
	OpenAIModel  string

	Backup *BackupConfig
}

// BackupConfig holds S3 backup settings for the run-history database
type BackupConfig struct {
	Enabled  bool
	Bucket   string
	Prefix   string
	Region   string
	Schedule string // Cron expression for the backup job
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("QSIGNAL_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory to absolute path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := strconv.Atoi(getEnv("QSIGNAL_PORT", "8090"))
	if err != nil {
		return nil, fmt.Errorf("invalid QSIGNAL_PORT: %w", err)
	}

	defaultQubits, err := strconv.Atoi(getEnv("QSIGNAL_DEFAULT_QUBITS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid QSIGNAL_DEFAULT_QUBITS: %w", err)
	}

	defaultShots, err := strconv.Atoi(getEnv("QSIGNAL_DEFAULT_SHOTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid QSIGNAL_DEFAULT_SHOTS: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("QSIGNAL_RUN_TTL_HOURS", "720"))
	if err != nil {
		return nil, fmt.Errorf("invalid QSIGNAL_RUN_TTL_HOURS: %w", err)
	}

	cfg := &Config{
		DataDir:             absDataDir,
		LogLevel:            getEnv("QSIGNAL_LOG_LEVEL", "info"),
		Port:                port,
		DevMode:             getEnv("QSIGNAL_DEV_MODE", "false") == "true",
		DefaultQubits:       defaultQubits,
		DefaultShots:        defaultShots,
		RunTTL:              time.Duration(ttlHours) * time.Hour,
		CalibrationSchedule: getEnv("QSIGNAL_CALIBRATION_SCHEDULE", "@every 1h"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		Backup: &BackupConfig{
			Enabled:  getEnv("QSIGNAL_BACKUP_ENABLED", "false") == "true",
			Bucket:   getEnv("QSIGNAL_BACKUP_BUCKET", ""),
			Prefix:   getEnv("QSIGNAL_BACKUP_PREFIX", "qsignal"),
			Region:   getEnv("QSIGNAL_BACKUP_REGION", "eu-central-1"),
			Schedule: getEnv("QSIGNAL_BACKUP_SCHEDULE", "0 0 4 * * *"),
		},
	}

	if cfg.Backup.Enabled && cfg.Backup.Bucket == "" {
		return nil, fmt.Errorf("QSIGNAL_BACKUP_BUCKET is required when backups are enabled")
	}

	return cfg, nil
}

// DatabasePath returns the path of the run-history database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "runs.db")
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
