// Package main is the entry point for the qsignal service: a quantum-inspired
// bit-detection pipeline exposed over an HTTP API, with persisted run history,
// a live websocket stream for dashboards, scheduled calibration runs, and
// optional S3 backups of the run database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/qsignal/internal/backup"
	"github.com/aristath/qsignal/internal/clients/commentary"
	"github.com/aristath/qsignal/internal/config"
	"github.com/aristath/qsignal/internal/database"
	"github.com/aristath/qsignal/internal/events"
	"github.com/aristath/qsignal/internal/modules/runs"
	"github.com/aristath/qsignal/internal/modules/simulation"
	"github.com/aristath/qsignal/internal/scheduler"
	"github.com/aristath/qsignal/internal/server"
	"github.com/aristath/qsignal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use a fallback logger so the configuration error is still visible
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Msg("Starting qsignal")

	db, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "runs",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open run database")
	}
	defer db.Close()

	if err := runs.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize run schema")
	}

	runsRepo := runs.NewRepository(db.Conn())
	bus := events.NewBus()
	simService := simulation.NewService(log)
	commentaryClient := commentary.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)

	if !commentaryClient.Enabled() {
		log.Info().Msg("Commentary client disabled (no API key configured)")
	}

	srv := server.New(server.Config{
		Log:        log,
		Config:     cfg,
		DB:         db,
		RunsRepo:   runsRepo,
		Simulation: simService,
		Bus:        bus,
		Commentary: commentaryClient,
	})

	sched := scheduler.New(log)

	// Daily cleanup of expired runs
	cleanupJob := runs.NewCleanupJob(runsRepo, log)
	if err := sched.AddJob("0 0 3 * * *", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cleanup job")
	}

	// Periodic calibration run keeps the trend endpoint fresh
	if cfg.CalibrationSchedule != "" {
		calibrationJob := scheduler.NewCalibrationJob(
			simService, runsRepo, bus,
			cfg.DefaultQubits, cfg.DefaultShots, cfg.RunTTL,
			log,
		)
		if err := sched.AddJob(cfg.CalibrationSchedule, calibrationJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register calibration job")
		}
	}

	// Optional S3 backup of the run database
	if cfg.Backup.Enabled {
		uploader, err := backup.NewUploader(context.Background(), backup.Config{
			Bucket: cfg.Backup.Bucket,
			Prefix: cfg.Backup.Prefix,
			Region: cfg.Backup.Region,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 backup")
		}
		backupJob := backup.NewJob(uploader, cfg.DatabasePath(), log)
		if err := sched.AddJob(cfg.Backup.Schedule, backupJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	}

	sched.Start()
	defer sched.Stop()

	// Start HTTP server
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("qsignal stopped")
}
