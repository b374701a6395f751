package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/qsignal/internal/events"
	"github.com/aristath/qsignal/internal/modules/runs"
	"github.com/aristath/qsignal/internal/modules/simulation"
)

// CalibrationJob runs the pipeline on a schedule with the configured default
// parameters, so the dashboard trend has fresh data even without manual runs.
type CalibrationJob struct {
	svc    *simulation.Service
	repo   *runs.Repository
	bus    *events.Bus
	qubits int
	shots  int
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCalibrationJob creates a new calibration job.
func NewCalibrationJob(
	svc *simulation.Service,
	repo *runs.Repository,
	bus *events.Bus,
	qubits int,
	shots int,
	ttl time.Duration,
	log zerolog.Logger,
) *CalibrationJob {
	return &CalibrationJob{
		svc:    svc,
		repo:   repo,
		bus:    bus,
		qubits: qubits,
		shots:  shots,
		ttl:    ttl,
		log:    log.With().Str("job", "calibration_run").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *CalibrationJob) Name() string {
	return "calibration_run"
}

// Run executes one pipeline run, stores it and broadcasts it.
func (j *CalibrationJob) Run() error {
	result, err := j.svc.Run(j.qubits, j.shots)
	if err != nil {
		j.log.Error().Err(err).Msg("Calibration run failed")
		return err
	}

	record, err := j.repo.Save(j.qubits, j.shots, result, j.ttl)
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to store calibration run")
		return err
	}

	j.bus.Publish(events.RunCompleted, record)

	j.log.Info().
		Str("run_id", record.ID).
		Float64("accuracy", record.Accuracy).
		Msg("Calibration run stored")

	return nil
}
