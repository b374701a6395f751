package runs

import (
	"github.com/rs/zerolog"
)

// CleanupJob removes expired run records. It should be scheduled to run daily.
type CleanupJob struct {
	repo *Repository
	log  zerolog.Logger
}

// NewCleanupJob creates a new run cleanup job.
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		log:  log.With().Str("job", "run_cleanup").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *CleanupJob) Name() string {
	return "run_cleanup"
}

// Run executes the cleanup job, removing all expired run records.
func (j *CleanupJob) Run() error {
	deleted, err := j.repo.DeleteExpired()
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete expired runs")
		return err
	}

	if deleted > 0 {
		j.log.Info().Int64("deleted", deleted).Msg("Cleaned up expired runs")
	}
	return nil
}
