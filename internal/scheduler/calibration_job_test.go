package scheduler

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/qsignal/internal/events"
	"github.com/aristath/qsignal/internal/modules/runs"
	"github.com/aristath/qsignal/internal/modules/simulation"
)

func setupRepo(t *testing.T) *runs.Repository {
	db, err := sql.Open("sqlite", "file:calibration_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec("DROP TABLE IF EXISTS runs")
	require.NoError(t, err)
	require.NoError(t, runs.InitSchema(db))
	return runs.NewRepository(db)
}

func TestCalibrationJob_Run(t *testing.T) {
	repo := setupRepo(t)
	bus := events.NewBus()
	svc := simulation.NewService(zerolog.Nop())

	id, ch := bus.Subscribe()
	defer bus.Unsubscribe(id)

	job := NewCalibrationJob(svc, repo, bus, 4, 16, time.Hour, zerolog.Nop())
	assert.Equal(t, "calibration_run", job.Name())
	require.NoError(t, job.Run())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	select {
	case event := <-ch:
		assert.Equal(t, events.RunCompleted, event.Type)
		record, ok := event.Data.(*runs.Record)
		require.True(t, ok)
		assert.Len(t, record.Result.Input, 16)
	case <-time.After(time.Second):
		t.Fatal("run completion was not broadcast")
	}
}

func TestCalibrationJob_InvalidParameters(t *testing.T) {
	repo := setupRepo(t)
	job := NewCalibrationJob(simulation.NewService(zerolog.Nop()), repo, events.NewBus(), 0, 16, time.Hour, zerolog.Nop())

	err := job.Run()
	assert.ErrorIs(t, err, simulation.ErrInvalidArgument)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestScheduler_AddJobValidation(t *testing.T) {
	s := New(zerolog.Nop())

	job := NewCalibrationJob(simulation.NewService(zerolog.Nop()), setupRepo(t), events.NewBus(), 2, 8, time.Hour, zerolog.Nop())

	assert.NoError(t, s.AddJob("@every 1h", job))
	assert.Error(t, s.AddJob("not a schedule", job))
	assert.NoError(t, s.RunNow(job))
}
