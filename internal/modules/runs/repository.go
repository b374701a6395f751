// Package runs provides persistent storage for completed pipeline runs.
// Each run is stored as a msgpack blob with an expiration timestamp so the
// cleanup job can prune old history.
package runs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/qsignal/internal/modules/simulation"
)

// Record is one stored pipeline run.
type Record struct {
	ID        string                `json:"id"`
	Qubits    int                   `json:"qubits"`
	Shots     int                   `json:"shots"`
	Accuracy  float64               `json:"accuracy"` // Percentage, mirrors Result.Accuracy
	Result    *simulation.RunResult `json:"result"`
	CreatedAt time.Time             `json:"created_at"`
}

// Repository provides storage operations for run records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new run repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the runs table if it does not exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			qubits INTEGER NOT NULL,
			shots INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			payload BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
		CREATE INDEX IF NOT EXISTS idx_runs_expires_at ON runs(expires_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs schema: %w", err)
	}
	return nil
}

// Save stores a run result and returns the created record. The payload is
// serialized as msgpack; ttl controls when the cleanup job may remove it.
func (r *Repository) Save(qubits, shots int, result *simulation.RunResult, ttl time.Duration) (*Record, error) {
	if result == nil {
		return nil, fmt.Errorf("cannot save nil run result")
	}

	payload, err := msgpack.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run payload: %w", err)
	}

	record := &Record{
		ID:        uuid.New().String(),
		Qubits:    qubits,
		Shots:     shots,
		Accuracy:  result.Accuracy,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	_, err = r.db.Exec(
		"INSERT INTO runs (id, qubits, shots, accuracy, payload, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.Qubits, record.Shots, record.Accuracy, payload,
		record.CreatedAt.Unix(), record.CreatedAt.Add(ttl).Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	return record, nil
}

// Get returns a single run by ID, or nil if it does not exist.
func (r *Repository) Get(id string) (*Record, error) {
	row := r.db.QueryRow(
		"SELECT id, qubits, shots, accuracy, payload, created_at FROM runs WHERE id = ?", id,
	)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return record, nil
}

// List returns the most recent runs, newest first, up to limit.
func (r *Repository) List(limit int) ([]*Record, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.db.Query(
		"SELECT id, qubits, shots, accuracy, payload, created_at FROM runs ORDER BY created_at DESC, id LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Accuracies returns stored accuracy percentages in chronological order
// (oldest first), up to limit. Used by the trend endpoint.
func (r *Repository) Accuracies(limit int) ([]float64, error) {
	if limit < 1 {
		limit = 200
	}

	rows, err := r.db.Query(
		`SELECT accuracy FROM (
			SELECT accuracy, created_at, id FROM runs ORDER BY created_at DESC, id LIMIT ?
		) ORDER BY created_at ASC, id`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accuracies: %w", err)
	}
	defer rows.Close()

	var accuracies []float64
	for rows.Next() {
		var a float64
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan accuracy: %w", err)
		}
		accuracies = append(accuracies, a)
	}
	return accuracies, rows.Err()
}

// Count returns the number of stored runs.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// DeleteExpired removes all runs past their expiration timestamp and returns
// the number of deleted rows.
func (r *Repository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM runs WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired runs: %w", err)
	}
	return result.RowsAffected()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Record, error) {
	var record Record
	var payload []byte
	var createdAt int64

	if err := s.Scan(&record.ID, &record.Qubits, &record.Shots, &record.Accuracy, &payload, &createdAt); err != nil {
		return nil, err
	}

	var result simulation.RunResult
	if err := msgpack.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run payload: %w", err)
	}

	record.Result = &result
	record.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &record, nil
}
