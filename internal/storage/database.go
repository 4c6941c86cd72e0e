// Package storage persists completed job runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sevigo/adapter-bridge/internal/core"
)

var (
	ErrNotFound       = errors.New("job run not found")
	ErrLedgerDisabled = errors.New("job run ledger is disabled, set DB_HOST to enable it")
)

// Store defines the operations of the job run ledger.
type Store interface {
	core.RunRecorder
	RecentRuns(ctx context.Context, limit int) ([]core.JobRun, error)
	GetRun(ctx context.Context, id string) (*core.JobRun, error)
}

type jobRunRow struct {
	ID                string    `db:"id"`
	JobRunID          string    `db:"job_run_id"`
	Mode              string    `db:"mode"`
	Status            int       `db:"status"`
	Error             bool      `db:"error"`
	Message           string    `db:"message"`
	CallbackDelivered bool      `db:"callback_delivered"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r jobRunRow) toJobRun() core.JobRun {
	return core.JobRun{
		ID:                r.ID,
		JobRunID:          r.JobRunID,
		Mode:              core.RunMode(r.Mode),
		Status:            r.Status,
		Error:             r.Error,
		Message:           r.Message,
		CallbackDelivered: r.CallbackDelivered,
		CreatedAt:         r.CreatedAt,
	}
}

type sqlStore struct {
	db *sqlx.DB
}

// NewStore creates a Store on top of an open connection pool.
func NewStore(db *sqlx.DB) Store {
	return &sqlStore{db: db}
}

// SaveRun inserts a job run, assigning an ID and timestamp when they are unset.
func (s *sqlStore) SaveRun(ctx context.Context, run *core.JobRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO job_runs (id, job_run_id, mode, status, error, message, callback_delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.JobRunID, string(run.Mode), run.Status, run.Error, run.Message, run.CallbackDelivered, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save job run %s: %w", run.JobRunID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *sqlStore) RecentRuns(ctx context.Context, limit int) ([]core.JobRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, job_run_id, mode, status, error, message, callback_delivered, created_at
		FROM job_runs
		ORDER BY created_at DESC
		LIMIT $1`

	var rows []jobRunRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list job runs: %w", err)
	}
	runs := make([]core.JobRun, 0, len(rows))
	for _, r := range rows {
		runs = append(runs, r.toJobRun())
	}
	return runs, nil
}

// GetRun retrieves a run by its ledger ID.
func (s *sqlStore) GetRun(ctx context.Context, id string) (*core.JobRun, error) {
	query := `
		SELECT id, job_run_id, mode, status, error, message, callback_delivered, created_at
		FROM job_runs
		WHERE id = $1`

	var r jobRunRow
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job run %s: %w", id, err)
	}
	run := r.toJobRun()
	return &run, nil
}

// nopStore is used when no ledger database is configured.
type nopStore struct{}

// NewNopStore returns a Store that discards runs.
func NewNopStore() Store {
	return nopStore{}
}

func (nopStore) SaveRun(context.Context, *core.JobRun) error { return nil }

func (nopStore) RecentRuns(context.Context, int) ([]core.JobRun, error) {
	return nil, ErrLedgerDisabled
}

func (nopStore) GetRun(context.Context, string) (*core.JobRun, error) {
	return nil, ErrLedgerDisabled
}
