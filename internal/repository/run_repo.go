package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/database"
	"github.com/adyen/shopcheck/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for runs and their results
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, driver, base_url, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query, run.ID, run.Driver, run.BaseURL, run.Status, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// SaveResult inserts one scenario result and sets its id
func (r *RunRepository) SaveResult(result *models.ScenarioResult) error {
	query := `
		INSERT INTO scenario_results (run_id, suite, name, passed, kind, message, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(query,
		result.RunID,
		result.Suite,
		result.Name,
		result.Passed,
		result.Kind,
		result.Message,
		result.DurationMS,
		now,
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("failed to save scenario result: %w", err)
	}

	result.CreatedAt = now
	return nil
}

// FinishRun stores the final status and counts of run
func (r *RunRepository) FinishRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, total = $2, passed = $3, failed = $4, finished_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(query, run.Status, run.Total, run.Passed, run.Failed, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

const runColumns = `id, driver, base_url, status, total, passed, failed, started_at, finished_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*models.Run, error) {
	run := &models.Run{}
	var finished sql.NullTime
	err := row.Scan(
		&run.ID,
		&run.Driver,
		&run.BaseURL,
		&run.Status,
		&run.Total,
		&run.Passed,
		&run.Failed,
		&run.StartedAt,
		&finished,
	)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return run, nil
}

// GetRun retrieves a run by id
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *RunRepository) ListRecentRuns(limit int) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetResults returns the results of a run in the order they were recorded
func (r *RunRepository) GetResults(runID string) ([]*models.ScenarioResult, error) {
	query := `
		SELECT id, run_id, suite, name, passed, kind, message, duration_ms, created_at
		FROM scenario_results
		WHERE run_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	defer rows.Close()

	var results []*models.ScenarioResult
	for rows.Next() {
		res := &models.ScenarioResult{}
		if err := rows.Scan(
			&res.ID,
			&res.RunID,
			&res.Suite,
			&res.Name,
			&res.Passed,
			&res.Kind,
			&res.Message,
			&res.DurationMS,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	return results, nil
}
