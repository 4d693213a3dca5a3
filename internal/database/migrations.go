package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the run history tables
const Schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		driver VARCHAR(50) NOT NULL,
		base_url TEXT NOT NULL,
		status VARCHAR(50) NOT NULL,
		total INTEGER NOT NULL DEFAULT 0,
		passed INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS scenario_results (
		id BIGSERIAL PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		suite VARCHAR(100) NOT NULL,
		name VARCHAR(255) NOT NULL,
		passed BOOLEAN NOT NULL,
		kind VARCHAR(50) NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_scenario_results_run_id ON scenario_results(run_id);
	`

// RunMigrations creates the run history tables on the shared connection
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	return Migrate(DB)
}

// Migrate creates the run history tables on db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create run history tables: %w", err)
	}
	return nil
}
