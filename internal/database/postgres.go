// Package database holds the run history connection.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	_ "github.com/lib/pq"
)

var DB *sql.DB

// Connect opens the run history database described by cfg
func Connect(cfg *config.PostgresConfig) error {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		return err
	}
	return nil
}
