// Package testutil gives integration tests a throwaway Postgres schema with
// the run history tables in it.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/database"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// local docker defaults, overridden by the POSTGRES_* environment
var defaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

// TestDatabase is a connection scoped to one schema
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates a fresh schema and migrates it
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return defaults[key]
	})
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := open(cfg.ConnectionString())
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	td := &TestDatabase{
		SchemaName: "shopcheck_test_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		admin:      admin,
	}
	if _, err := admin.Exec("CREATE SCHEMA " + td.SchemaName); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema %s: %v", td.SchemaName, err)
	}

	td.DB, err = open(fmt.Sprintf("%s search_path=%s", cfg.ConnectionString(), td.SchemaName))
	if err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to connect to schema %s: %v", td.SchemaName, err)
	}
	if err := database.Migrate(td.DB); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to migrate schema %s: %v", td.SchemaName, err)
	}
	return td
}

// Teardown drops the schema and closes both connections
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec("DROP SCHEMA IF EXISTS " + td.SchemaName + " CASCADE"); err != nil {
		t.Logf("Warning: failed to drop schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}

func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
