// Package db owns the embedded DuckDB database that keeps saved project
// snapshots.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// Config holds database configuration.
type Config struct {
	DataDir string
	DBName  string
}

// Path returns the database file of cfg.
func (c Config) Path() string {
	return filepath.Join(c.DataDir, "duckdb", c.DBName+".duckdb")
}

// Get returns the singleton DuckDB connection with the schema applied.
func Get(cfg Config) (*sql.DB, error) {
	once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(cfg.Path()), 0755); err != nil {
			initErr = fmt.Errorf("failed to create duckdb directory: %w", err)
			return
		}
		instance, initErr = Open(context.Background(), cfg.Path())
	})
	return instance, initErr
}

// Open opens a DuckDB database and applies the schema. An empty path opens
// an in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// schema keeps every saved version of a snapshot key.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		key      VARCHAR   NOT NULL,
		version  INTEGER   NOT NULL,
		payload  VARCHAR   NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		PRIMARY KEY (key, version)
	)`,
}

// Migrate creates missing tables.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Close closes the singleton connection.
func Close() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Tables lists the tables of conn.
func Tables(ctx context.Context, conn *sql.DB) ([]string, error) {
	rows, err := conn.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
