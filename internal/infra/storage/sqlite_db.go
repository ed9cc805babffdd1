package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite opens the local SQLite database and creates the tables for
// character snapshots and the narration log.
func InitSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS characters (
			name TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			depth INTEGER NOT NULL DEFAULT 0,
			record_depth INTEGER NOT NULL DEFAULT 0,
			saved_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS log_lines (
			character TEXT NOT NULL,
			seq INTEGER NOT NULL,
			timestamp DATETIME NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			style TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (character, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_log_lines_time ON log_lines(character, timestamp);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
