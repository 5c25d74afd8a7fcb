// Package ledger is SQLite persistence for generation runs: one row per
// run recording its seed and options, a stage-completion trail, and any
// degraded-placement warnings a run raised along the way.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open creates or opens the ledger database at path, running migrations.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("ledger: open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: migrate: %w", err)
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// StartRun inserts a new run row in "running" status.
func (db *DB) StartRun(id string, seed int64, optionsJSON string) error {
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, options_json) VALUES (?, ?, ?)",
		id, seed, optionsJSON,
	)
	return err
}

// RecordStage marks a pipeline stage as started for the given run.
func (db *DB) RecordStage(runID, stage string) error {
	_, err := db.conn.Exec(
		"INSERT OR IGNORE INTO run_stages (run_id, stage) VALUES (?, ?)",
		runID, stage,
	)
	return err
}

// RecordDegradation logs a non-fatal fallback a placement pass took.
func (db *DB) RecordDegradation(runID, stage, detail string) error {
	_, err := db.conn.Exec(
		"INSERT INTO run_degradations (run_id, stage, detail) VALUES (?, ?, ?)",
		runID, stage, detail,
	)
	return err
}

// FinishRun marks a run complete or failed.
func (db *DB) FinishRun(runID string, errDetail string) error {
	status := "complete"
	if errDetail != "" {
		status = "failed"
	}
	_, err := db.conn.Exec(
		"UPDATE runs SET status = ?, error_detail = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, nullableString(errDetail), runID,
	)
	return err
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		applied, err := db.isMigrationApplied(m.id)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.id, m.name, err)
		}
	}
	return nil
}

func (db *DB) isMigrationApplied(id int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM migrations WHERE id = ?", id).Scan(&count)
	return count > 0, err
}

func (db *DB) runMigration(m migration) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (id, name) VALUES (?, ?)", m.id, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
