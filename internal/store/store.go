// Package store keeps a local registry of vizmo runs in SQLite, so
// researchers can trace which export produced which output directory.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded invocation.
type Run struct {
	ID        string
	Command   string
	Inputs    []string
	OutputDir string
	Artifacts int
	Status    string
	Error     string
	StartedAt time.Time
	EndedAt   time.Time
}

// RunStore records runs in a SQLite database.
type RunStore struct {
	db   *sql.DB
	path string
}

// Open initializes the registry at path, creating directories and schema as
// needed.
func Open(path string) (*RunStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}

	s := &RunStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *RunStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		command     TEXT NOT NULL,
		inputs      TEXT NOT NULL DEFAULT '',
		output_dir  TEXT NOT NULL DEFAULT '',
		artifacts   INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'running',
		error       TEXT NOT NULL DEFAULT '',
		started_at  INTEGER NOT NULL,
		ended_at    INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Begin records the start of a run and returns its ID.
func (s *RunStore) Begin(command string, inputs []string, outputDir string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, command, inputs, output_dir, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, command, strings.Join(inputs, "\n"), outputDir, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("record run start: %w", err)
	}
	return id, nil
}

// Finish marks a run completed. A non-empty errMsg records a failure.
func (s *RunStore) Finish(id string, artifacts int, errMsg string) error {
	status := "ok"
	if errMsg != "" {
		status = "failed"
	}
	_, err := s.db.Exec(
		`UPDATE runs SET artifacts = ?, status = ?, error = ?, ended_at = ? WHERE id = ?`,
		artifacts, status, errMsg, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *RunStore) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, command, inputs, output_dir, artifacts, status, error, started_at, ended_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var inputs string
		var started, ended int64
		if err := rows.Scan(&r.ID, &r.Command, &inputs, &r.OutputDir, &r.Artifacts,
			&r.Status, &r.Error, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if inputs != "" {
			r.Inputs = strings.Split(inputs, "\n")
		}
		r.StartedAt = time.UnixMilli(started)
		if ended > 0 {
			r.EndedAt = time.UnixMilli(ended)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
