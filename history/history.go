/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Persistent history of operations
 */

// Package history keeps persistent record of IPP operations
// in the SQLite database
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OpenPrinting/ippclient"
	_ "modernc.org/sqlite" // SQLite driver
)

// Memory is the path of in-memory database
const Memory = ":memory:"

// Entry represents a single recorded operation
type Entry struct {
	ID           int64     // Entry ID, increases with time
	Time         time.Time // When operation was recorded
	Op           string    // Operation name
	RequestID    int32     // Request ID
	Status       int       // Status code, -1 if no response
	StatusString string    // Status string
	JobID        int       // Job ID, 0 if none
	JobURI       string    // Job URI, "" if none
}

// Store is the persistent history store
type Store struct {
	db  *sql.DB          // Underlying database
	now func() time.Time // Clock, replaced by tests
}

var _ ippclient.Recorder = (*Store)(nil)

// schema creates the database objects
const schema = `
CREATE TABLE IF NOT EXISTS operations (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	time          INTEGER NOT NULL,
	op            TEXT    NOT NULL,
	request_id    INTEGER NOT NULL,
	status        INTEGER NOT NULL,
	status_string TEXT    NOT NULL,
	job_id        INTEGER NOT NULL,
	job_uri       TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS operations_job_id ON operations(job_id);
`

// Open opens the store. The database file and its directory are
// created if missed. Use Memory for the in-memory store
func Open(path string) (*Store, error) {
	if path == "" {
		path = Memory
	}

	if path != Memory {
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: failed to open database: %w", err)
	}

	// Every connection to :memory: opens a distinct database;
	// SQLite serializes writers anyway
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: failed to initialize schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the store
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends Result to the store
func (s *Store) Record(ctx context.Context, r *ippclient.Result) error {
	status := -1
	if r.Response != nil {
		status = int(r.Status)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operations
			(time, op, request_id, status, status_string, job_id, job_uri)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.now().UnixMilli(), r.Op.String(), r.RequestID, status,
		r.StatusString, r.JobID, r.JobURI)

	if err != nil {
		return fmt.Errorf("history: failed to record %s: %w", r.Op, err)
	}

	return nil
}

// List returns up to limit most recent entries, newest first.
// If limit <= 0, all entries are returned
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, time, op, request_id, status, status_string, job_id, job_uri
		FROM operations ORDER BY id DESC`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	return s.query(ctx, query)
}

// Job returns all entries of the job, oldest first
func (s *Store) Job(ctx context.Context, jobID int) ([]Entry, error) {
	return s.query(ctx, `
		SELECT id, time, op, request_id, status, status_string, job_id, job_uri
		FROM operations WHERE job_id = ? ORDER BY id`, jobID)
}

// Purge removes entries, recorded before the given time
func (s *Store) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM operations WHERE time < ?", before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("history: failed to purge: %w", err)
	}

	return res.RowsAffected()
}

// query runs the query and scans entries
func (s *Store) query(ctx context.Context, query string,
	args ...interface{}) ([]Entry, error) {

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: failed to query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64

		err = rows.Scan(&e.ID, &ms, &e.Op, &e.RequestID, &e.Status,
			&e.StatusString, &e.JobID, &e.JobURI)
		if err != nil {
			return nil, fmt.Errorf("history: failed to scan: %w", err)
		}

		e.Time = time.UnixMilli(ms)
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("history: failed to query: %w", err)
	}

	return entries, nil
}
