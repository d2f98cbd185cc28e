// Package recording persists the outcome of conformance check runs into a
// SQLite database so that batches can be inspected after the process exits.
package recording

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// Run statuses stored in the database.
const (
	StatusPass      = "pass"
	StatusViolation = "violation"
)

// A RunRecord describes one executed check.
type RunRecord struct {
	ID         string
	Bound      int
	Flag       int
	PowerValue int
	Status     string
	Detail     string
	Result     float64
	StartTime  string
}

// MakeRunRecord stamps a new record for the given parameters with a fresh
// ID and the current wall-clock time. Status and outcome fields are filled
// in by the caller.
func MakeRunRecord(bound, flag, powerValue int) RunRecord {
	return RunRecord{
		ID:         xid.New().String(),
		Bound:      bound,
		Flag:       flag,
		PowerValue: powerValue,
		StartTime:  time.Now().Format("2006-01-02 15:04:05.000000000"),
	}
}

// A RunStore records check runs into a SQLite database. Writes are batched;
// Flush is registered with atexit so that records survive atexit.Fatalf
// terminations.
type RunStore struct {
	*sql.DB

	dbName    string
	pending   []RunRecord
	batchSize int
}

// NewRunStore creates a run store backed by the file path + ".sqlite3".
// When path is empty a unique name is generated. The store refuses to
// overwrite an existing database file.
func NewRunStore(path string) *RunStore {
	s := &RunStore{
		dbName:    path,
		batchSize: 1000,
	}

	s.init()

	atexit.Register(func() { s.Flush() })

	return s
}

// NewRunStoreWithDB creates a run store on an already-open database.
// Used by tests and by the report server, which only reads.
func NewRunStoreWithDB(db *sql.DB) *RunStore {
	s := &RunStore{
		DB:        db,
		batchSize: 1000,
	}

	s.createTable()

	atexit.Register(func() { s.Flush() })

	return s
}

func (s *RunStore) init() {
	if s.dbName == "" {
		s.dbName = "constcheck_runs_" + xid.New().String()
	}

	filename := s.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	s.DB = db

	s.createTable()
}

func (s *RunStore) createTable() {
	s.mustExecute(`CREATE TABLE IF NOT EXISTS check_runs (
	ID TEXT,
	Bound INTEGER,
	Flag INTEGER,
	PowerValue INTEGER,
	Status TEXT,
	Detail TEXT,
	Result REAL,
	StartTime TEXT
);`)
}

// RecordRun queues one record for insertion. The batch is flushed
// automatically when it reaches the batch size.
func (s *RunStore) RecordRun(r RunRecord) {
	s.pending = append(s.pending, r)

	if len(s.pending) >= s.batchSize {
		s.Flush()
	}
}

// Flush writes all queued records into the database.
func (s *RunStore) Flush() {
	if len(s.pending) == 0 {
		return
	}

	s.mustExecute("BEGIN TRANSACTION")
	defer s.mustExecute("COMMIT TRANSACTION")

	stmt, err := s.Prepare(
		"INSERT INTO check_runs VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, r := range s.pending {
		_, err := stmt.Exec(r.ID, r.Bound, r.Flag, r.PowerValue,
			r.Status, r.Detail, r.Result, r.StartTime)
		if err != nil {
			panic(err)
		}
	}

	s.pending = nil
}

// ListRuns returns every recorded run in insertion order, including queued
// records not yet flushed.
func (s *RunStore) ListRuns() []RunRecord {
	s.Flush()

	rows, err := s.Query(`SELECT ID, Bound, Flag, PowerValue,
		Status, Detail, Result, StartTime FROM check_runs`)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		err := rows.Scan(&r.ID, &r.Bound, &r.Flag, &r.PowerValue,
			&r.Status, &r.Detail, &r.Result, &r.StartTime)
		if err != nil {
			panic(err)
		}

		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		panic(err)
	}

	return runs
}

// Close flushes queued records and closes the database.
func (s *RunStore) Close() {
	s.Flush()
	s.DB.Close()
}

func (s *RunStore) mustExecute(query string) sql.Result {
	res, err := s.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
