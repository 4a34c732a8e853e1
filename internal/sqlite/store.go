// Package sqlite implements the SQLite-backed run store: every evaluated
// transaction sequence is persisted with its fitness and per-entity
// liabilities, keyed by a scenario digest so repeated evaluations of the
// same proposal are served from the store instead of recomputed.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store errors.
var (
	ErrRunNotFound = errors.New("run not found")
	ErrStoreClosed = errors.New("store is closed")
)

// Run is one evaluated scenario sequence.
type Run struct {
	RunID       string             // UUID v7, generated on save.
	Scenario    string             // Scenario name from the document.
	Digest      string             // Stable digest of seed + sequence.
	Steps       int                // Number of transactions applied.
	TotalCash   float64            // Aggregate cash after the sequence.
	TotalTax    float64            // Aggregate recorded tax liability.
	Fitness     float64            // TotalCash - TotalTax.
	CreatedAt   time.Time          // Timestamp of the evaluation.
	Liabilities map[string]float64 // Per-entity recorded liability.
}

// Store persists runs in a SQLite database under the data directory.
type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens the run database,
// and ensures the schema exists.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tiernet.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveRun persists a run and its liabilities. A new UUID v7 run ID is
// generated and returned; CreatedAt is set to the current time.
func (s *Store) SaveRun(run *Run) (string, error) {
	if s.db == nil {
		return "", ErrStoreClosed
	}

	run.RunID = generateUUID()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, scenario, digest, steps, total_cash, total_tax, fitness, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		run.RunID, run.Scenario, run.Digest, run.Steps,
		run.TotalCash, run.TotalTax, run.Fitness,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("persisting run: %w", err)
	}

	for entity, amount := range run.Liabilities {
		if _, err := tx.Exec(
			"INSERT INTO liabilities (run_id, entity, amount) VALUES (?, ?, ?)",
			run.RunID, entity, amount,
		); err != nil {
			return "", fmt.Errorf("persisting liability for %s: %w", entity, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.RunID, nil
}

// FindByDigest returns the most recent run with the given digest.
// Returns ErrRunNotFound if the digest has never been evaluated.
func (s *Store) FindByDigest(digest string) (*Run, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRow(
		"SELECT run_id, scenario, digest, steps, total_cash, total_tax, fitness, created_at FROM runs WHERE digest = ? ORDER BY created_at DESC, run_id DESC LIMIT 1",
		digest,
	)
	run, err := hydrateRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("finding run by digest: %w", err)
	}
	if err := s.hydrateLiabilities(run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns all runs.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	query := "SELECT run_id, scenario, digest, steps, total_cash, total_tax, fitness, created_at FROM runs ORDER BY created_at DESC, run_id DESC"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := hydrateRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	for _, run := range runs {
		if err := s.hydrateLiabilities(run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateRun scans one runs row into a Run.
func hydrateRun(row scanner) (*Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(
		&run.RunID, &run.Scenario, &run.Digest, &run.Steps,
		&run.TotalCash, &run.TotalTax, &run.Fitness, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &run, nil
}

// hydrateLiabilities fills in the per-entity liability map for a run.
func (s *Store) hydrateLiabilities(run *Run) error {
	rows, err := s.db.Query(
		"SELECT entity, amount FROM liabilities WHERE run_id = ?", run.RunID,
	)
	if err != nil {
		return fmt.Errorf("loading liabilities for %s: %w", run.RunID, err)
	}
	defer rows.Close()

	run.Liabilities = make(map[string]float64)
	for rows.Next() {
		var entity string
		var amount float64
		if err := rows.Scan(&entity, &amount); err != nil {
			return fmt.Errorf("scanning liability: %w", err)
		}
		run.Liabilities[entity] = amount
	}
	return rows.Err()
}

// generateUUID generates a new UUID v7 for run IDs, falling back to v4
// if v7 generation fails.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
