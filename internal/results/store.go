// Package results stores solve runs in a SQLite database for later
// comparison across scenarios and planner configurations.
package results

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/elektrokombinacija/dwr-planning/internal/planner"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

// Run is one recorded solve attempt. PlanLen mirrors len(Steps) so
// listings can skip loading the steps themselves.
type Run struct {
	ID       string
	Scenario string
	Solver   string
	Status   string
	Steps    []string
	PlanLen  int
	Elapsed  time.Duration
	Fluents  int
	Actions  int
	Created  time.Time
}

// Store wraps a SQLite database holding runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and brings its schema up
// to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf(
		"file:%s?_foreign_keys=ON&_journal_mode=WAL&_busy_timeout=5000", path,
	))
	if err != nil {
		return nil, fmt.Errorf("results: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: ping database: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun inserts the run and its plan steps in one transaction. A
// missing ID or timestamp is filled in.
func (s *Store) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}
	run.PlanLen = len(run.Steps)
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("results: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, scenario, solver, status, plan_len, elapsed_ms, fluents, actions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Scenario, run.Solver, run.Status, run.PlanLen,
		run.Elapsed.Milliseconds(), run.Fluents, run.Actions,
		run.Created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("results: insert run: %w", err)
	}
	for i, action := range run.Steps {
		if _, err := tx.Exec(
			`INSERT INTO plan_steps (run_id, idx, action) VALUES (?, ?, ?)`,
			run.ID, i, action,
		); err != nil {
			return fmt.Errorf("results: insert step %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("results: commit: %w", err)
	}
	return nil
}

// Record summarizes a solve result against its instance and saves it.
func (s *Store) Record(in *problem.Instance, solverName string, res *planner.Result) (*Run, error) {
	run := &Run{
		Scenario: in.Name,
		Solver:   solverName,
		Status:   res.Status.String(),
		Elapsed:  res.Elapsed,
		Fluents:  in.Vocabulary.Len(),
		Actions:  len(in.Actions),
	}
	for _, a := range res.Plan {
		run.Steps = append(run.Steps, a.Name)
	}
	if err := s.SaveRun(run); err != nil {
		return nil, err
	}
	return run, nil
}

// Run loads one run with its plan steps.
func (s *Store) Run(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, scenario, solver, status, plan_len, elapsed_ms, fluents, actions, created_at
		 FROM runs WHERE id = ?`, id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("results: no run %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("results: load run %s: %w", id, err)
	}
	rows, err := s.db.Query(
		`SELECT action FROM plan_steps WHERE run_id = ? ORDER BY idx`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("results: load steps for %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var action string
		if err := rows.Scan(&action); err != nil {
			return nil, fmt.Errorf("results: scan step: %w", err)
		}
		run.Steps = append(run.Steps, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("results: iterate steps: %w", err)
	}
	return run, nil
}

// Runs lists runs newest first, optionally filtered by scenario name.
// Plan steps are not populated; use Run for the full record.
func (s *Store) Runs(scenario string) ([]*Run, error) {
	query := `SELECT id, scenario, solver, status, plan_len, elapsed_ms, fluents, actions, created_at
		 FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if scenario != "" {
		query = `SELECT id, scenario, solver, status, plan_len, elapsed_ms, fluents, actions, created_at
		 FROM runs WHERE scenario = ? ORDER BY created_at DESC, id`
		args = append(args, scenario)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("results: list runs: %w", err)
	}
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("results: scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("results: iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var elapsedMS int64
	var created string
	if err := row.Scan(&run.ID, &run.Scenario, &run.Solver, &run.Status,
		&run.PlanLen, &elapsedMS, &run.Fluents, &run.Actions, &created); err != nil {
		return nil, err
	}
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		run.Created = t
	}
	return &run, nil
}
