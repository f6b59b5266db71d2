// Package storage provides SQLite-based persistence for the history of
// finished runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished attempt at a save file.
type Run struct {
	ID        string // UUID assigned by SaveRun
	SaveFile  string // Absolute path of the save file
	Moves     int
	Solved    bool
	Name      string // Empty when no highscore name was entered
	Rank      int    // Highscore slot, -1 if the run did not enter the table
	CreatedAt time.Time
}

// Stats summarises the runs recorded for one save file.
type Stats struct {
	Runs      int
	Solved    int
	BestMoves int // 0 when nothing was solved yet
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			save_file TEXT NOT NULL,
			moves INTEGER NOT NULL,
			solved INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL DEFAULT '',
			table_rank INTEGER NOT NULL DEFAULT -1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_save_file ON runs(save_file);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(save_file, solved, moves);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its generated ID.
func (s *Store) SaveRun(r Run) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, save_file, moves, solved, name, table_rank)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, r.SaveFile, r.Moves, r.Solved, r.Name, r.Rank,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

// BestRuns returns the solved runs for saveFile with the fewest moves first.
func (s *Store) BestRuns(saveFile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT run_id, save_file, moves, solved, name, table_rank, created_at
		 FROM runs
		 WHERE save_file = ? AND solved = 1
		 ORDER BY moves ASC, seq ASC
		 LIMIT ?`,
		saveFile, limit,
	)
}

// RecentRuns returns the latest runs for saveFile, newest first.
func (s *Store) RecentRuns(saveFile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT run_id, save_file, moves, solved, name, table_rank, created_at
		 FROM runs
		 WHERE save_file = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		saveFile, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if no such run exists.
func (s *Store) RunByID(id string) (*Run, error) {
	runs, err := s.queryRuns(
		`SELECT run_id, save_file, moves, solved, name, table_rank, created_at
		 FROM runs
		 WHERE run_id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Stats aggregates the runs for saveFile.
func (s *Store) Stats(saveFile string) (Stats, error) {
	var (
		st   Stats
		best sql.NullInt64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(solved), 0), MIN(CASE WHEN solved = 1 THEN moves END)
		 FROM runs
		 WHERE save_file = ?`,
		saveFile,
	).Scan(&st.Runs, &st.Solved, &best)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	if best.Valid {
		st.BestMoves = int(best.Int64)
	}
	return st, nil
}

// ClearRuns deletes all runs for saveFile.
func (s *Store) ClearRuns(saveFile string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE save_file = ?", saveFile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SaveFile, &r.Moves, &r.Solved, &r.Name, &r.Rank, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
