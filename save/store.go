package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoCheckpoint is returned by Latest on an empty store
var ErrNoCheckpoint = errors.New("save: no checkpoint")

const schema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	segment     INTEGER NOT NULL,
	x           REAL NOT NULL,
	y           REAL NOT NULL,
	health      INTEGER NOT NULL,
	clock       REAL NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS checkpoints_run ON checkpoints(run_id, id);
`

// Checkpoint is the player's state on entering a segment
// X, Y is the player bounds top-left in segment pixels
type Checkpoint struct {
	RunID     string
	Segment   int
	X, Y      float64
	Health    int
	Clock     float64
	CreatedAt time.Time
}

// Store persists checkpoints in a sqlite database
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=2000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCheckpoint appends a checkpoint; a zero CreatedAt is stamped with the current time
func (s *Store) SaveCheckpoint(ctx context.Context, c Checkpoint) error {
	if c.RunID == "" {
		return fmt.Errorf("checkpoint: empty run id")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (run_id, segment, x, y, health, clock, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.Segment, c.X, c.Y, c.Health, c.Clock, c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert checkpoint: %w", err)
	}
	return nil
}

// Latest returns the most recently saved checkpoint across all runs
func (s *Store) Latest(ctx context.Context) (Checkpoint, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, segment, x, y, health, clock, created_at
		 FROM checkpoints ORDER BY id DESC LIMIT 1`)
	return scanCheckpoint(row)
}

// LatestForRun returns the most recent checkpoint of one run
func (s *Store) LatestForRun(ctx context.Context, runID string) (Checkpoint, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, segment, x, y, health, clock, created_at
		 FROM checkpoints WHERE run_id = ? ORDER BY id DESC LIMIT 1`, runID)
	return scanCheckpoint(row)
}

// Count returns the number of stored checkpoints
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkpoints`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count checkpoints: %w", err)
	}
	return n, nil
}

func scanCheckpoint(row *sql.Row) (Checkpoint, error) {
	var (
		c       Checkpoint
		created string
	)
	err := row.Scan(&c.RunID, &c.Segment, &c.X, &c.Y, &c.Health, &c.Clock, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, ErrNoCheckpoint
	}
	if err != nil {
		return Checkpoint{}, fmt.Errorf("scan checkpoint: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint time %q: %w", created, err)
	}
	return c, nil
}
