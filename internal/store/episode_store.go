// Package store persists episode traces to SQLite so runs can be replayed,
// reported on and queried after the fact.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"gridnerd/internal/logging"
)

// EpisodeRecord mirrors agent.Result for persistence, avoiding an import
// cycle between the store and the agent packages.
type EpisodeRecord struct {
	ID        string
	CreatedAt time.Time
	Width     int
	Height    int
	Seed      int64
	Steps     int
	Escaped   bool
	Alive     bool
	GoldHeld  bool
	Stuck     bool
}

// StepRow is one persisted decision step.
type StepRow struct {
	Step    int
	X, Y    int
	Heading string
	Status  string
	Facts   int
	Breeze  bool
	Stench  bool
	Glitter bool
}

// EpisodeStore is a SQLite-backed archive of finished episodes.
type EpisodeStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the episode database at path, creating parent
// directories as needed.
func Open(path string) (*EpisodeStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open episode store: %w", err)
	}

	s := &EpisodeStore{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logging.Store("episode store opened at %s", path)
	return s, nil
}

// Close releases the database handle.
func (s *EpisodeStore) Close() error {
	return s.db.Close()
}

func (s *EpisodeStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		escaped BOOLEAN NOT NULL,
		alive BOOLEAN NOT NULL,
		gold_held BOOLEAN NOT NULL,
		stuck BOOLEAN NOT NULL
	);
	CREATE TABLE IF NOT EXISTS episode_steps (
		episode_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		heading TEXT NOT NULL,
		status TEXT NOT NULL,
		facts INTEGER NOT NULL,
		breeze BOOLEAN NOT NULL,
		stench BOOLEAN NOT NULL,
		glitter BOOLEAN NOT NULL,
		PRIMARY KEY (episode_id, step),
		FOREIGN KEY (episode_id) REFERENCES episodes(id)
	);
	CREATE INDEX IF NOT EXISTS idx_steps_episode ON episode_steps(episode_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("ensure episode schema: %w", err)
	}
	return nil
}

// SaveEpisode stores an episode and its steps in one transaction.
func (s *EpisodeStore) SaveEpisode(ep EpisodeRecord, steps []StepRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if ep.CreatedAt.IsZero() {
		ep.CreatedAt = time.Now().UTC()
	}

	_, err = tx.Exec(`INSERT INTO episodes
		(id, created_at, width, height, seed, steps, escaped, alive, gold_held, stuck)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.ID, ep.CreatedAt, ep.Width, ep.Height, ep.Seed, ep.Steps,
		ep.Escaped, ep.Alive, ep.GoldHeld, ep.Stuck)
	if err != nil {
		return fmt.Errorf("insert episode %s: %w", ep.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO episode_steps
		(episode_id, step, x, y, heading, status, facts, breeze, stench, glitter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare step insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range steps {
		if _, err := stmt.Exec(ep.ID, st.Step, st.X, st.Y, st.Heading,
			st.Status, st.Facts, st.Breeze, st.Stench, st.Glitter); err != nil {
			return fmt.Errorf("insert step %d: %w", st.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit episode %s: %w", ep.ID, err)
	}
	logging.StoreDebug("saved episode %s (%d steps)", ep.ID, len(steps))
	return nil
}

// LoadEpisode fetches one episode header by id.
func (s *EpisodeStore) LoadEpisode(id string) (EpisodeRecord, error) {
	var ep EpisodeRecord
	err := s.db.QueryRow(`SELECT id, created_at, width, height, seed, steps,
		escaped, alive, gold_held, stuck FROM episodes WHERE id = ?`, id).
		Scan(&ep.ID, &ep.CreatedAt, &ep.Width, &ep.Height, &ep.Seed, &ep.Steps,
			&ep.Escaped, &ep.Alive, &ep.GoldHeld, &ep.Stuck)
	if err == sql.ErrNoRows {
		return ep, fmt.Errorf("episode %s not found", id)
	}
	if err != nil {
		return ep, fmt.Errorf("load episode %s: %w", id, err)
	}
	return ep, nil
}

// LoadSteps fetches the ordered step trace of one episode.
func (s *EpisodeStore) LoadSteps(id string) ([]StepRow, error) {
	rows, err := s.db.Query(`SELECT step, x, y, heading, status, facts,
		breeze, stench, glitter FROM episode_steps
		WHERE episode_id = ? ORDER BY step`, id)
	if err != nil {
		return nil, fmt.Errorf("load steps for %s: %w", id, err)
	}
	defer rows.Close()

	var steps []StepRow
	for rows.Next() {
		var st StepRow
		if err := rows.Scan(&st.Step, &st.X, &st.Y, &st.Heading, &st.Status,
			&st.Facts, &st.Breeze, &st.Stench, &st.Glitter); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// ListEpisodes returns episode headers, newest first, up to limit (0 = all).
func (s *EpisodeStore) ListEpisodes(limit int) ([]EpisodeRecord, error) {
	q := `SELECT id, created_at, width, height, seed, steps, escaped, alive,
		gold_held, stuck FROM episodes ORDER BY created_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var eps []EpisodeRecord
	for rows.Next() {
		var ep EpisodeRecord
		if err := rows.Scan(&ep.ID, &ep.CreatedAt, &ep.Width, &ep.Height,
			&ep.Seed, &ep.Steps, &ep.Escaped, &ep.Alive, &ep.GoldHeld, &ep.Stuck); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		eps = append(eps, ep)
	}
	return eps, rows.Err()
}
