package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunSummary is the end-of-run record of one simulation.
type RunSummary struct {
	ID        uuid.UUID
	Seed      uint32
	Frames    uint64
	Elapsed   float64 // simulated seconds
	Kills     uint64
	Spawned   uint64
	Fired     uint64
	StartedAt time.Time
	EndedAt   time.Time
	Spawners  []SpawnerSummary
}

// SpawnerSummary is one spawner's pool state at the end of a run.
type SpawnerSummary struct {
	ID        string
	PoolTotal int
	Alive     int
}

// Validate checks the summary before it is written.
func (s *RunSummary) Validate() error {
	if s.StartedAt.IsZero() || s.EndedAt.IsZero() {
		return errors.New("run summary: missing start or end time")
	}
	if s.EndedAt.Before(s.StartedAt) {
		return errors.New("run summary: ends before it starts")
	}
	if s.Elapsed < 0 {
		return errors.New("run summary: negative elapsed time")
	}
	return nil
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Close releases the underlying pool.
func (r *RunRepo) Close() {
	r.db.Close()
}

// Record writes a run and its spawner rows in a single transaction. A zero ID
// is replaced with a fresh UUID, which is returned.
func (r *RunRepo) Record(ctx context.Context, s RunSummary) (uuid.UUID, error) {
	if err := s.Validate(); err != nil {
		return uuid.Nil, err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("run begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO sim_runs (id, seed, frames, elapsed_seconds, kills, spawned, fired, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, int64(s.Seed), int64(s.Frames), s.Elapsed, int64(s.Kills), int64(s.Spawned), int64(s.Fired),
		s.StartedAt, s.EndedAt,
	); err != nil {
		return uuid.Nil, fmt.Errorf("run insert: %w", err)
	}

	for _, sp := range s.Spawners {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sim_run_spawners (run_id, spawner_id, pool_total, alive)
			 VALUES ($1, $2, $3, $4)`,
			s.ID, sp.ID, sp.PoolTotal, sp.Alive,
		); err != nil {
			return uuid.Nil, fmt.Errorf("run spawner insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("run commit: %w", err)
	}
	return s.ID, nil
}

// Recent returns the latest runs, newest first, without spawner rows.
func (r *RunRepo) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, frames, elapsed_seconds, kills, spawned, fired, started_at, ended_at
		 FROM sim_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			s                                   RunSummary
			seed, frames, kills, spawned, fired int64
		)
		if err := rows.Scan(&s.ID, &seed, &frames, &s.Elapsed, &kills, &spawned, &fired, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.Seed = uint32(seed)
		s.Frames = uint64(frames)
		s.Kills = uint64(kills)
		s.Spawned = uint64(spawned)
		s.Fired = uint64(fired)
		out = append(out, s)
	}
	return out, rows.Err()
}
