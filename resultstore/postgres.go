// Package resultstore persists taso's best-candidate rows to PostgreSQL.
// It lives outside package taso specifically so the driver never imports a
// database driver directly: taso only knows about the taso.ResultStore
// interface, and Store implements it from the outside.
package resultstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a pgx-backed taso.ResultStore implementation.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool to connStr and verifies it with a ping.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("resultstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("resultstore: ping: %w", err)
	}
	log.Println("resultstore: connected to PostgreSQL")
	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the best_candidates table if it does not already exist.
func (s *Store) InitSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS best_candidates (
			run_id     TEXT NOT NULL,
			circ_len   INTEGER NOT NULL,
			cost       INTEGER NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (run_id, recorded_at)
		);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("resultstore: init schema: %w", err)
	}
	return nil
}

// SaveBest implements taso.ResultStore: it records one best-candidate
// improvement row, keyed by runID and timestamp so a run's whole cost
// trajectory can be replayed later.
func (s *Store) SaveBest(runID string, circLen int, cost int, at time.Time) error {
	const sql = `
		INSERT INTO best_candidates (run_id, circ_len, cost, recorded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id, recorded_at) DO UPDATE
		SET circ_len = EXCLUDED.circ_len, cost = EXCLUDED.cost;
	`
	_, err := s.pool.Exec(context.Background(), sql, runID, circLen, cost, at)
	if err != nil {
		return fmt.Errorf("resultstore: save best: %w", err)
	}
	return nil
}

// BestRow is one recorded best-candidate improvement, as returned by
// History.
type BestRow struct {
	CircLen    int       `json:"circLen"`
	Cost       int       `json:"cost"`
	RecordedAt time.Time `json:"recordedAt"`
}

// History returns every recorded best-candidate row for runID, ordered by
// recording time. No status-server route calls it.
func (s *Store) History(ctx context.Context, runID string) ([]BestRow, error) {
	const sql = `
		SELECT circ_len, cost, recorded_at
		FROM best_candidates
		WHERE run_id = $1
		ORDER BY recorded_at ASC;
	`
	rows, err := s.pool.Query(ctx, sql, runID)
	if err != nil {
		return nil, fmt.Errorf("resultstore: history: %w", err)
	}
	defer rows.Close()

	var out []BestRow
	for rows.Next() {
		var r BestRow
		if err := rows.Scan(&r.CircLen, &r.Cost, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("resultstore: history scan: %w", err)
		}
		out = append(out, r)
	}
	if out == nil {
		out = []BestRow{}
	}
	return out, rows.Err()
}
