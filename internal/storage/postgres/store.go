package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"he3scope/internal/model"
)

// Store provides Postgres persistence for progression and leaderboard
// records.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertProgressions inserts or updates per-agent progression records.
func (s *Store) UpsertProgressions(ctx context.Context, progressions []model.AgentProgression) error {
	if len(progressions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range progressions {
		batch.Queue(`
			INSERT INTO agent_progressions (
				agent_id, resource_score, lp_score, farming_score, total_score, computed_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, now())
			ON CONFLICT (agent_id)
			DO UPDATE SET
				resource_score = EXCLUDED.resource_score,
				lp_score = EXCLUDED.lp_score,
				farming_score = EXCLUDED.farming_score,
				total_score = EXCLUDED.total_score,
				computed_at = EXCLUDED.computed_at,
				updated_at = now()
		`,
			p.AgentID,
			p.ResourceScore,
			p.LPScore,
			p.FarmingScore,
			p.TotalScore,
			p.ComputedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range progressions {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertRanking replaces the multi-factor leaderboard.
func (s *Store) UpsertRanking(ctx context.Context, entries []model.RankedAgent) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO leaderboard (
				agent_id, rank, total_score, resource_score, lp_score, farming_score, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, now())
			ON CONFLICT (agent_id)
			DO UPDATE SET
				rank = EXCLUDED.rank,
				total_score = EXCLUDED.total_score,
				resource_score = EXCLUDED.resource_score,
				lp_score = EXCLUDED.lp_score,
				farming_score = EXCLUDED.farming_score,
				updated_at = now()
		`,
			e.AgentID,
			e.Rank,
			e.TotalScore,
			e.ResourceScore,
			e.LPScore,
			e.FarmingScore,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertHe3Ranking replaces the victory-token leaderboard.
func (s *Store) UpsertHe3Ranking(ctx context.Context, entries []model.He3RankedAgent) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO he3_leaderboard (
				agent_id, rank, he3_balance, progress_to_goal, updated_at
			) VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (agent_id)
			DO UPDATE SET
				rank = EXCLUDED.rank,
				he3_balance = EXCLUDED.he3_balance,
				progress_to_goal = EXCLUDED.progress_to_goal,
				updated_at = now()
		`,
			e.AgentID,
			e.Rank,
			e.He3Balance,
			e.ProgressToGoal,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadLastRun returns the last completed run timestamp for a report name.
func (s *Store) LoadLastRun(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("run name required")
	}
	var ts uint64
	row := s.pool.QueryRow(ctx, `SELECT last_run_ts FROM run_state WHERE name=$1`, name)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return ts, true, nil
}

// SaveLastRun upserts the last completed run timestamp for a report name.
func (s *Store) SaveLastRun(ctx context.Context, name string, ts uint64) error {
	if name == "" {
		return fmt.Errorf("run name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO run_state (name, last_run_ts, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_run_ts = EXCLUDED.last_run_ts, updated_at = now()
	`, name, ts)
	return err
}
