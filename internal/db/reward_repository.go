package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RewardRepository writes the append-only reward grant ledger.
type RewardRepository struct {
	pool *pgxpool.Pool
}

// NewRewardRepository creates a new reward repository.
func NewRewardRepository(pool *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{pool: pool}
}

// RecordGrant appends one grant to the ledger.
func (r *RewardRepository) RecordGrant(ctx context.Context, agentID string, experience int64, itemID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reward_grants (agent_id, experience, item_id) VALUES ($1, $2, $3)`,
		agentID, experience, itemID,
	)
	if err != nil {
		return fmt.Errorf("recording grant for %q: %w", agentID, err)
	}
	return nil
}
