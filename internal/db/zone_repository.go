package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gatherd/internal/model"
)

// ZoneRepository loads zone configurations.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository creates a new zone repository.
func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

// LoadAll loads all zone configs from the database. Rows that fail config
// validation are logged and skipped; a misconfigured zone disables itself,
// not the process.
func (r *ZoneRepository) LoadAll(ctx context.Context) ([]*model.ZoneConfig, error) {
	query := `
		SELECT zone_id,
		       anchor_x, anchor_y, anchor_z,
		       extent_x, extent_y, extent_z,
		       placement_mode, template,
		       spawn_interval_seconds, population_cap, hold_duration_seconds,
		       reward_experience, reward_item_id
		FROM zones
		ORDER BY zone_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading zones: %w", err)
	}
	defer rows.Close()

	zones := make([]*model.ZoneConfig, 0, 16)

	for rows.Next() {
		var (
			zoneID               string
			ax, ay, az           float64
			ex, ey, ez           float64
			mode, template       string
			intervalSec, holdSec float64
			populationCap        int
			rewardExperience     int64
			rewardItemID         string
		)

		if err := rows.Scan(
			&zoneID,
			&ax, &ay, &az,
			&ex, &ey, &ez,
			&mode, &template,
			&intervalSec, &populationCap, &holdSec,
			&rewardExperience, &rewardItemID,
		); err != nil {
			return nil, fmt.Errorf("scanning zone row: %w", err)
		}

		cfg, err := model.NewZoneConfig(
			zoneID,
			model.NewVector3(ax, ay, az),
			model.NewVector3(ex, ey, ez),
			model.PlacementMode(mode),
			template,
			time.Duration(intervalSec*float64(time.Second)),
			populationCap,
			time.Duration(holdSec*float64(time.Second)),
			model.Reward{Experience: rewardExperience, ItemID: rewardItemID},
		)
		if err != nil {
			slog.Error("skipping misconfigured zone", "zone", zoneID, "error", err)
			continue
		}

		zones = append(zones, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone rows: %w", err)
	}

	slog.Info("zones loaded from database", "count", len(zones))
	return zones, nil
}
