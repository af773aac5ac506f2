package model

import (
	"fmt"
	"time"
)

// PlacementMode selects how the vertical position of a spawned object is
// resolved inside a zone.
type PlacementMode string

const (
	// PlacementFlat places objects at a fixed height: the zone's top surface.
	PlacementFlat PlacementMode = "flat"
	// PlacementTerrainProjected projects objects down onto the terrain surface.
	PlacementTerrainProjected PlacementMode = "terrain_projected"
)

// Reward is the payload granted to an agent on successful collection.
type Reward struct {
	Experience int64
	ItemID     string
}

// ZoneConfig is the static descriptor of a gathering zone.
// Immutable after load; mutable zone state (sequence counter, live set)
// lives in the zone registry.
type ZoneConfig struct {
	id            string
	anchor        Vector3 // center of the zone volume
	extents       Vector3 // full size: width (X), depth (Y), height (Z)
	mode          PlacementMode
	template      string // object template catalog name
	spawnInterval time.Duration
	populationCap int
	holdDuration  time.Duration
	reward        Reward
}

// NewZoneConfig creates and validates a zone config.
func NewZoneConfig(
	id string,
	anchor, extents Vector3,
	mode PlacementMode,
	template string,
	spawnInterval time.Duration,
	populationCap int,
	holdDuration time.Duration,
	reward Reward,
) (*ZoneConfig, error) {
	cfg := &ZoneConfig{
		id:            id,
		anchor:        anchor,
		extents:       extents,
		mode:          mode,
		template:      template,
		spawnInterval: spawnInterval,
		populationCap: populationCap,
		holdDuration:  holdDuration,
		reward:        reward,
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("zone %q: %w", id, err)
	}
	return cfg, nil
}

func (c *ZoneConfig) validate() error {
	if c.id == "" {
		return fmt.Errorf("empty zone id")
	}
	switch c.mode {
	case PlacementFlat, PlacementTerrainProjected:
	default:
		return fmt.Errorf("unknown placement mode %q", c.mode)
	}
	if c.template == "" {
		return fmt.Errorf("empty object template")
	}
	if c.extents.X <= 0 || c.extents.Y <= 0 || c.extents.Z <= 0 {
		return fmt.Errorf("non-positive extents %+v", c.extents)
	}
	if c.spawnInterval <= 0 {
		return fmt.Errorf("non-positive spawn interval %s", c.spawnInterval)
	}
	if c.populationCap <= 0 {
		return fmt.Errorf("non-positive population cap %d", c.populationCap)
	}
	if c.holdDuration < 0 {
		return fmt.Errorf("negative hold duration %s", c.holdDuration)
	}
	return nil
}

// ID returns the zone identifier.
func (c *ZoneConfig) ID() string {
	return c.id
}

// Anchor returns the center of the zone volume.
func (c *ZoneConfig) Anchor() Vector3 {
	return c.anchor
}

// Extents returns the full size of the zone volume.
func (c *ZoneConfig) Extents() Vector3 {
	return c.extents
}

// Mode returns the configured placement mode.
func (c *ZoneConfig) Mode() PlacementMode {
	return c.mode
}

// Template returns the object template catalog name.
func (c *ZoneConfig) Template() string {
	return c.template
}

// SpawnInterval returns the delay between spawn attempts.
func (c *ZoneConfig) SpawnInterval() time.Duration {
	return c.spawnInterval
}

// PopulationCap returns the maximum number of live objects in the zone.
func (c *ZoneConfig) PopulationCap() int {
	return c.populationCap
}

// HoldDuration returns how long an agent must hold the interaction trigger.
func (c *ZoneConfig) HoldDuration() time.Duration {
	return c.holdDuration
}

// Reward returns the reward payload granted on collection.
func (c *ZoneConfig) Reward() Reward {
	return c.reward
}

// TopZ returns the height of the zone's top surface.
func (c *ZoneConfig) TopZ() float64 {
	return c.anchor.Z + c.extents.Z/2
}

// ContainsXY reports whether (x, y) lies inside the zone's horizontal bounds.
func (c *ZoneConfig) ContainsXY(x, y float64) bool {
	return AABBContainsXY(c.anchor, c.extents, x, y)
}
