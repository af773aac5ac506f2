package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/udisondev/gatherd/internal/model"
)

// ErrNoPlacement is returned when no valid pose was found within the attempt
// ceiling. The caller treats it as "placement failed this tick" and retries
// on the next tick.
var ErrNoPlacement = errors.New("no valid placement found")

// DefaultMaxAttempts bounds the rejection-sampling loop. Near-empty zones
// accept within a few attempts; the ceiling only trips when a zone's free
// area is close to saturated.
const DefaultMaxAttempts = 64

// rayClearance is how far above the zone's top surface the downward
// terrain ray-cast originates.
const rayClearance = 500.0

// SpatialQuery answers the world-geometry queries placement depends on.
type SpatialQuery interface {
	// RaycastDown casts straight down from origin, returning the surface hit
	// or false on a miss. Agent volumes and zone boundaries are not hit.
	RaycastDown(origin model.Vector3, maxDistance float64) (model.Vector3, bool)

	// Overlaps reports whether a box would intersect any live object
	// already registered in the given zone.
	Overlaps(zoneID string, center, extents model.Vector3) bool
}

// Engine computes valid, non-overlapping spawn poses inside zone bounds
// using rejection sampling.
type Engine struct {
	spatial     SpatialQuery
	maxAttempts int
}

// NewEngine creates a placement engine. maxAttempts <= 0 selects
// DefaultMaxAttempts.
func NewEngine(spatial SpatialQuery, maxAttempts int) *Engine {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Engine{
		spatial:     spatial,
		maxAttempts: maxAttempts,
	}
}

// PlacePose computes a spawn pose for an object of the given template inside
// the zone's bounds. The pose is horizontally uniform within the zone,
// vertically resolved by the zone's placement mode, and does not overlap any
// object already live in the zone. The accepted pose carries a uniformly
// random yaw.
//
// A terrain ray-cast miss or an overlap rejects the sample and draws a fresh
// one. After maxAttempts rejections the engine gives up with ErrNoPlacement.
func (e *Engine) PlacePose(cfg *model.ZoneConfig, tmpl *model.ObjectTemplate) (model.Pose, error) {
	anchor := cfg.Anchor()
	extents := cfg.Extents()

	for range e.maxAttempts {
		x := anchor.X - extents.X/2 + rand.Float64()*extents.X
		y := anchor.Y - extents.Y/2 + rand.Float64()*extents.Y

		var z float64
		switch cfg.Mode() {
		case model.PlacementFlat:
			z = cfg.TopZ() + tmpl.HalfHeight()

		case model.PlacementTerrainProjected:
			origin := model.NewVector3(x, y, cfg.TopZ()+rayClearance)
			hit, ok := e.spatial.RaycastDown(origin, rayClearance+extents.Z)
			if !ok {
				continue // miss is a retry signal, not an error
			}
			z = hit.Z + tmpl.HalfHeight()
		}

		center := model.NewVector3(x, y, z)
		if e.spatial.Overlaps(cfg.ID(), center, tmpl.Extents()) {
			continue
		}

		// Cosmetic yaw, independent of placement validity.
		yaw := rand.Float64() * 2 * math.Pi
		return model.Pose{Position: center, Yaw: yaw}, nil
	}

	return model.Pose{}, fmt.Errorf("placing %s in zone %s after %d attempts: %w",
		tmpl.Name(), cfg.ID(), e.maxAttempts, ErrNoPlacement)
}
