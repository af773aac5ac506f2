package world

import (
	"sync"

	"github.com/udisondev/gatherd/internal/model"
	"github.com/udisondev/gatherd/internal/terrain"
)

// World tracks the live world representation of spawned gatherable objects
// and answers the spatial queries placement depends on.
//
// Presence here is what "liveness" means for registry bookkeeping: a node
// removed from the world (by collection or by external cleanup) is dead even
// if its registry entry still exists.
type World struct {
	nodes   sync.Map // map[string]*model.GatherNode, keyed by node ID
	terrain *terrain.Engine
}

// New creates a world backed by the given terrain engine.
// The terrain engine may be empty: ray-casts then always miss, which keeps
// terrain-projected zones retrying rather than spawning mid-air objects.
func New(t *terrain.Engine) *World {
	return &World{terrain: t}
}

// AddNode adds a node's world representation.
func (w *World) AddNode(node *model.GatherNode) {
	w.nodes.Store(node.ID(), node)
}

// RemoveNode removes a node's world representation.
// Idempotent, safe to invoke even if already removed.
func (w *World) RemoveNode(nodeID string) {
	w.nodes.Delete(nodeID)
}

// Contains reports whether a node's world representation still exists.
func (w *World) Contains(nodeID string) bool {
	_, ok := w.nodes.Load(nodeID)
	return ok
}

// Node returns a node by identifier.
func (w *World) Node(nodeID string) (*model.GatherNode, bool) {
	value, ok := w.nodes.Load(nodeID)
	if !ok {
		return nil, false
	}
	return value.(*model.GatherNode), true
}

// RaycastDown casts a ray straight down from origin against the terrain.
// Returns the hit position, or false when there is no surface below origin
// within maxDistance. Only terrain is hit: agents and zone boundaries have
// no surface in the heightmap.
func (w *World) RaycastDown(origin model.Vector3, maxDistance float64) (model.Vector3, bool) {
	h, ok := w.terrain.HeightAt(origin.X, origin.Y)
	if !ok {
		return model.Vector3{}, false
	}
	if h > origin.Z || origin.Z-h > maxDistance {
		return model.Vector3{}, false
	}
	return model.NewVector3(origin.X, origin.Y, h), true
}

// Overlaps reports whether a box at center would intersect the bounding box
// of any live node belonging to the given zone.
func (w *World) Overlaps(zoneID string, center, extents model.Vector3) bool {
	overlap := false
	w.nodes.Range(func(_, value any) bool {
		node := value.(*model.GatherNode)
		if node.ZoneID() != zoneID {
			return true
		}
		if model.AABBOverlap(center, extents, node.Position(), node.Template().Extents()) {
			overlap = true
			return false
		}
		return true
	})
	return overlap
}
