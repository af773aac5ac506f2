package zone

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/udisondev/gatherd/internal/model"
)

// Registry maps zone identifiers to their configs and live node sets.
// It is the sole authority on "is this node still alive in this zone".
//
// Zone configs are added once at startup and never change; the per-zone
// sequence counter and live set are the only mutable state. Registry methods
// are safe for concurrent use by zone loops and interaction callbacks.
type Registry struct {
	mu    sync.RWMutex
	zones map[string]*zoneEntry
}

type zoneEntry struct {
	cfg *model.ZoneConfig
	seq atomic.Uint64 // monotonically increasing, identifiers never reused

	mu    sync.RWMutex
	nodes map[string]*model.GatherNode
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		zones: make(map[string]*zoneEntry),
	}
}

// AddZone registers a zone config. Returns an error on duplicate identifier.
func (r *Registry) AddZone(cfg *model.ZoneConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[cfg.ID()]; ok {
		return fmt.Errorf("adding zone %q: already registered", cfg.ID())
	}
	r.zones[cfg.ID()] = &zoneEntry{
		cfg:   cfg,
		nodes: make(map[string]*model.GatherNode),
	}
	return nil
}

// Config returns the config for a zone.
func (r *Registry) Config(zoneID string) (*model.ZoneConfig, bool) {
	entry, ok := r.entry(zoneID)
	if !ok {
		return nil, false
	}
	return entry.cfg, true
}

// Zones returns all registered zone configs.
func (r *Registry) Zones() []*model.ZoneConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]*model.ZoneConfig, 0, len(r.zones))
	for _, entry := range r.zones {
		configs = append(configs, entry.cfg)
	}
	return configs
}

// NextID returns a fresh node identifier for the zone: "<zone>_<sequence>".
// Sequence numbers are never reused, even after the node is destroyed.
func (r *Registry) NextID(zoneID string) (string, error) {
	entry, ok := r.entry(zoneID)
	if !ok {
		return "", fmt.Errorf("next id: unknown zone %q", zoneID)
	}
	return fmt.Sprintf("%s_%d", zoneID, entry.seq.Add(1)), nil
}

// Register inserts a node into its zone's live set.
func (r *Registry) Register(zoneID string, node *model.GatherNode) error {
	entry, ok := r.entry(zoneID)
	if !ok {
		return fmt.Errorf("registering node %q: unknown zone %q", node.ID(), zoneID)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if _, exists := entry.nodes[node.ID()]; exists {
		return fmt.Errorf("registering node %q: already registered", node.ID())
	}
	entry.nodes[node.ID()] = node
	return nil
}

// Deregister removes a node from its zone's live set.
// No-op if the zone or node is absent, tolerates double-removal.
func (r *Registry) Deregister(zoneID, nodeID string) {
	entry, ok := r.entry(zoneID)
	if !ok {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	delete(entry.nodes, nodeID)
}

// Contains reports whether a node is in its zone's live set.
func (r *Registry) Contains(zoneID, nodeID string) bool {
	entry, ok := r.entry(zoneID)
	if !ok {
		return false
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	_, exists := entry.nodes[nodeID]
	return exists
}

// Nodes returns a snapshot of the zone's live nodes.
func (r *Registry) Nodes(zoneID string) []*model.GatherNode {
	entry, ok := r.entry(zoneID)
	if !ok {
		return nil
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	nodes := make([]*model.GatherNode, 0, len(entry.nodes))
	for _, node := range entry.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

// LiveCount returns the number of registered nodes whose backing world
// representation is still present, per the supplied liveness predicate.
func (r *Registry) LiveCount(zoneID string, alive func(*model.GatherNode) bool) int {
	entry, ok := r.entry(zoneID)
	if !ok {
		return 0
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	count := 0
	for _, node := range entry.nodes {
		if alive(node) {
			count++
		}
	}
	return count
}

// Prune removes and returns nodes that fail the liveness predicate.
// Used by the spawn loop to drop entries whose world representation was
// removed outside this subsystem.
func (r *Registry) Prune(zoneID string, alive func(*model.GatherNode) bool) []*model.GatherNode {
	entry, ok := r.entry(zoneID)
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	var removed []*model.GatherNode
	for id, node := range entry.nodes {
		if !alive(node) {
			removed = append(removed, node)
			delete(entry.nodes, id)
		}
	}
	return removed
}

func (r *Registry) entry(zoneID string) (*zoneEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.zones[zoneID]
	return entry, ok
}
