package gather

import (
	"context"
	"log/slog"

	"github.com/udisondev/gatherd/internal/model"
	"github.com/udisondev/gatherd/internal/zone"
)

// DefaultInteractionRadius is the maximum agent-to-object distance for a
// collection to count, in world units.
const DefaultInteractionRadius = 3.0

// Rewards grants experience and items on successful collection.
// Fire-and-forget: the collector does not await or verify the result.
type Rewards interface {
	Grant(ctx context.Context, agentID string, experience int64, itemID string)
}

// Avatars resolves an agent's live world representation.
// A missing agent means "not eligible", not an error.
type Avatars interface {
	Position(agentID string) (model.Vector3, bool)
}

// MovementLocker freezes and releases an agent while it holds the
// interaction trigger.
type MovementLocker interface {
	SetMovementLocked(agentID string, locked bool)
}

// World is the slice of world state the collector needs: node liveness and
// removal of collected nodes.
type World interface {
	Contains(nodeID string) bool
	RemoveNode(nodeID string)
}

// Collector runs the claim state machine for gatherable objects. It receives
// hold-interaction events from the interaction layer and arbitrates
// single-claim collection.
type Collector struct {
	registry *zone.Registry
	world    World
	avatars  Avatars
	rewards  Rewards
	locker   MovementLocker
	radius   float64
}

// NewCollector creates a collector. radius <= 0 selects
// DefaultInteractionRadius.
func NewCollector(
	registry *zone.Registry,
	world World,
	avatars Avatars,
	rewards Rewards,
	locker MovementLocker,
	radius float64,
) *Collector {
	if radius <= 0 {
		radius = DefaultInteractionRadius
	}
	return &Collector{
		registry: registry,
		world:    world,
		avatars:  avatars,
		rewards:  rewards,
		locker:   locker,
		radius:   radius,
	}
}

// HoldBegan locks the agent's movement while it holds the trigger.
func (c *Collector) HoldBegan(agentID string, node *model.GatherNode) {
	c.locker.SetMovementLocked(agentID, true)
}

// HoldEnded releases the agent's movement lock. Fires regardless of whether
// the hold completed or was interrupted, an agent must never stay locked.
// Takes no node: the lock belongs to the agent, and the node may already be
// destroyed by the time the release event arrives.
func (c *Collector) HoldEnded(agentID string) {
	c.locker.SetMovementLocked(agentID, false)
}

// Triggered handles a completed hold interaction. Validates, in order: the
// agent still has a live representation, the agent is within the interaction
// radius, the node is still in its zone's live set, and the node is
// unclaimed. Any failing condition silently aborts with no state change.
//
// On success the node is claimed (first caller wins), the zone's reward is
// granted, and the node is destroyed. Returns whether this call collected
// the node.
func (c *Collector) Triggered(ctx context.Context, agentID string, node *model.GatherNode) bool {
	pos, ok := c.avatars.Position(agentID)
	if !ok {
		return false
	}
	if pos.Distance(node.Position()) > c.radius {
		return false
	}
	if !c.registry.Contains(node.ZoneID(), node.ID()) {
		return false
	}
	if !node.Claim() {
		// Lost the race: another completion already claimed this node.
		return false
	}

	cfg, ok := c.registry.Config(node.ZoneID())
	if !ok {
		// Zone vanished between registration and claim; nothing to grant.
		c.Destroy(node)
		return false
	}

	reward := cfg.Reward()
	c.rewards.Grant(ctx, agentID, reward.Experience, reward.ItemID)
	c.Destroy(node)

	slog.Info("gatherable collected",
		"node", node.ID(),
		"zone", node.ZoneID(),
		"agent", agentID,
		"experience", reward.Experience,
		"item", reward.ItemID)
	return true
}

// Destroy removes the node's world representation and deregisters it from
// its zone. Idempotent, safe to invoke even if already removed.
func (c *Collector) Destroy(node *model.GatherNode) {
	c.world.RemoveNode(node.ID())
	c.registry.Deregister(node.ZoneID(), node.ID())
}
