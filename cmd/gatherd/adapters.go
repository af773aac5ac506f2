package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/gatherd/internal/gather"
	"github.com/udisondev/gatherd/internal/model"
)

// interactionAdapter is the in-process stand-in for the client interaction
// layer. It tracks armed triggers and forwards hold events from the session
// side to the collector. Movement-lock signals are logged; the avatar
// service owning the actual lock lives outside this process.
type interactionAdapter struct {
	mu        sync.RWMutex
	collector *gather.Collector
	armed     map[string]*model.GatherNode // nodeID → node
}

func newInteractionAdapter() *interactionAdapter {
	return &interactionAdapter{
		armed: make(map[string]*model.GatherNode),
	}
}

// bind attaches the collector once it exists (the adapter is created first
// because the collector needs it as a MovementLocker).
func (a *interactionAdapter) bind(collector *gather.Collector) {
	a.collector = collector
}

// Arm registers a spawned node's hold-to-interact trigger.
func (a *interactionAdapter) Arm(node *model.GatherNode, hold time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.armed[node.ID()] = node
	slog.Debug("interaction trigger armed", "node", node.ID(), "hold", hold)
}

// Disarm drops a node's trigger. The spawn loop calls it for nodes removed
// from the world outside the collection path, so armed entries cannot
// outlive their nodes.
func (a *interactionAdapter) Disarm(node *model.GatherNode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.armed, node.ID())
}

// SetMovementLocked signals the avatar service to freeze or release an agent.
func (a *interactionAdapter) SetMovementLocked(agentID string, locked bool) {
	slog.Debug("movement lock", "agent", agentID, "locked", locked)
}

// OnHoldBegan is invoked by the session layer when an agent starts holding.
// Only an armed node locks the agent.
func (a *interactionAdapter) OnHoldBegan(agentID, nodeID string) {
	if node, ok := a.node(nodeID); ok {
		a.collector.HoldBegan(agentID, node)
	}
}

// OnHoldEnded is invoked when the hold releases, completed or not. The
// unlock is unconditional: a completed hold disarms the node before the
// release event arrives, and the agent must never stay locked.
func (a *interactionAdapter) OnHoldEnded(agentID, nodeID string) {
	a.collector.HoldEnded(agentID)
}

// OnTriggered is invoked when the hold completes. A claimed node is gone
// for good, so its trigger is dropped whether or not this event won the
// claim.
func (a *interactionAdapter) OnTriggered(ctx context.Context, agentID, nodeID string) {
	node, ok := a.node(nodeID)
	if !ok {
		return
	}
	if a.collector.Triggered(ctx, agentID, node) || node.Claimed() {
		a.mu.Lock()
		delete(a.armed, nodeID)
		a.mu.Unlock()
	}
}

func (a *interactionAdapter) node(nodeID string) (*model.GatherNode, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	node, ok := a.armed[nodeID]
	return node, ok
}

// avatarAdapter resolves agent positions. Providers register from the
// session layer; an unknown agent is simply not eligible to collect.
type avatarAdapter struct {
	mu        sync.RWMutex
	positions map[string]model.Vector3
}

func newAvatarAdapter() *avatarAdapter {
	return &avatarAdapter{
		positions: make(map[string]model.Vector3),
	}
}

// Position implements gather.Avatars.
func (a *avatarAdapter) Position(agentID string) (model.Vector3, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	pos, ok := a.positions[agentID]
	return pos, ok
}

// Update records an agent's live position; Remove drops it on disconnect.
func (a *avatarAdapter) Update(agentID string, pos model.Vector3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.positions[agentID] = pos
}

func (a *avatarAdapter) Remove(agentID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.positions, agentID)
}
