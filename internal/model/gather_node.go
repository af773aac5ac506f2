package model

import "sync/atomic"

// GatherNode is one spawned gatherable object instance.
// It is created by the zone's spawn loop, claimed at most once by an agent,
// and removed on collection or by external world cleanup.
//
// The node holds a back-reference to its zone by identifier only; the zone
// registry owns the live set and node identifiers.
type GatherNode struct {
	id       string // "<zone>_<sequence>", assigned by the registry
	zoneID   string
	template *ObjectTemplate
	pose     Pose

	// claimed flips false→true exactly once. Zone loops and interaction
	// callbacks run on separate goroutines, so the transition is a real CAS.
	claimed atomic.Bool
}

// NewGatherNode creates a node at the given pose.
func NewGatherNode(id, zoneID string, template *ObjectTemplate, pose Pose) *GatherNode {
	return &GatherNode{
		id:       id,
		zoneID:   zoneID,
		template: template,
		pose:     pose,
	}
}

// ID returns the node identifier ("<zone>_<sequence>").
func (n *GatherNode) ID() string {
	return n.id
}

// ZoneID returns the identifier of the owning zone.
func (n *GatherNode) ZoneID() string {
	return n.zoneID
}

// Template returns the object template the node was spawned from.
func (n *GatherNode) Template() *ObjectTemplate {
	return n.template
}

// Pose returns the node's placement pose.
func (n *GatherNode) Pose() Pose {
	return n.pose
}

// Position returns the node's world position.
func (n *GatherNode) Position() Vector3 {
	return n.pose.Position
}

// Claimed reports whether the node has been collected.
func (n *GatherNode) Claimed() bool {
	return n.claimed.Load()
}

// Claim attempts the one-time Spawned→Claimed transition.
// Returns true if this caller won; once true the flag never reverts.
func (n *GatherNode) Claim() bool {
	return n.claimed.CompareAndSwap(false, true)
}
