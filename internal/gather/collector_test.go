package gather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gatherd/internal/model"
	"github.com/udisondev/gatherd/internal/terrain"
	"github.com/udisondev/gatherd/internal/world"
	"github.com/udisondev/gatherd/internal/zone"
)

// mockAvatars — фиксированные позиции агентов для тестов.
type mockAvatars struct {
	positions map[string]model.Vector3
}

func (m *mockAvatars) Position(agentID string) (model.Vector3, bool) {
	pos, ok := m.positions[agentID]
	return pos, ok
}

// mockRewards записывает все выданные награды.
type mockRewards struct {
	grants []grant
}

type grant struct {
	agentID    string
	experience int64
	itemID     string
}

func (m *mockRewards) Grant(_ context.Context, agentID string, experience int64, itemID string) {
	m.grants = append(m.grants, grant{agentID, experience, itemID})
}

// mockLocker записывает последовательность блокировок движения.
type mockLocker struct {
	calls []lockCall
}

type lockCall struct {
	agentID string
	locked  bool
}

func (m *mockLocker) SetMovementLocked(agentID string, locked bool) {
	m.calls = append(m.calls, lockCall{agentID, locked})
}

type collectorFixture struct {
	registry *zone.Registry
	world    *world.World
	avatars  *mockAvatars
	rewards  *mockRewards
	locker   *mockLocker
	coll     *Collector
	node     *model.GatherNode
}

// newFixture собирает коллектор с одной зоной и одним живым узлом в (0, 0, 0).
func newFixture(t *testing.T) *collectorFixture {
	t.Helper()

	cfg, err := model.NewZoneConfig(
		"quarry",
		model.NewVector3(0, 0, 0),
		model.NewVector3(50, 50, 10),
		model.PlacementFlat,
		"ore_vein",
		time.Second,
		5,
		2*time.Second,
		model.Reward{Experience: 250, ItemID: "iron_ore"},
	)
	require.NoError(t, err)

	registry := zone.NewRegistry()
	require.NoError(t, registry.AddZone(cfg))

	w := world.New(terrain.NewEngine())

	tmpl := model.NewObjectTemplate("ore_vein", "Iron Vein", model.NewVector3(1, 1, 1))
	node := model.NewGatherNode("quarry_1", "quarry", tmpl, model.Pose{Position: model.NewVector3(0, 0, 0)})
	w.AddNode(node)
	require.NoError(t, registry.Register("quarry", node))

	avatars := &mockAvatars{positions: map[string]model.Vector3{
		"agent_near": model.NewVector3(1, 1, 0),
		"agent_far":  model.NewVector3(40, 40, 0),
	}}
	rewards := &mockRewards{}
	locker := &mockLocker{}

	return &collectorFixture{
		registry: registry,
		world:    w,
		avatars:  avatars,
		rewards:  rewards,
		locker:   locker,
		coll:     NewCollector(registry, w, avatars, rewards, locker, 3.0),
		node:     node,
	}
}

func TestCollector_Collect(t *testing.T) {
	f := newFixture(t)

	ok := f.coll.Triggered(context.Background(), "agent_near", f.node)

	assert.True(t, ok)
	assert.True(t, f.node.Claimed())
	require.Len(t, f.rewards.grants, 1)
	assert.Equal(t, grant{"agent_near", 250, "iron_ore"}, f.rewards.grants[0])
	assert.False(t, f.registry.Contains("quarry", "quarry_1"), "deregistered from zone")
	assert.False(t, f.world.Contains("quarry_1"), "removed from world")
}

func TestCollector_OutOfRange(t *testing.T) {
	f := newFixture(t)

	ok := f.coll.Triggered(context.Background(), "agent_far", f.node)

	assert.False(t, ok)
	assert.False(t, f.node.Claimed(), "no state change")
	assert.Empty(t, f.rewards.grants, "no reward")
	assert.True(t, f.registry.Contains("quarry", "quarry_1"))
}

func TestCollector_UnknownAgent(t *testing.T) {
	f := newFixture(t)

	ok := f.coll.Triggered(context.Background(), "agent_gone", f.node)

	assert.False(t, ok)
	assert.False(t, f.node.Claimed())
	assert.Empty(t, f.rewards.grants)
}

func TestCollector_StaleNode(t *testing.T) {
	f := newFixture(t)

	// Node removed by other means before the trigger lands.
	f.registry.Deregister("quarry", "quarry_1")

	ok := f.coll.Triggered(context.Background(), "agent_near", f.node)

	assert.False(t, ok)
	assert.False(t, f.node.Claimed())
	assert.Empty(t, f.rewards.grants)
}

func TestCollector_DuplicateTrigger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.coll.Triggered(ctx, "agent_near", f.node)
	second := f.coll.Triggered(ctx, "agent_near", f.node)

	assert.True(t, first, "first completion wins")
	assert.False(t, second, "duplicate completion is a no-op")
	assert.Len(t, f.rewards.grants, 1, "reward granted exactly once")
}

func TestCollector_MovementLockSymmetry(t *testing.T) {
	f := newFixture(t)

	// Completed hold.
	f.coll.HoldBegan("agent_near", f.node)
	f.coll.Triggered(context.Background(), "agent_near", f.node)
	f.coll.HoldEnded("agent_near")

	// Interrupted hold on an already-collected node.
	f.coll.HoldBegan("agent_far", f.node)
	f.coll.HoldEnded("agent_far")

	assert.Equal(t, []lockCall{
		{"agent_near", true},
		{"agent_near", false},
		{"agent_far", true},
		{"agent_far", false},
	}, f.locker.calls, "every lock is followed by exactly one unlock")
}

func TestCollector_DestroyIdempotent(t *testing.T) {
	f := newFixture(t)

	f.coll.Destroy(f.node)
	f.coll.Destroy(f.node)

	assert.False(t, f.world.Contains("quarry_1"))
	assert.False(t, f.registry.Contains("quarry", "quarry_1"))
}
