package model

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNode(id string) *GatherNode {
	tmpl := NewObjectTemplate("ore_vein", "Iron Vein", NewVector3(1, 1, 1.5))
	return NewGatherNode(id, "iron_field", tmpl, Pose{Position: NewVector3(10, 20, 0.75)})
}

func TestGatherNode_Claim(t *testing.T) {
	node := newTestNode("iron_field_1")

	assert.False(t, node.Claimed())
	assert.True(t, node.Claim(), "first claim wins")
	assert.True(t, node.Claimed())
	assert.False(t, node.Claim(), "second claim is a no-op")
	assert.True(t, node.Claimed(), "claimed flag never reverts")
}

func TestGatherNode_ClaimConcurrent(t *testing.T) {
	node := newTestNode("iron_field_2")

	const goroutines = 32
	var winners atomic.Int32
	var wg sync.WaitGroup

	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			if node.Claim() {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load(), "exactly one claimer wins")
	assert.True(t, node.Claimed())
}

func TestGatherNode_Accessors(t *testing.T) {
	node := newTestNode("iron_field_7")

	assert.Equal(t, "iron_field_7", node.ID())
	assert.Equal(t, "iron_field", node.ZoneID())
	assert.Equal(t, "ore_vein", node.Template().Name())
	assert.Equal(t, NewVector3(10, 20, 0.75), node.Position())
}
