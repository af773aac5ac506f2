package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3_Distance(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(3, 4, 0)

	assert.InDelta(t, 25.0, a.DistanceSquared(b), 1e-9)
	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
	assert.InDelta(t, 5.0, b.Distance(a), 1e-9)
}

func TestVector3_Half(t *testing.T) {
	v := NewVector3(2, 4, 6)
	assert.Equal(t, NewVector3(1, 2, 3), v.Half())
}

func TestAABBOverlap(t *testing.T) {
	tests := []struct {
		name     string
		aCenter  Vector3
		aExtents Vector3
		bCenter  Vector3
		bExtents Vector3
		want     bool
	}{
		{
			name:     "identical boxes",
			aCenter:  NewVector3(0, 0, 0),
			aExtents: NewVector3(2, 2, 2),
			bCenter:  NewVector3(0, 0, 0),
			bExtents: NewVector3(2, 2, 2),
			want:     true,
		},
		{
			name:     "partial overlap",
			aCenter:  NewVector3(0, 0, 0),
			aExtents: NewVector3(2, 2, 2),
			bCenter:  NewVector3(1.5, 0, 0),
			bExtents: NewVector3(2, 2, 2),
			want:     true,
		},
		{
			name:     "touching faces do not overlap",
			aCenter:  NewVector3(0, 0, 0),
			aExtents: NewVector3(2, 2, 2),
			bCenter:  NewVector3(2, 0, 0),
			bExtents: NewVector3(2, 2, 2),
			want:     false,
		},
		{
			name:     "separated vertically",
			aCenter:  NewVector3(0, 0, 0),
			aExtents: NewVector3(2, 2, 2),
			bCenter:  NewVector3(0, 0, 5),
			bExtents: NewVector3(2, 2, 2),
			want:     false,
		},
		{
			name:     "overlap on two axes only",
			aCenter:  NewVector3(0, 0, 0),
			aExtents: NewVector3(2, 2, 2),
			bCenter:  NewVector3(0.5, 0.5, 10),
			bExtents: NewVector3(2, 2, 2),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AABBOverlap(tt.aCenter, tt.aExtents, tt.bCenter, tt.bExtents)
			assert.Equal(t, tt.want, got)

			// Overlap is symmetric.
			assert.Equal(t, tt.want, AABBOverlap(tt.bCenter, tt.bExtents, tt.aCenter, tt.aExtents))
		})
	}
}

func TestAABBContainsXY(t *testing.T) {
	center := NewVector3(10, 20, 0)
	extents := NewVector3(4, 6, 2)

	assert.True(t, AABBContainsXY(center, extents, 10, 20))
	assert.True(t, AABBContainsXY(center, extents, 8, 17), "corner is inside")
	assert.True(t, AABBContainsXY(center, extents, 12, 23), "boundary counts as inside")
	assert.False(t, AABBContainsXY(center, extents, 12.1, 20))
	assert.False(t, AABBContainsXY(center, extents, 10, 23.1))
}
