package model

import "math"

// Vector3 represents a point or size in world space.
// X and Y are the horizontal axes, Z is vertical (up).
// Value type, передаётся по значению (immutable).
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// NewVector3 создаёт Vector3 с указанными координатами.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two vectors.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Scale returns the vector multiplied by a scalar.
func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Half returns the vector with each component halved.
// Used to convert full extents to half extents for AABB math.
func (v Vector3) Half() Vector3 {
	return v.Scale(0.5)
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (v Vector3) DistanceSquared(other Vector3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the euclidean distance to another point.
func (v Vector3) Distance(other Vector3) float64 {
	return math.Sqrt(v.DistanceSquared(other))
}

// Pose is a position plus a yaw rotation around the vertical axis.
// Yaw is in radians, [0, 2π).
type Pose struct {
	Position Vector3
	Yaw      float64
}

// AABBOverlap reports whether two axis-aligned boxes intersect.
// Boxes are given as center + full extents (width, depth, height).
// Touching faces do not count as overlap.
func AABBOverlap(aCenter, aExtents, bCenter, bExtents Vector3) bool {
	ah := aExtents.Half()
	bh := bExtents.Half()
	return math.Abs(aCenter.X-bCenter.X) < ah.X+bh.X &&
		math.Abs(aCenter.Y-bCenter.Y) < ah.Y+bh.Y &&
		math.Abs(aCenter.Z-bCenter.Z) < ah.Z+bh.Z
}

// AABBContainsXY reports whether point (x, y) lies inside the horizontal
// footprint of a box given as center + full extents. Boundary points count
// as inside.
func AABBContainsXY(center, extents Vector3, x, y float64) bool {
	h := extents.Half()
	return x >= center.X-h.X && x <= center.X+h.X &&
		y >= center.Y-h.Y && y <= center.Y+h.Y
}
