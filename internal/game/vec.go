package game

import "math"

// Vec2 is an immutable 2D point/velocity value.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Overlap holds the penetration depths of an AABB intersection test.
// Both depths are positive when the boxes overlap.
type Overlap struct {
	X float64
	Y float64
}

// aabbOverlap tests two axis-aligned boxes given by their centers and half
// extents. The returned Overlap is only meaningful when ok is true.
func aabbOverlap(aCenter Vec2, aHalfW, aHalfH float64, bCenter Vec2, bHalfW, bHalfH float64) (Overlap, bool) {
	px := aHalfW + bHalfW - math.Abs(aCenter.X-bCenter.X)
	if px <= 0 {
		return Overlap{}, false
	}
	py := aHalfH + bHalfH - math.Abs(aCenter.Y-bCenter.Y)
	if py <= 0 {
		return Overlap{}, false
	}
	return Overlap{X: px, Y: py}, true
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
