package vmath

// Box3F is an axis-aligned box in the same space as body positions
type Box3F struct {
	Min, Max Vec3F
}

// NewBox3F builds a box from two corners, ordering components so Min <= Max
func NewBox3F(a, b Vec3F) Box3F {
	return Box3F{
		Min: Vec3F{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)},
		Max: Vec3F{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)},
	}
}

// CenteredBox3F returns a box centered on the origin with the given half extents
func CenteredBox3F(halfX, halfY, halfZ float64) Box3F {
	return NewBox3F(Vec3F{-halfX, -halfY, -halfZ}, Vec3F{halfX, halfY, halfZ})
}

// OutsideAxis reports whether p lies strictly outside [Min, Max] on axis i
func (b Box3F) OutsideAxis(p Vec3F, i int) bool {
	c := p.Axis(i)
	return c < b.Min.Axis(i) || c > b.Max.Axis(i)
}

// Contains reports whether p lies inside the box, boundary inclusive
func (b Box3F) Contains(p Vec3F) bool {
	for i := 0; i < 3; i++ {
		if b.OutsideAxis(p, i) {
			return false
		}
	}
	return true
}

// ClampPoint returns p clamped into the box on every axis
func (b Box3F) ClampPoint(p Vec3F) Vec3F {
	return Vec3F{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// Size returns the extent of the box on each axis
func (b Box3F) Size() Vec3F {
	return V3FSub(b.Max, b.Min)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
