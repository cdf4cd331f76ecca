package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used for all physics state
type Vec3F struct {
	X, Y, Z float64
}

func V3F(x, y, z float64) Vec3F {
	return Vec3F{x, y, z}
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDistSq returns the squared euclidean distance between a and b
func V3FDistSq(a, b Vec3F) float64 {
	return V3FMagSq(V3FSub(b, a))
}

// V3FNormalize returns the unit vector of v, zero vector for zero input
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FIsFinite reports whether no component is NaN or Inf
func V3FIsFinite(v Vec3F) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Axis returns component i (0=X, 1=Y, 2=Z)
func (v Vec3F) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// AxisPtr returns a pointer to component i for in-place per-axis updates
func (v *Vec3F) AxisPtr(i int) *float64 {
	switch i {
	case 0:
		return &v.X
	case 1:
		return &v.Y
	default:
		return &v.Z
	}
}
