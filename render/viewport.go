package render

import (
	"math"

	"github.com/lixenwraith/vi-gravity/sim"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// CellAspect is the height/width ratio of a terminal cell
const CellAspect = 2.0

// Viewport maps world coordinates onto the terminal grid
// World origin sits at the center of the field below the HUD, +Y is up
type Viewport struct {
	Cols, Rows int
	HUDRows    int
	Scale      float64 // world units per column
}

// FieldRows returns the rows available for the simulation field
func (v Viewport) FieldRows() int {
	return max(v.Rows-v.HUDRows, 0)
}

// WorldSize returns the world extent covered by the field
func (v Viewport) WorldSize() (width, height float64) {
	return float64(v.Cols) * v.Scale, float64(v.FieldRows()) * v.Scale * CellAspect
}

// Bounds returns the reflective box matching the visible field, z spans [-1, 1]
func (v Viewport) Bounds() vmath.Box3F {
	return sim.ViewportBounds(v.WorldSize())
}

// Project maps a world position to a cell, ok is false outside the field
func (v Viewport) Project(p vmath.Vec3F) (x, y int, ok bool) {
	if v.Scale <= 0 || !vmath.V3FIsFinite(p) {
		return 0, 0, false
	}
	fx := p.X/v.Scale + float64(v.Cols)/2
	fy := float64(v.FieldRows())/2 - p.Y/(v.Scale*CellAspect)

	x = int(math.Floor(fx))
	y = int(math.Floor(fy))
	if x < 0 || x >= v.Cols || y < 0 || y >= v.FieldRows() {
		return 0, 0, false
	}
	return x, y + v.HUDRows, true
}
