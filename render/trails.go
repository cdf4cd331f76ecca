package render

import (
	"github.com/lixenwraith/vi-gravity/physics"
)

type cell struct{ x, y int }

// Trails keeps the last cells each body passed through, oldest first
type Trails struct {
	length int
	paths  map[physics.BodyID][]cell
}

func NewTrails(length int) *Trails {
	return &Trails{
		length: max(length, 0),
		paths:  make(map[physics.BodyID][]cell),
	}
}

// Record appends a cell to the body's trail, repeated cells are collapsed
func (t *Trails) Record(id physics.BodyID, x, y int) {
	if t.length == 0 {
		return
	}
	path := t.paths[id]
	if n := len(path); n > 0 && path[n-1] == (cell{x, y}) {
		return
	}
	path = append(path, cell{x, y})
	if len(path) > t.length {
		path = path[len(path)-t.length:]
	}
	t.paths[id] = path
}

// Path returns the trail for id, oldest first
func (t *Trails) Path(id physics.BodyID) []cell {
	return t.paths[id]
}

// Retain drops trails of bodies not in live
func (t *Trails) Retain(live map[physics.BodyID]bool) {
	for id := range t.paths {
		if !live[id] {
			delete(t.paths, id)
		}
	}
}

func (t *Trails) Clear() {
	t.paths = make(map[physics.BodyID][]cell)
}
