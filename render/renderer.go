package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/sim"
	"github.com/lixenwraith/vi-gravity/status"
)

const (
	bodyRune  = '●'
	discRune  = '█'
	trailRune = '·'
	wallRune  = '░'
)

// Frame is everything drawn in one pass
type Frame struct {
	Bodies  []sim.BodyState
	Metrics []status.Sample
	Paused  bool
	Message string
}

// Renderer draws simulation frames onto a tcell screen
type Renderer struct {
	Viewport Viewport
	trails   *Trails
	colors   map[physics.BodyID]colorful.Color
}

// NewRenderer creates a renderer keeping trailLength cells per body
func NewRenderer(vp Viewport, trailLength int) *Renderer {
	return &Renderer{
		Viewport: vp,
		trails:   NewTrails(trailLength),
		colors:   make(map[physics.BodyID]colorful.Color),
	}
}

// Resize updates the grid size, trails are dropped since cell mapping changed
func (r *Renderer) Resize(cols, rows int) {
	r.Viewport.Cols, r.Viewport.Rows = cols, rows
	r.trails.Clear()
}

// Reset forgets per-body trails and colors
func (r *Renderer) Reset() {
	r.trails.Clear()
	r.colors = make(map[physics.BodyID]colorful.Color)
}

// Draw renders HUD, walls, trails and bodies, then shows the screen
func (r *Renderer) Draw(screen tcell.Screen, f Frame) {
	screen.Clear()
	bg := tcell.StyleDefault.Background(ToTcell(Background))
	screen.Fill(' ', bg)

	r.drawHUD(screen, f, bg)
	r.drawWalls(screen, bg)

	live := make(map[physics.BodyID]bool, len(f.Bodies))
	for i, b := range f.Bodies {
		live[b.ID] = true
		if _, ok := r.colors[b.ID]; !ok {
			r.colors[b.ID] = BodyColor(i, b.Color)
		}
		if x, y, ok := r.Viewport.Project(b.Position); ok {
			r.trails.Record(b.ID, x, y)
		}
	}
	r.trails.Retain(live)

	for _, b := range f.Bodies {
		r.drawTrail(screen, b.ID, bg)
	}
	for _, b := range f.Bodies {
		r.drawBody(screen, b, bg)
	}

	screen.Show()
}

func (r *Renderer) drawTrail(screen tcell.Screen, id physics.BodyID, bg tcell.Style) {
	path := r.trails.Path(id)
	base := r.colors[id]
	for i, c := range path {
		age := 1 - float64(i+1)/float64(len(path)+1)
		style := bg.Foreground(ToTcell(Fade(base, 0.2+0.7*age)))
		screen.SetContent(c.x, c.y, trailRune, nil, style)
	}
}

func (r *Renderer) drawBody(screen tcell.Screen, b sim.BodyState, bg tcell.Style) {
	cx, cy, ok := r.Viewport.Project(b.Position)
	if !ok {
		return
	}
	style := bg.Foreground(ToTcell(r.colors[b.ID]))

	// Bodies smaller than a cell draw as a single glyph
	rc := b.Radius / r.Viewport.Scale
	if rc < 1 {
		screen.SetContent(cx, cy, bodyRune, nil, style)
		return
	}

	rows := rc / CellAspect
	minY, maxY := r.Viewport.HUDRows, r.Viewport.HUDRows+r.Viewport.FieldRows()-1
	for dy := -int(math.Ceil(rows)); dy <= int(math.Ceil(rows)); dy++ {
		for dx := -int(math.Ceil(rc)); dx <= int(math.Ceil(rc)); dx++ {
			nx, ny := float64(dx)/rc, float64(dy)/rows
			if nx*nx+ny*ny > 1 {
				continue
			}
			x, y := cx+dx, cy+dy
			if x < 0 || x >= r.Viewport.Cols || y < minY || y > maxY {
				continue
			}
			screen.SetContent(x, y, discRune, nil, style)
		}
	}
}

func (r *Renderer) drawWalls(screen tcell.Screen, bg tcell.Style) {
	vp := r.Viewport
	if vp.FieldRows() == 0 || vp.Cols == 0 {
		return
	}
	style := bg.Foreground(ToTcell(Fade(colorful.Color{R: 1, G: 1, B: 1}, 0.75)))
	top, bottom := vp.HUDRows, vp.HUDRows+vp.FieldRows()-1
	for x := 0; x < vp.Cols; x++ {
		screen.SetContent(x, top, wallRune, nil, style)
		screen.SetContent(x, bottom, wallRune, nil, style)
	}
	for y := top; y <= bottom; y++ {
		screen.SetContent(0, y, wallRune, nil, style)
		screen.SetContent(vp.Cols-1, y, wallRune, nil, style)
	}
}

func (r *Renderer) drawHUD(screen tcell.Screen, f Frame, bg tcell.Style) {
	if r.Viewport.HUDRows == 0 {
		return
	}
	style := bg.Foreground(tcell.ColorWhite)
	dim := bg.Foreground(tcell.ColorGray)

	x := 0
	for _, m := range f.Metrics {
		x = drawText(screen, x, 0, m.Key+"=", dim)
		x = drawText(screen, x, 0, m.Value+"  ", style)
	}

	line := fmt.Sprintf("bodies:%d", len(f.Bodies))
	if f.Paused {
		line += "  [PAUSED]"
	}
	if f.Message != "" {
		line += "  " + f.Message
	}
	if r.Viewport.HUDRows > 1 {
		drawText(screen, 0, 1, line, style)
	}
}

// drawText writes s at (x, y) and returns the column after it
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
