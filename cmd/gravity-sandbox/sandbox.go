package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/render"
	"github.com/lixenwraith/vi-gravity/sim"
	"github.com/lixenwraith/vi-gravity/status"
)

const (
	hudRows     = 2
	trailLength = 24

	gravityFactor    = 1.25
	elasticityStep   = 0.05
	messageRetention = 2 * time.Second
)

// muter is the slice of the audio player the sandbox drives from keys
type muter interface {
	ToggleMute() bool
}

// sandbox binds one simulation to a terminal screen
type sandbox struct {
	screen   tcell.Screen
	sim      *sim.Simulation
	metrics  *status.Registry
	renderer *render.Renderer
	audio    muter

	frame  time.Duration
	paused bool

	message     string
	messageTime time.Time
}

func newSandbox(screen tcell.Screen, s *sim.Simulation, metrics *status.Registry, scale float64, frame time.Duration) *sandbox {
	cols, rows := screen.Size()
	return &sandbox{
		screen:  screen,
		sim:     s,
		metrics: metrics,
		renderer: render.NewRenderer(render.Viewport{
			Cols:    cols,
			Rows:    rows,
			HUDRows: hudRows,
			Scale:   scale,
		}, trailLength),
		frame: frame,
	}
}

func (sb *sandbox) notify(format string, args ...any) {
	sb.message = fmt.Sprintf(format, args...)
	sb.messageTime = time.Now()
}

// handleEvent applies one terminal event, returns false to quit
func (sb *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return sb.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		sb.renderer.Resize(cols, rows)
		sb.screen.Sync()
	}
	return true
}

func (sb *sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		sb.paused = !sb.paused
	case 'n':
		if sb.paused {
			sb.step(sb.frame)
		}
	case 'r':
		sb.reset()
	case 'g':
		sb.sim.SetGravitationalConstant(sb.sim.GravitationalConstant() * gravityFactor)
		sb.notify("G %.4g", sb.sim.GravitationalConstant())
	case 'G':
		sb.sim.SetGravitationalConstant(sb.sim.GravitationalConstant() / gravityFactor)
		sb.notify("G %.4g", sb.sim.GravitationalConstant())
	case 'e':
		sb.sim.SetWallElasticity(min(sb.sim.WallElasticity()+elasticityStep, 1))
		sb.notify("elasticity %.2f", sb.sim.WallElasticity())
	case 'E':
		sb.sim.SetWallElasticity(max(sb.sim.WallElasticity()-elasticityStep, 0))
		sb.notify("elasticity %.2f", sb.sim.WallElasticity())
	case 'm':
		if sb.audio != nil {
			if sb.audio.ToggleMute() {
				sb.notify("muted")
			} else {
				sb.notify("sound on")
			}
		}
	}
	return true
}

func (sb *sandbox) reset() {
	if err := sb.sim.Reset(); err != nil {
		log.Printf("reset: %v", err)
	}
	sb.renderer.Reset()
	sb.notify("reset")
}

// step advances one tick against the current viewport; a failed tick pauses the sandbox
func (sb *sandbox) step(elapsed time.Duration) {
	_, err := sb.sim.Tick(elapsed, sb.renderer.Viewport.Bounds())
	if err == nil {
		return
	}

	log.Printf("tick: %v", err)
	sb.paused = true
	if errors.Is(err, physics.ErrDegenerateConfiguration) {
		sb.notify("bodies collided, press r to reset")
	} else {
		sb.notify("tick failed: %v", err)
	}
}

func (sb *sandbox) draw() {
	msg := sb.message
	if msg != "" && time.Since(sb.messageTime) > messageRetention && !sb.paused {
		sb.message, msg = "", ""
	}
	sb.renderer.Draw(sb.screen, render.Frame{
		Bodies:  sb.sim.Bodies(),
		Metrics: sb.metrics.Snapshot(),
		Paused:  sb.paused,
		Message: msg,
	})
}

// run drives ticks from the frame ticker with measured elapsed time until quit
func (sb *sandbox) run() {
	ticker := time.NewTicker(sb.frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	sb.draw()
	for {
		select {
		case ev := <-eventChan:
			if !sb.handleEvent(ev) {
				return
			}
			sb.draw()

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if !sb.paused {
				sb.step(elapsed)
			}
			sb.draw()
		}
	}
}
