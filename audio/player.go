package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-gravity/physics"
)

// Player sounds wall contacts through the system speaker
// One voice per tick at most: the fastest contact of the batch
type Player struct {
	mu      sync.Mutex
	cfg     *Config
	mixer   *beep.Mixer
	started bool

	muted  atomic.Bool
	voices atomic.Int32

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates a stopped player; nil cfg uses DefaultConfig
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Start opens the speaker and begins mixing
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Stop silences all voices and closes the speaker
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	p.voices.Store(0)
	p.started = false
}

// OnWallContacts plays the strongest contact of a tick
func (p *Player) OnWallContacts(contacts []physics.WallContact) {
	c, ok := loudest(contacts, p.cfg.MinImpactSpeed)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.muted.Load() || int(p.voices.Load()) >= p.cfg.MaxVoices {
		p.dropped.Add(1)
		return
	}

	voice, err := ImpactSound(p.cfg, c.Speed, c.Axis)
	if err != nil {
		p.dropped.Add(1)
		return
	}

	p.voices.Add(1)
	done := beep.Callback(func() { p.voices.Add(-1) })

	speaker.Lock()
	p.mixer.Add(beep.Seq(voice, done))
	speaker.Unlock()
	p.played.Add(1)
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (p *Player) IsMuted() bool { return p.muted.Load() }

// Stats returns played and dropped voice counts
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// loudest picks the fastest contact at or above threshold
func loudest(contacts []physics.WallContact, threshold float64) (physics.WallContact, bool) {
	var best physics.WallContact
	found := false
	for _, c := range contacts {
		if c.Speed < threshold {
			continue
		}
		if !found || c.Speed > best.Speed {
			best = c
			found = true
		}
	}
	return best, found
}
