package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	impactDuration = 90 * time.Millisecond
	impactAttack   = 3 * time.Millisecond
	impactBaseFreq = 180.0
	impactFreqSpan = 660.0
)

// axisDetune offsets pitch per wall axis so X, Y and Z walls are distinguishable
var axisDetune = [3]float64{1.0, 1.25, 1.5}

// envelope applies a linear attack followed by exponential decay
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
	decay         float64 // per-sample multiplier after attack
	level         float64
}

func newEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	release := max(total-att, 1)
	return &envelope{
		streamer:      s,
		attackSamples: att,
		totalSamples:  total,
		// Decays to ~-60dB by the end of the voice
		decay: math.Pow(0.001, 1/float64(release)),
		level: 1,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if rem := e.totalSamples - e.position; len(samples) > rem {
		samples = samples[:rem]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else {
			vol = e.level
			e.level *= e.decay
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain, gain <= 0 is silent
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// impactLevel maps speed to 0..1 on a square-root curve against the reference speed
func impactLevel(speed, reference float64) float64 {
	if !(speed > 0) || !(reference > 0) {
		return 0
	}
	return min(math.Sqrt(speed/reference), 1)
}

// ImpactSound builds a short percussive tone for a wall contact
// Faster impacts play louder and higher
func ImpactSound(cfg *Config, speed float64, axis int) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	level := impactLevel(speed, cfg.ReferenceSpeed)

	freq := (impactBaseFreq + impactFreqSpan*level) * axisDetune[axis%3]
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}

	voice := newEnvelope(tone, impactDuration, impactAttack, rate)
	return newVolume(voice, level*cfg.MasterVolume), nil
}
