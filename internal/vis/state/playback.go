package state

import (
	"math"
	"time"
)

// Playback manages plan playback timing. Time is measured in plan
// steps: at speed 1.0 one step completes per second.
type Playback struct {
	CurrentTime float64 // Current position in steps
	MaxTime     float64 // Plan length in steps
	Speed       float64 // Steps per second multiplier
	Playing     bool    // Whether playback is active
	lastUpdate  time.Time
}

// NewPlayback creates playback state for a plan of the given length.
func NewPlayback(steps int) *Playback {
	return &Playback{
		CurrentTime: 0,
		MaxTime:     float64(steps),
		Speed:       1.0,
		Playing:     false,
		lastUpdate:  time.Now(),
	}
}

// TogglePlay toggles playback on/off.
func (p *Playback) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		// Restart if at end
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Play starts playback.
func (p *Playback) Play() {
	p.Playing = true
	p.lastUpdate = time.Now()
}

// Pause stops playback.
func (p *Playback) Pause() {
	p.Playing = false
}

// Reset returns to the initial state.
func (p *Playback) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves playback by wall time elapsed since the last update.
func (p *Playback) Advance() {
	if !p.Playing {
		return
	}

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.CurrentTime += elapsed * p.Speed

	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime sets the current playback position in steps.
func (p *Playback) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and snaps to the next whole step.
func (p *Playback) StepForward() {
	p.Pause()
	p.SetTime(math.Floor(p.CurrentTime) + 1)
}

// StepBack pauses and snaps to the previous whole step.
func (p *Playback) StepBack() {
	p.Pause()
	p.SetTime(math.Ceil(p.CurrentTime) - 1)
}

// SetSpeed sets the playback speed multiplier.
func (p *Playback) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	p.Speed = speed
}

// Completed returns the number of fully completed steps.
func (p *Playback) Completed() int {
	return int(math.Floor(p.CurrentTime))
}

// Position splits the current time into the step in progress and the
// fraction of it elapsed. At whole steps the fraction is zero.
func (p *Playback) Position() (int, float64) {
	i := math.Floor(p.CurrentTime)
	return int(i), p.CurrentTime - i
}

// Progress returns playback progress as 0-1.
func (p *Playback) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
