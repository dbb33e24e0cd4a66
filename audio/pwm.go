package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
)

// PWM emulates a passive buzzer on a PWM pin.
// Any non-zero duty gates a square wave at the current frequency; loudness follows the master volume.
type PWM struct {
	out    Output
	volume float64

	mu   sync.Mutex
	hz   int
	duty uint16
	osc  *square
	ctrl *beep.Ctrl
}

// NewPWM creates a buzzer emulation playing through out
func NewPWM(out Output, volume float64) *PWM {
	return &PWM{out: out, volume: volume, hz: 440}
}

func (p *PWM) SetFrequency(hz int) error {
	if hz <= 0 || hz > int(p.out.SampleRate())/2 {
		return fmt.Errorf("audio: frequency %d Hz not reproducible at %d Hz sample rate", hz, p.out.SampleRate())
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.hz = hz
	if p.osc != nil {
		p.out.Lock()
		p.osc.freq = float64(hz)
		p.out.Unlock()
	}
	return nil
}

func (p *PWM) SetDuty(level uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.duty = level

	if level == 0 {
		if p.ctrl != nil {
			// A Ctrl with a nil streamer drains out of the mixer
			p.out.Lock()
			p.ctrl.Streamer = nil
			p.out.Unlock()
			p.ctrl = nil
			p.osc = nil
		}
		return
	}

	if p.ctrl != nil {
		return
	}
	p.osc = newSquare(p.out.SampleRate(), float64(p.hz))
	p.ctrl = &beep.Ctrl{Streamer: newVolume(p.osc, p.volume)}
	p.out.Play(p.ctrl)
}

// Sounding reports whether a tone is currently gated on
func (p *PWM) Sounding() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

// Frequency returns the last accepted frequency
func (p *PWM) Frequency() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hz
}
