// Package buzzer plays fixed-frequency square-wave tones on a passive buzzer
package buzzer

import (
	"fmt"
	"time"

	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/hal"
)

const (
	// MinFrequency and MaxFrequency bound the audible range the buzzer accepts
	MinFrequency = 32
	MaxFrequency = 2000

	// DutyOn is the duty level used while sounding (of 65535)
	DutyOn uint16 = 1000
)

// Note is a single tone in a melody
type Note struct {
	Hz       int
	Duration time.Duration
}

// Buzzer drives a PWM output and blocks for the length of each tone
type Buzzer struct {
	pwm   hal.PWM
	clock hal.Clock
}

// New creates a buzzer over pwm, sleeping on clock
func New(pwm hal.PWM, clock hal.Clock) *Buzzer {
	return &Buzzer{pwm: pwm, clock: clock}
}

// Validate checks tone parameters without touching the output
func Validate(hz int, d time.Duration) error {
	if hz < MinFrequency || hz > MaxFrequency {
		return fmt.Errorf("tone %d Hz outside [%d,%d]: %w", hz, MinFrequency, MaxFrequency, game.ErrInvalidParameter)
	}
	if d <= 0 {
		return fmt.Errorf("tone duration %v: %w", d, game.ErrInvalidParameter)
	}
	return nil
}

// Play sounds hz for d, then silences the output
func (b *Buzzer) Play(hz int, d time.Duration) error {
	if err := Validate(hz, d); err != nil {
		return err
	}

	if err := b.pwm.SetFrequency(hz); err != nil {
		return fmt.Errorf("buzzer frequency %d: %w", hz, err)
	}
	b.pwm.SetDuty(DutyOn)
	b.clock.Sleep(d)
	b.pwm.SetDuty(0)
	return nil
}

// PlaySequence plays notes back to back, stopping at the first failure
func (b *Buzzer) PlaySequence(notes []Note) error {
	for _, n := range notes {
		if err := b.Play(n.Hz, n.Duration); err != nil {
			return err
		}
	}
	return nil
}
