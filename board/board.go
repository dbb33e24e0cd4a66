// Package board binds the four slots to LEDs, buttons and the buzzer and
// implements the device-level effects: slot display, input scan, win and loss
package board

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/simon/buzzer"
	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/hal"
)

// Wiring lists the LED and button of each slot, indexed by game.Move
type Wiring struct {
	LEDs    [game.MoveCount]hal.OutputPin
	Buttons [game.MoveCount]hal.InputPin
}

// Board performs all device effects for the play loop
type Board struct {
	leds    [game.MoveCount]hal.OutputPin
	buttons [game.MoveCount]hal.InputPin
	buzzer  *buzzer.Buzzer
	clock   hal.Clock

	pollInterval time.Duration
}

// Option configures a Board
type Option func(*Board)

// WithPollInterval sleeps between input scans; zero is a tight loop
func WithPollInterval(d time.Duration) Option {
	return func(b *Board) {
		b.pollInterval = d
	}
}

// New validates the wiring and builds a board
func New(w Wiring, bz *buzzer.Buzzer, clock hal.Clock, opts ...Option) (*Board, error) {
	for i := range game.MoveCount {
		if w.LEDs[i] == nil {
			return nil, fmt.Errorf("board: %s LED not wired: %w", Mapping[i].Color, game.ErrInvalidParameter)
		}
		if w.Buttons[i] == nil {
			return nil, fmt.Errorf("board: %s button not wired: %w", Mapping[i].Color, game.ErrInvalidParameter)
		}
	}
	if bz == nil || clock == nil {
		return nil, fmt.Errorf("board: buzzer and clock required: %w", game.ErrInvalidParameter)
	}

	b := &Board{
		leds:    w.LEDs,
		buttons: w.Buttons,
		buzzer:  bz,
		clock:   clock,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Show lights the slot of m and sounds its tone for d
func (b *Board) Show(m game.Move, d time.Duration) error {
	slot, ok := SlotFor(m)
	if !ok {
		return fmt.Errorf("show move %d: %w", m, game.ErrInvalidParameter)
	}

	led := b.leds[m]
	led.Set(true)
	err := b.buzzer.Play(slot.Hz, d)
	led.Set(false)
	return err
}

// Scan checks the buttons once in priority order and returns the first one high
func (b *Board) Scan() (game.Move, bool) {
	for _, m := range Priority {
		if b.buttons[m].Read() {
			return m, true
		}
	}
	return 0, false
}

// WaitPress polls until a button reads high, then echoes its slot as feedback.
// There is no timeout; only ctx cancellation stops the wait.
func (b *Board) WaitPress(ctx context.Context) (game.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if m, ok := b.Scan(); ok {
			if err := b.Show(m, ToneDuration); err != nil {
				return m, err
			}
			return m, nil
		}
		if b.pollInterval > 0 {
			b.clock.Sleep(b.pollInterval)
		}
	}
}

// SetAll drives every LED to the same level
func (b *Board) SetAll(active bool) {
	for _, led := range b.leds {
		led.Set(active)
	}
}

// Lose flashes every LED over the low loss tone
func (b *Board) Lose() error {
	b.SetAll(true)
	err := b.buzzer.Play(LossHz, LossDuration)
	b.SetAll(false)
	return err
}

// Celebrate plays the fanfare then blinks every LED
func (b *Board) Celebrate() error {
	if err := b.buzzer.PlaySequence(Fanfare); err != nil {
		return err
	}
	for range BlinkCount {
		b.SetAll(true)
		b.clock.Sleep(BlinkPeriod)
		b.SetAll(false)
		b.clock.Sleep(BlinkPeriod)
	}
	return nil
}

// Sleep blocks on the board clock
func (b *Board) Sleep(d time.Duration) {
	b.clock.Sleep(d)
}
