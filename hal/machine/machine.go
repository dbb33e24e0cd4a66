//go:build tinygo

// Package machine binds the hal interfaces to TinyGo GPIO and PWM peripherals
package machine

import (
	"fmt"
	"machine"

	"github.com/lixenwraith/simon/hal"
)

// Output configures p as a push-pull output, initially low
func Output(p machine.Pin) hal.OutputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return outputPin(p)
}

type outputPin machine.Pin

func (p outputPin) Set(active bool) { machine.Pin(p).Set(active) }

// Button configures p as an active-high input with the internal pull-down
func Button(p machine.Pin) hal.InputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return inputPin(p)
}

type inputPin machine.Pin

func (p inputPin) Read() bool { return machine.Pin(p).Get() }

// PWMGroup is the subset of a TinyGo PWM peripheral a buzzer needs
type PWMGroup interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetPeriod(period uint64) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// PWM drives a passive buzzer on one channel of a PWM group
type PWM struct {
	group   PWMGroup
	channel uint8
	duty    uint16
}

// NewPWM routes pin to group and starts it silent
func NewPWM(group PWMGroup, pin machine.Pin) (*PWM, error) {
	if err := group.Configure(machine.PWMConfig{}); err != nil {
		return nil, fmt.Errorf("configure pwm: %w", err)
	}
	ch, err := group.Channel(pin)
	if err != nil {
		return nil, fmt.Errorf("pwm channel for pin %d: %w", pin, err)
	}
	group.Set(ch, 0)
	return &PWM{group: group, channel: ch}, nil
}

func (p *PWM) SetFrequency(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("pwm frequency %d Hz", hz)
	}
	if err := p.group.SetPeriod(uint64(1e9 / hz)); err != nil {
		return err
	}
	// Top changes with the period, so the compare value must follow
	p.apply()
	return nil
}

func (p *PWM) SetDuty(level uint16) {
	p.duty = level
	p.apply()
}

func (p *PWM) apply() {
	p.group.Set(p.channel, uint32(uint64(p.group.Top())*uint64(p.duty)/0xffff))
}

// Clock sleeps with the scheduler's timer
type Clock = hal.SystemClock

var _ hal.PWM = (*PWM)(nil)
