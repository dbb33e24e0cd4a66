// Package hal defines the hardware capabilities the game drives.
// Backends (TinyGo machine pins, the terminal simulator, test doubles)
// implement these interfaces; game logic never touches registers or devices.
package hal

import "time"

// OutputPin is a digital output such as an LED
type OutputPin interface {
	Set(active bool)
}

// InputPin is a digital input configured with pull-down bias.
// Read returns true while the line is driven high.
type InputPin interface {
	Read() bool
}

// PWM is a PWM-capable output used to drive a passive buzzer
type PWM interface {
	// SetFrequency changes the carrier frequency in Hz
	SetFrequency(hz int) error
	// SetDuty sets the duty level on a 0-65535 scale, 0 silences the output
	SetDuty(level uint16)
}

// Clock provides the blocking delay primitive
type Clock interface {
	Sleep(d time.Duration)
}

// SystemClock sleeps on the wall clock
type SystemClock struct{}

func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// PinFunc adapts a plain function to OutputPin
type PinFunc func(active bool)

func (f PinFunc) Set(active bool) { f(active) }

// ReadFunc adapts a plain function to InputPin
type ReadFunc func() bool

func (f ReadFunc) Read() bool { return f() }
