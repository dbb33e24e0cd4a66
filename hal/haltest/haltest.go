// Package haltest provides recording and scripted hal implementations for tests
package haltest

import (
	"fmt"
	"sync"
	"time"
)

// Pin records every level written to it
type Pin struct {
	mu      sync.Mutex
	state   bool
	history []bool
}

func (p *Pin) Set(active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = active
	p.history = append(p.history, active)
}

// State returns the last written level
func (p *Pin) State() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// History returns a copy of all writes in order
func (p *Pin) History() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]bool, len(p.history))
	copy(out, p.history)
	return out
}

// Pulses counts rising edges
func (p *Pin) Pulses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	prev := false
	for _, v := range p.history {
		if v && !prev {
			n++
		}
		prev = v
	}
	return n
}

// Pins returns n fresh recording pins
func Pins(n int) []*Pin {
	out := make([]*Pin, n)
	for i := range out {
		out[i] = &Pin{}
	}
	return out
}

// Tone is one SetFrequency/SetDuty pairing seen by PWM
type Tone struct {
	Hz   int
	Duty uint16
}

// PWM records frequency and duty writes
type PWM struct {
	mu    sync.Mutex
	hz    int
	tones []Tone
	duty  uint16
	// FailAbove makes SetFrequency fail for frequencies above it when non-zero
	FailAbove int
}

func (p *PWM) SetFrequency(hz int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailAbove > 0 && hz > p.FailAbove {
		return fmt.Errorf("pwm: frequency %d unsupported", hz)
	}
	p.hz = hz
	return nil
}

func (p *PWM) SetDuty(level uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.duty = level
	if level > 0 {
		p.tones = append(p.tones, Tone{Hz: p.hz, Duty: level})
	}
}

// Duty returns the current duty level
func (p *PWM) Duty() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

// Tones returns every sounded tone in order
func (p *PWM) Tones() []Tone {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Tone, len(p.tones))
	copy(out, p.tones)
	return out
}

// Frequencies returns the Hz of every sounded tone in order
func (p *PWM) Frequencies() []int {
	tones := p.Tones()
	out := make([]int, len(tones))
	for i, t := range tones {
		out[i] = t.Hz
	}
	return out
}

// Clock records sleeps without blocking
type Clock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
}

// Sleeps returns all recorded delays
func (c *Clock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// Total returns the sum of recorded delays
func (c *Clock) Total() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps() {
		total += d
	}
	return total
}

// Buttons replays a script of presses across a bank of input pins.
// The pin at the head of the script reads high once, then the script advances.
// When the script runs out, OnExhausted is called once and all pins stay low.
type Buttons struct {
	mu          sync.Mutex
	script      []int
	exhausted   bool
	OnExhausted func()
}

// NewButtons creates a script; each entry is a pin index
func NewButtons(presses ...int) *Buttons {
	return &Buttons{script: presses}
}

// Pin returns the input pin for index i
func (b *Buttons) Pin(i int) *ButtonPin {
	return &ButtonPin{bank: b, index: i}
}

// Remaining returns the number of unconsumed presses
func (b *Buttons) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.script)
}

func (b *Buttons) read(i int) bool {
	b.mu.Lock()
	if len(b.script) == 0 {
		notify := !b.exhausted && b.OnExhausted != nil
		b.exhausted = true
		b.mu.Unlock()
		if notify {
			b.OnExhausted()
		}
		return false
	}
	hit := b.script[0] == i
	if hit {
		b.script = b.script[1:]
	}
	b.mu.Unlock()
	return hit
}

// ButtonPin is one input of a Buttons bank
type ButtonPin struct {
	bank  *Buttons
	index int
}

func (p *ButtonPin) Read() bool {
	return p.bank.read(p.index)
}

// Level is an input pin with a settable level
type Level struct {
	mu sync.Mutex
	v  bool
}

func (l *Level) Read() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.v
}

// Drive sets the level returned by Read
func (l *Level) Drive(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.v = v
}
