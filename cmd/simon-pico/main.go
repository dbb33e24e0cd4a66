//go:build tinygo

// Command simon-pico runs the game on a Raspberry Pi Pico with four LEDs, four buttons and a passive buzzer
package main

import (
	"context"
	"machine"
	"time"

	"github.com/lixenwraith/simon/board"
	"github.com/lixenwraith/simon/buzzer"
	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/hal"
	hw "github.com/lixenwraith/simon/hal/machine"
	"github.com/lixenwraith/simon/play"
)

const (
	ledRed    = machine.GPIO12
	ledGreen  = machine.GPIO13
	ledBlue   = machine.GPIO19
	ledYellow = machine.GPIO18

	buttonRed    = machine.GPIO15
	buttonGreen  = machine.GPIO14
	buttonBlue   = machine.GPIO17
	buttonYellow = machine.GPIO16

	buzzerPin = machine.GPIO20
)

func main() {
	pwm, err := hw.NewPWM(machine.PWM2, buzzerPin)
	if err != nil {
		panic(err)
	}
	clock := hw.Clock{}

	b, err := board.New(board.Wiring{
		LEDs: [game.MoveCount]hal.OutputPin{
			hw.Output(ledRed), hw.Output(ledGreen), hw.Output(ledBlue), hw.Output(ledYellow),
		},
		Buttons: [game.MoveCount]hal.InputPin{
			hw.Button(buttonRed), hw.Button(buttonGreen), hw.Button(buttonBlue), hw.Button(buttonYellow),
		},
	}, buzzer.New(pwm, clock), clock)
	if err != nil {
		panic(err)
	}

	loop := play.New(game.New(game.NewXorShift(uint64(time.Now().UnixNano()))), b,
		play.WithObserver(serialObserver{}))

	println("simon: ready")
	if err := loop.Run(context.Background()); err != nil {
		panic(err)
	}
}

// serialObserver reports rounds over the USB serial console
type serialObserver struct {
	play.NopObserver
}

func (serialObserver) RoundEnded(o play.Outcome) {
	if o.Won {
		println("simon: won at length", o.Length)
		return
	}
	println("simon: lost at length", o.Length, "after", o.Turns, "turns")
}
