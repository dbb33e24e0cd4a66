package board

import (
	"time"

	"github.com/lixenwraith/simon/buzzer"
	"github.com/lixenwraith/simon/game"
)

// Color names the LED/button pair of a slot
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
)

// Slot is the indicator and tone for one move
type Slot struct {
	Color Color
	Hz    int
}

// Mapping is indexed by game.Move
var Mapping = [game.MoveCount]Slot{
	game.MoveRed:    {Color: ColorRed, Hz: 440},
	game.MoveGreen:  {Color: ColorGreen, Hz: 880},
	game.MoveBlue:   {Color: ColorBlue, Hz: 330},
	game.MoveYellow: {Color: ColorYellow, Hz: 660},
}

// Priority is the order buttons are checked in; the first one high wins
var Priority = [game.MoveCount]game.Move{
	game.MoveRed,
	game.MoveGreen,
	game.MoveBlue,
	game.MoveYellow,
}

const (
	// ToneDuration is how long each slot sounds during playback and feedback
	ToneDuration = 250 * time.Millisecond

	LossHz       = 187
	LossDuration = 500 * time.Millisecond

	BlinkCount  = 3
	BlinkPeriod = 250 * time.Millisecond
)

// Fanfare is the win melody: C4 E4 G4 C5
var Fanfare = []buzzer.Note{
	{Hz: 262, Duration: 125 * time.Millisecond},
	{Hz: 330, Duration: 125 * time.Millisecond},
	{Hz: 392, Duration: 250 * time.Millisecond},
	{Hz: 523, Duration: 500 * time.Millisecond},
}

// SlotFor returns the slot of m
func SlotFor(m game.Move) (Slot, bool) {
	if !m.Valid() {
		return Slot{}, false
	}
	return Mapping[m], true
}
