// Package sim renders the game board in a terminal.
// LEDs are colored panels, keyboard keys act as the buttons.
package sim

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/hal"
	"github.com/lixenwraith/simon/play"
)

// ColorMode selects the panel palette
type ColorMode uint8

const (
	ColorMode256 ColorMode = iota
	ColorModeTrueColor
)

// Status is the text shown under the board
type Status struct {
	Round    int
	Length   int
	Answered int
	Best     int
	Wins     int
	Losses   int
	Message  string
}

// Terminal is a four-panel board on a tcell screen.
// Key presses latch a button; the first Read of a latched button consumes it.
// Any LED change other than the echo of a consumed press drops pending latches,
// so keys hit during playback, loss or win effects never count as answers.
type Terminal struct {
	screen tcell.Screen
	keys   KeyMap
	mode   ColorMode

	mu      sync.Mutex
	lit     [game.MoveCount]bool
	pressed [game.MoveCount]bool
	echo    bool
	status  Status

	quit     chan struct{}
	quitOnce sync.Once
}

// New wraps an initialized screen
func New(screen tcell.Screen, keys KeyMap, mode ColorMode) *Terminal {
	if keys == nil {
		keys = DefaultKeys()
	}
	return &Terminal{
		screen: screen,
		keys:   keys,
		mode:   mode,
		status: Status{Message: "get ready"},
		quit:   make(chan struct{}),
	}
}

// LED returns the output pin of slot m
func (t *Terminal) LED(m game.Move) hal.OutputPin {
	return hal.PinFunc(func(active bool) {
		t.mu.Lock()
		defer t.mu.Unlock()
		switch {
		case !t.echo:
			t.pressed = [game.MoveCount]bool{}
		case !active:
			// Echo ends when its LED goes dark
			t.echo = false
		}
		if t.lit[m] == active {
			return
		}
		t.lit[m] = active
		t.draw()
	})
}

// Button returns the input pin of slot m
func (t *Terminal) Button(m game.Move) hal.InputPin {
	return hal.ReadFunc(func() bool {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.pressed[m] {
			t.pressed[m] = false
			t.echo = true
			return true
		}
		return false
	})
}

// Press latches button m as if its key were hit
func (t *Terminal) Press(m game.Move) {
	if !m.Valid() {
		return
	}
	t.mu.Lock()
	t.pressed[m] = true
	t.mu.Unlock()
}

// Quit is closed when the player asks to exit
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

// Run handles terminal events until the player quits or the screen is finalized
func (t *Terminal) Run() {
	t.Redraw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if !t.HandleEvent(ev) {
			t.quitOnce.Do(func() { close(t.quit) })
			return
		}
	}
}

// HandleEvent applies one terminal event, returning false on a quit request
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			if m, ok := t.keys[ev.Rune()]; ok {
				t.Press(m)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.Redraw()
	}
	return true
}

// Redraw repaints the whole board
func (t *Terminal) Redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draw()
}

// Snapshot returns the current LED levels and status
func (t *Terminal) Snapshot() ([game.MoveCount]bool, Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lit, t.status
}

func (t *Terminal) updateStatus(fn func(*Status)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.status)
	t.draw()
}

func (t *Terminal) RoundStarted(length int) {
	t.updateStatus(func(s *Status) {
		s.Round++
		s.Length = length
		s.Answered = 0
		s.Message = "watch"
	})
}

func (t *Terminal) StepShown(index int, _ game.Move) {
	t.updateStatus(func(s *Status) {
		s.Answered = 0
		if index == s.Length-1 {
			s.Message = "your turn"
		}
	})
}

func (t *Terminal) AnswerGiven(index int, _ game.Move, correct bool) {
	t.updateStatus(func(s *Status) {
		if !correct {
			s.Message = "wrong"
			return
		}
		s.Answered = index + 1
		if s.Answered == s.Length {
			s.Length++
			s.Message = "correct, watch"
		}
	})
}

func (t *Terminal) RoundEnded(o play.Outcome) {
	t.updateStatus(func(s *Status) {
		s.Length = o.Length
		if o.Won {
			s.Wins++
			s.Message = "you win"
		} else {
			s.Losses++
			s.Message = fmt.Sprintf("game over at length %d", o.Length)
		}
		if o.Length > s.Best {
			s.Best = o.Length
		}
	})
}

var _ play.Observer = (*Terminal)(nil)
