package play

import "github.com/lixenwraith/simon/game"

// Outcome summarises a finished round
type Outcome struct {
	Won bool
	// State is the engine state the round finished in
	State game.State
	// Length is the sequence length when the round ended
	Length int
	// Turns counts completed playback phases
	Turns int
}

// Observer receives play loop events; implementations must not block
type Observer interface {
	RoundStarted(length int)
	StepShown(index int, m game.Move)
	AnswerGiven(index int, answer game.Move, correct bool)
	RoundEnded(o Outcome)
}

// Observers fans events out to every member
type Observers []Observer

func (obs Observers) RoundStarted(length int) {
	for _, o := range obs {
		o.RoundStarted(length)
	}
}

func (obs Observers) StepShown(index int, m game.Move) {
	for _, o := range obs {
		o.StepShown(index, m)
	}
}

func (obs Observers) AnswerGiven(index int, answer game.Move, correct bool) {
	for _, o := range obs {
		o.AnswerGiven(index, answer, correct)
	}
}

func (obs Observers) RoundEnded(out Outcome) {
	for _, o := range obs {
		o.RoundEnded(out)
	}
}

// NopObserver ignores all events
type NopObserver struct{}

func (NopObserver) RoundStarted(int)                 {}
func (NopObserver) StepShown(int, game.Move)         {}
func (NopObserver) AnswerGiven(int, game.Move, bool) {}
func (NopObserver) RoundEnded(Outcome)               {}
