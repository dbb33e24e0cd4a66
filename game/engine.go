// Package game holds the pure state of a Simon Says round: the sequence the
// player must repeat and whether the round has been lost. It performs no I/O.
package game

import "fmt"

const (
	// InitialLength is the number of random moves a round starts with
	InitialLength = 3
	// MaxLength is the longest sequence that still allows another turn
	MaxLength = 15
	// FillerStep is appended after every fully correct turn
	FillerStep = MoveBlue
)

// State is the engine's round state
type State uint8

const (
	StateActive State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Engine owns the sequence for the current round
type Engine struct {
	rng      Rand
	sequence []Move
	lost     bool
}

// New creates an engine drawing moves from rng.
// The engine starts empty; call NewRound before playing.
func New(rng Rand) *Engine {
	return &Engine{
		rng:      rng,
		sequence: make([]Move, 0, MaxLength+1),
	}
}

// NewRound discards the previous round and seeds InitialLength random moves
func (e *Engine) NewRound() {
	e.sequence = e.sequence[:0]
	for range InitialLength {
		e.sequence = append(e.sequence, Move(e.rng.IntN(MoveCount)))
	}
	e.lost = false
}

// AppendStep adds m to the end of the sequence
func (e *Engine) AppendStep(m Move) error {
	if !m.Valid() {
		return fmt.Errorf("append step %d: %w", m, ErrInvalidParameter)
	}
	e.sequence = append(e.sequence, m)
	return nil
}

// Length returns the current sequence length
func (e *Engine) Length() int {
	return len(e.sequence)
}

// StepAt returns the move at index i
func (e *Engine) StepAt(i int) (Move, error) {
	if i < 0 || i >= len(e.sequence) {
		return 0, fmt.Errorf("step %d of %d: %w", i, len(e.sequence), ErrIndexOutOfRange)
	}
	return e.sequence[i], nil
}

// IsAnswerCorrect compares answer with the move at index i
func (e *Engine) IsAnswerCorrect(i int, answer Move) (bool, error) {
	if !answer.Valid() {
		return false, fmt.Errorf("answer %d: %w", answer, ErrInvalidParameter)
	}
	want, err := e.StepAt(i)
	if err != nil {
		return false, err
	}
	return want == answer, nil
}

// CanContinue reports whether another turn should be played
func (e *Engine) CanContinue() bool {
	return !e.lost && len(e.sequence) <= MaxLength
}

// MarkLost ends the round as a loss; repeated calls are harmless
func (e *Engine) MarkLost() {
	e.lost = true
}

// Lost reports whether the round ended in a loss
func (e *Engine) Lost() bool {
	return e.lost
}

// ShouldCelebrate reports whether the finished round earns the win effect
func (e *Engine) ShouldCelebrate() bool {
	return !e.lost
}

// State derives the round state from the sequence and lost flag
func (e *Engine) State() State {
	switch {
	case e.lost:
		return StateLost
	case len(e.sequence) > MaxLength:
		return StateWon
	default:
		return StateActive
	}
}

// Sequence returns a copy of the current moves
func (e *Engine) Sequence() []Move {
	out := make([]Move, len(e.sequence))
	copy(out, e.sequence)
	return out
}

// load replaces the sequence and clears the lost flag; every move must be valid
func (e *Engine) load(moves []Move) error {
	for i, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("load move %d (%d): %w", i, m, ErrInvalidParameter)
		}
	}
	e.sequence = append(e.sequence[:0], moves...)
	e.lost = false
	return nil
}
