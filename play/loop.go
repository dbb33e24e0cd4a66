// Package play runs Simon Says rounds: playback, input, growth, win or loss
package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/simon/board"
	"github.com/lixenwraith/simon/game"
)

const (
	// StepGap is the pause after each step of playback
	StepGap = 250 * time.Millisecond
	// GrowPause is the pause after appending a step
	GrowPause = 250 * time.Millisecond
)

// Board is the set of device effects the loop needs
type Board interface {
	Show(m game.Move, d time.Duration) error
	WaitPress(ctx context.Context) (game.Move, error)
	Lose() error
	Celebrate() error
	Sleep(d time.Duration)
}

var _ Board = (*board.Board)(nil)

// Loop drives the engine against a board
type Loop struct {
	engine   *game.Engine
	board    Board
	observer Observer
	logger   *slog.Logger
	grow     func() game.Move
}

// Option configures a Loop
type Option func(*Loop)

// WithObserver replaces the no-op observer
func WithObserver(o Observer) Option {
	return func(l *Loop) {
		l.observer = o
	}
}

// WithLogger sets the loop logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithGrowth overrides the step appended after a correct turn
func WithGrowth(next func() game.Move) Option {
	return func(l *Loop) {
		l.grow = next
	}
}

// New creates a loop; by default it appends game.FillerStep after each correct turn
func New(engine *game.Engine, b Board, opts ...Option) *Loop {
	l := &Loop{
		engine:   engine,
		board:    b,
		observer: NopObserver{},
		logger:   slog.New(slog.DiscardHandler),
		grow:     func() game.Move { return game.FillerStep },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run plays rounds until ctx is cancelled or an effect fails.
// Cancellation returns nil; any other error is fatal for the caller.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if _, err := l.RunRound(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// RunRound plays one round from a fresh sequence to a win or a loss
func (l *Loop) RunRound(ctx context.Context) (Outcome, error) {
	l.engine.NewRound()
	l.observer.RoundStarted(l.engine.Length())
	l.logger.Debug("initial sequence", "moves", l.engine.Sequence())

	turns := 0
	for l.engine.CanContinue() {
		if err := l.playback(); err != nil {
			return Outcome{}, err
		}
		turns++

		if err := l.collect(ctx); err != nil {
			return Outcome{}, err
		}

		if l.engine.Lost() {
			break
		}
		if err := l.engine.AppendStep(l.grow()); err != nil {
			return Outcome{}, fmt.Errorf("grow sequence: %w", err)
		}
		l.board.Sleep(GrowPause)
	}

	out := Outcome{
		Won:    l.engine.ShouldCelebrate(),
		State:  l.engine.State(),
		Length: l.engine.Length(),
		Turns:  turns,
	}
	if out.Won {
		if err := l.board.Celebrate(); err != nil {
			return out, fmt.Errorf("celebrate: %w", err)
		}
	}

	l.observer.RoundEnded(out)
	return out, nil
}

// playback shows every step of the current sequence
func (l *Loop) playback() error {
	for i := range l.engine.Length() {
		m, err := l.engine.StepAt(i)
		if err != nil {
			return err
		}
		if err := l.board.Show(m, board.ToneDuration); err != nil {
			return fmt.Errorf("playback step %d: %w", i, err)
		}
		l.observer.StepShown(i, m)
		l.board.Sleep(StepGap)
	}
	return nil
}

// collect reads one answer per step and stops at the first wrong one
func (l *Loop) collect(ctx context.Context) error {
	for i := range l.engine.Length() {
		answer, err := l.board.WaitPress(ctx)
		if err != nil {
			return err
		}

		ok, err := l.engine.IsAnswerCorrect(i, answer)
		if err != nil {
			return err
		}
		l.observer.AnswerGiven(i, answer, ok)
		if ok {
			continue
		}

		l.logger.Debug("wrong answer", "index", i, "answer", answer)
		if err := l.board.Lose(); err != nil {
			return fmt.Errorf("loss animation: %w", err)
		}
		l.engine.MarkLost()
		return nil
	}
	return nil
}
