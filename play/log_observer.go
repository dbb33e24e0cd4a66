package play

import (
	"log/slog"

	"github.com/lixenwraith/simon/game"
)

// LogObserver writes play events to a structured logger
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) RoundStarted(length int) {
	o.logger.Info("round start", "length", length)
}

func (o *LogObserver) StepShown(index int, m game.Move) {
	o.logger.Debug("step shown", "index", index, "move", m.String())
}

func (o *LogObserver) AnswerGiven(index int, answer game.Move, correct bool) {
	o.logger.Debug("answer", "index", index, "move", answer.String(), "correct", correct)
}

func (o *LogObserver) RoundEnded(out Outcome) {
	o.logger.Info("round end", "state", out.State.String(), "length", out.Length, "turns", out.Turns)
}
