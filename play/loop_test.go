package play

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/simon/board"
	"github.com/lixenwraith/simon/buzzer"
	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/hal/haltest"
)

// scriptRand returns queued values modulo n
type scriptRand struct {
	vals []int
}

func (r *scriptRand) IntN(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v % n
}

// recorder collects observer events
type recorder struct {
	started []int
	shown   []game.Move
	answers []bool
	ended   []Outcome
}

func (r *recorder) RoundStarted(length int)                 { r.started = append(r.started, length) }
func (r *recorder) StepShown(_ int, m game.Move)            { r.shown = append(r.shown, m) }
func (r *recorder) AnswerGiven(_ int, _ game.Move, ok bool) { r.answers = append(r.answers, ok) }
func (r *recorder) RoundEnded(o Outcome)                    { r.ended = append(r.ended, o) }

type harness struct {
	loop    *Loop
	engine  *game.Engine
	board   *board.Board
	pwm     *haltest.PWM
	leds    []*haltest.Pin
	buttons *haltest.Buttons
	rec     *recorder
	ctx     context.Context
}

// newHarness seeds the first round with initial and scripts the button presses.
// The context is cancelled once the script runs dry.
func newHarness(t *testing.T, initial []int, presses ...int) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := &harness{
		pwm:     &haltest.PWM{},
		leds:    haltest.Pins(game.MoveCount),
		buttons: haltest.NewButtons(presses...),
		rec:     &recorder{},
		ctx:     ctx,
	}
	h.buttons.OnExhausted = cancel

	clock := &haltest.Clock{}
	var w board.Wiring
	for i := range game.MoveCount {
		w.LEDs[i] = h.leds[i]
		w.Buttons[i] = h.buttons.Pin(i)
	}
	b, err := board.New(w, buzzer.New(h.pwm, clock), clock)
	if err != nil {
		t.Fatalf("board.New failed: %v", err)
	}

	h.board = b
	h.engine = game.New(&scriptRand{vals: initial})
	h.loop = New(h.engine, b, WithObserver(h.rec))
	return h
}

// TestCorrectTurnGrowsByFiller verifies answers [0,1,2] against [0,1,2] append filler step 2
func TestCorrectTurnGrowsByFiller(t *testing.T) {
	h := newHarness(t, []int{0, 1, 2}, 0, 1, 2)

	_, err := h.loop.RunRound(h.ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected round to stop on exhausted input, got %v", err)
	}

	if h.engine.Length() != 4 {
		t.Errorf("Expected length 4, got %d", h.engine.Length())
	}
	if last, _ := h.engine.StepAt(3); last != game.MoveBlue {
		t.Errorf("Expected filler step blue (2), got %s", last)
	}
	if h.engine.Lost() {
		t.Error("Expected lost=false")
	}

	// Second playback covered all four steps before input stalled
	wantShown := []game.Move{0, 1, 2, 0, 1, 2, 2}
	if !slices.Equal(h.rec.shown, wantShown) {
		t.Errorf("Expected playback %v, got %v", wantShown, h.rec.shown)
	}
}

// TestWrongAnswerLoses verifies a wrong third answer ends the round without celebration
func TestWrongAnswerLoses(t *testing.T) {
	h := newHarness(t, []int{0, 1, 2}, 0, 1, 3)

	out, err := h.loop.RunRound(h.ctx)
	if err != nil {
		t.Fatalf("RunRound failed: %v", err)
	}

	if out.Won || out.State != game.StateLost {
		t.Errorf("Expected loss outcome, got %+v", out)
	}
	if !h.engine.Lost() || h.engine.CanContinue() {
		t.Error("Expected engine lost and unable to continue")
	}
	if h.engine.Length() != 3 {
		t.Errorf("Expected no growth after loss, got length %d", h.engine.Length())
	}

	freqs := h.pwm.Frequencies()
	if freqs[len(freqs)-1] != board.LossHz {
		t.Errorf("Expected loss tone last, got %v", freqs)
	}
	for _, f := range board.Fanfare {
		if f.Hz != 330 && slices.Contains(freqs, f.Hz) {
			t.Errorf("Unexpected fanfare note %d Hz after loss", f.Hz)
		}
	}
	if !slices.Equal(h.rec.answers, []bool{true, true, false}) {
		t.Errorf("Expected answers [true true false], got %v", h.rec.answers)
	}
	if len(h.rec.ended) != 1 || h.rec.ended[0].Won {
		t.Errorf("Expected one lost RoundEnded event, got %+v", h.rec.ended)
	}
}

// TestEarlyWrongAnswerSkipsRest verifies the input phase aborts at the first wrong answer
func TestEarlyWrongAnswerSkipsRest(t *testing.T) {
	h := newHarness(t, []int{3, 3, 3}, 0, 3, 3)

	out, err := h.loop.RunRound(h.ctx)
	if err != nil {
		t.Fatalf("RunRound failed: %v", err)
	}
	if out.Won || out.Turns != 1 {
		t.Errorf("Expected loss after one turn, got %+v", out)
	}
	if h.buttons.Remaining() != 2 {
		t.Errorf("Expected two presses left unread, got %d", h.buttons.Remaining())
	}
}

// TestFullRoundWins verifies answering every turn up to the cap celebrates
func TestFullRoundWins(t *testing.T) {
	var presses []int
	for length := game.InitialLength; length <= game.MaxLength; length++ {
		presses = append(presses, 0, 1, 2)
		for range length - game.InitialLength {
			presses = append(presses, int(game.FillerStep))
		}
	}
	h := newHarness(t, []int{0, 1, 2}, presses...)

	out, err := h.loop.RunRound(h.ctx)
	if err != nil {
		t.Fatalf("RunRound failed: %v", err)
	}

	if !out.Won || out.State != game.StateWon {
		t.Errorf("Expected win, got %+v", out)
	}
	if out.Length != game.MaxLength+1 {
		t.Errorf("Expected final length %d, got %d", game.MaxLength+1, out.Length)
	}
	if out.Turns != game.MaxLength-game.InitialLength+1 {
		t.Errorf("Expected %d turns, got %d", game.MaxLength-game.InitialLength+1, out.Turns)
	}

	freqs := h.pwm.Frequencies()
	tail := freqs[len(freqs)-len(board.Fanfare):]
	if !slices.Equal(tail, []int{262, 330, 392, 523}) {
		t.Errorf("Expected fanfare at end, got %v", tail)
	}
	for i, led := range h.leds {
		if led.State() {
			t.Errorf("LED %d left on after celebration", i)
		}
	}
}

// TestRunStopsOnCancel verifies Run treats cancellation as a clean exit
func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, []int{1, 1, 1}, 0, 2)

	if err := h.loop.Run(h.ctx); err != nil {
		t.Fatalf("Expected nil error on cancel, got %v", err)
	}
	// Rounds one and two are lost on their first press; round three stalls on empty input
	if len(h.rec.started) != 3 {
		t.Errorf("Expected three rounds started, got %d", len(h.rec.started))
	}
	if len(h.rec.ended) != 2 {
		t.Errorf("Expected two rounds ended, got %d", len(h.rec.ended))
	}
	for _, l := range h.rec.started {
		if l != game.InitialLength {
			t.Errorf("Expected every round to start at length %d, got %d", game.InitialLength, l)
		}
	}
}

// TestWithGrowth verifies a custom growth source is appended
func TestWithGrowth(t *testing.T) {
	h := newHarness(t, []int{0, 0, 0}, 0, 0, 0)
	h.loop = New(h.engine, h.loop.board, WithGrowth(func() game.Move { return game.MoveYellow }))

	h.loop.RunRound(h.ctx)

	if last, _ := h.engine.StepAt(3); last != game.MoveYellow {
		t.Errorf("Expected custom growth yellow, got %s", last)
	}
}

// failingBoard fails the first Show
type failingBoard struct{}

func (failingBoard) Show(game.Move, time.Duration) error {
	return game.ErrInvalidParameter
}

func (failingBoard) WaitPress(context.Context) (game.Move, error) {
	return 0, nil
}

func (failingBoard) Lose() error         { return nil }
func (failingBoard) Celebrate() error    { return nil }
func (failingBoard) Sleep(time.Duration) {}

// TestRunReturnsEffectErrors verifies device failures are fatal
func TestRunReturnsEffectErrors(t *testing.T) {
	l := New(game.New(game.NewXorShift(1)), failingBoard{})
	err := l.Run(context.Background())
	if !errors.Is(err, game.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

// TestRoundEndLoggedOnce verifies the loop logger and the log observer do not repeat the round summary
func TestRoundEndLoggedOnce(t *testing.T) {
	h := newHarness(t, []int{0, 1, 2}, 0, 1, 3)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h.loop = New(h.engine, h.board, WithLogger(logger), WithObserver(Observers{h.rec, NewLogObserver(logger)}))

	if _, err := h.loop.RunRound(h.ctx); err != nil {
		t.Fatalf("RunRound failed: %v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "round end"); n != 1 {
		t.Errorf("Expected one round summary, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "state=lost") {
		t.Errorf("Expected final state in summary, got:\n%s", out)
	}
}
