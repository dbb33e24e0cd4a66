package game

import (
	"errors"
	"testing"
)

// fixedRand returns queued values, then zeros
type fixedRand struct {
	vals []int
}

func (r *fixedRand) IntN(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v % n
}

func newLoaded(t *testing.T, moves ...Move) *Engine {
	t.Helper()
	e := New(NewXorShift(1))
	if err := e.load(moves); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return e
}

// TestNewRoundResets verifies a new round has three moves and is not lost
func TestNewRoundResets(t *testing.T) {
	e := New(NewXorShift(42))
	e.NewRound()
	for range 5 {
		if err := e.AppendStep(FillerStep); err != nil {
			t.Fatalf("AppendStep failed: %v", err)
		}
	}
	e.MarkLost()

	e.NewRound()

	if e.Length() != InitialLength {
		t.Errorf("Expected length %d after NewRound, got %d", InitialLength, e.Length())
	}
	if e.Lost() {
		t.Error("Expected lost=false after NewRound")
	}
	if !e.CanContinue() {
		t.Error("Expected CanContinue after NewRound")
	}
	if e.State() != StateActive {
		t.Errorf("Expected StateActive, got %s", e.State())
	}
}

// TestNewRoundDrawsFromRand verifies the initial moves come from the random source in order
func TestNewRoundDrawsFromRand(t *testing.T) {
	e := New(&fixedRand{vals: []int{3, 0, 2}})
	e.NewRound()

	want := []Move{MoveYellow, MoveRed, MoveBlue}
	got := e.Sequence()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Move %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// TestNewRoundMovesInRange verifies generated moves stay within the four slots
func TestNewRoundMovesInRange(t *testing.T) {
	e := New(NewXorShift(7))
	seen := make(map[Move]bool)
	for range 200 {
		e.NewRound()
		for _, m := range e.Sequence() {
			if !m.Valid() {
				t.Fatalf("Generated invalid move %d", m)
			}
			seen[m] = true
		}
	}
	if len(seen) != MoveCount {
		t.Errorf("Expected all %d moves to appear over 200 rounds, saw %d", MoveCount, len(seen))
	}
}

// TestAppendStep verifies growth and rejection of invalid moves
func TestAppendStep(t *testing.T) {
	e := newLoaded(t, MoveRed, MoveGreen, MoveBlue)

	if err := e.AppendStep(MoveYellow); err != nil {
		t.Fatalf("AppendStep failed: %v", err)
	}
	if e.Length() != 4 {
		t.Errorf("Expected length 4, got %d", e.Length())
	}

	err := e.AppendStep(Move(4))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
	if e.Length() != 4 {
		t.Errorf("Expected length unchanged after invalid append, got %d", e.Length())
	}
}

// TestStepAtOutOfRange verifies index bounds checking
func TestStepAtOutOfRange(t *testing.T) {
	e := newLoaded(t, MoveRed, MoveGreen, MoveBlue)

	for _, idx := range []int{5, 3, -1} {
		if _, err := e.StepAt(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("StepAt(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}

	m, err := e.StepAt(2)
	if err != nil {
		t.Fatalf("StepAt(2) failed: %v", err)
	}
	if m != MoveBlue {
		t.Errorf("Expected blue at index 2, got %s", m)
	}
}

// TestIsAnswerCorrectMatchesStepAt verifies correctness equals equality with StepAt for every index and answer
func TestIsAnswerCorrectMatchesStepAt(t *testing.T) {
	e := newLoaded(t, MoveYellow, MoveRed, MoveGreen, MoveBlue, MoveRed)

	for i := 0; i < e.Length(); i++ {
		want, _ := e.StepAt(i)
		for a := range Move(MoveCount) {
			ok, err := e.IsAnswerCorrect(i, a)
			if err != nil {
				t.Fatalf("IsAnswerCorrect(%d, %d) failed: %v", i, a, err)
			}
			if ok != (a == want) {
				t.Errorf("IsAnswerCorrect(%d, %s) = %v, expected %v", i, a, ok, a == want)
			}
		}
	}
}

// TestIsAnswerCorrectInvalid verifies parameter and index errors
func TestIsAnswerCorrectInvalid(t *testing.T) {
	e := newLoaded(t, MoveRed, MoveGreen, MoveBlue)

	if _, err := e.IsAnswerCorrect(0, Move(9)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
	if _, err := e.IsAnswerCorrect(3, MoveRed); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

// TestCanContinue verifies the lost flag and length cap
func TestCanContinue(t *testing.T) {
	e := newLoaded(t, MoveRed, MoveGreen, MoveBlue)
	e.MarkLost()
	if e.CanContinue() {
		t.Error("Expected CanContinue=false when lost")
	}
	e.MarkLost()
	if !e.Lost() {
		t.Error("Expected MarkLost to be idempotent")
	}

	e.NewRound()
	for e.Length() < MaxLength {
		if err := e.AppendStep(FillerStep); err != nil {
			t.Fatalf("AppendStep failed: %v", err)
		}
	}
	if !e.CanContinue() {
		t.Errorf("Expected CanContinue=true at length %d", MaxLength)
	}

	if err := e.AppendStep(FillerStep); err != nil {
		t.Fatalf("AppendStep failed: %v", err)
	}
	if e.CanContinue() {
		t.Errorf("Expected CanContinue=false at length %d", e.Length())
	}
	if e.State() != StateWon {
		t.Errorf("Expected StateWon, got %s", e.State())
	}
}

// TestShouldCelebrate verifies a lost round never celebrates
func TestShouldCelebrate(t *testing.T) {
	e := newLoaded(t, MoveRed, MoveGreen, MoveBlue)
	if !e.ShouldCelebrate() {
		t.Error("Expected ShouldCelebrate before loss")
	}
	e.MarkLost()
	if e.ShouldCelebrate() {
		t.Error("Expected no celebration after MarkLost")
	}
	if e.State() != StateLost {
		t.Errorf("Expected StateLost, got %s", e.State())
	}
}

// TestSequenceIsCopy verifies callers cannot mutate engine state through Sequence
func TestSequenceIsCopy(t *testing.T) {
	e := newLoaded(t, MoveRed, MoveGreen, MoveBlue)
	seq := e.Sequence()
	seq[0] = MoveYellow

	m, _ := e.StepAt(0)
	if m != MoveRed {
		t.Errorf("Expected engine sequence untouched, got %s", m)
	}
}

// TestLoadRejectsInvalid verifies load validates every move
func TestLoadRejectsInvalid(t *testing.T) {
	e := New(NewXorShift(1))
	if err := e.load([]Move{MoveRed, Move(7)}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

// TestXorShiftZeroSeed verifies a zero seed still produces varying output
func TestXorShiftZeroSeed(t *testing.T) {
	r := NewXorShift(0)
	a, b := r.Next(), r.Next()
	if a == 0 || a == b {
		t.Errorf("Expected non-degenerate output, got %d then %d", a, b)
	}
	if r.IntN(0) != 0 {
		t.Error("Expected IntN(0) to return 0")
	}
}
