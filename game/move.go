package game

import "fmt"

// Move identifies one of the four color/tone slots
type Move uint8

const (
	MoveRed Move = iota
	MoveGreen
	MoveBlue
	MoveYellow
	moveCount
)

// MoveCount is the number of distinct moves
const MoveCount = int(moveCount)

// Valid reports whether m is one of the four slots
func (m Move) Valid() bool {
	return m < moveCount
}

func (m Move) String() string {
	switch m {
	case MoveRed:
		return "red"
	case MoveGreen:
		return "green"
	case MoveBlue:
		return "blue"
	case MoveYellow:
		return "yellow"
	default:
		return fmt.Sprintf("move(%d)", uint8(m))
	}
}
