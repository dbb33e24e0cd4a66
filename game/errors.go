package game

import "errors"

// Sentinel errors; callers wrap with context and test with errors.Is
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrIndexOutOfRange  = errors.New("index out of range")
)
