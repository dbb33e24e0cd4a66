package sim

import (
	"fmt"
	"unicode/utf8"

	"github.com/lixenwraith/simon/game"
)

// KeyMap binds runes to buttons
type KeyMap map[rune]game.Move

// DefaultKeys binds the color initials and the digits 1-4
func DefaultKeys() KeyMap {
	return KeyMap{
		'r': game.MoveRed,
		'g': game.MoveGreen,
		'b': game.MoveBlue,
		'y': game.MoveYellow,
		'1': game.MoveRed,
		'2': game.MoveGreen,
		'3': game.MoveBlue,
		'4': game.MoveYellow,
	}
}

// ParseKeys builds a KeyMap from color name to single-character key strings
func ParseKeys(bindings map[string]string) (KeyMap, error) {
	keys := make(KeyMap, len(bindings))
	for name, key := range bindings {
		m, ok := moveByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown button %q", name)
		}
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("button %s: key %q must be a single character", name, key)
		}
		if prev, dup := keys[r]; dup && prev != m {
			return nil, fmt.Errorf("key %q bound to both %s and %s", key, prev, m)
		}
		keys[r] = m
	}
	return keys, nil
}

// Label returns the first key bound to m, for display
func (k KeyMap) Label(m game.Move) string {
	best := rune(0)
	for r, mv := range k {
		if mv == m && (best == 0 || r < best) {
			best = r
		}
	}
	if best == 0 {
		return "?"
	}
	return string(best)
}

func moveByName(name string) (game.Move, bool) {
	for m := range game.Move(game.MoveCount) {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}
