package audio

import (
	"errors"
	"fmt"
	"strings"
)

// Backend selects how buzzer audio reaches the host
type Backend int

const (
	BackendAuto    Backend = iota // speaker, then pipe, then silent
	BackendSpeaker                // beep speaker (oto)
	BackendPipe                   // raw PCM piped into a CLI player
	BackendNone                   // silent
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendSpeaker:
		return "speaker"
	case BackendPipe:
		return "pipe"
	case BackendNone:
		return "none"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend converts a config/flag value to a Backend
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "speaker", "oto":
		return BackendSpeaker, nil
	case "pipe":
		return BackendPipe, nil
	case "none", "off", "silent":
		return BackendNone, nil
	default:
		return BackendAuto, fmt.Errorf("unknown audio backend %q", s)
	}
}

// PlayerType identifies a CLI audio player used by the pipe backend
type PlayerType int

const (
	PlayerPulse PlayerType = iota
	PlayerPipeWire
	PlayerALSA
	PlayerSoX
	PlayerFFplay
	PlayerOSS
)

// PlayerConfig describes a CLI player
type PlayerConfig struct {
	Type PlayerType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)
