package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// lookPath is swapped in tests
var lookPath = exec.LookPath

// player is one CLI candidate that reads raw s16le stereo on stdin
type player struct {
	typ  PlayerType
	name string
	bin  string
	args func(rate string) []string
}

// players in detection order: pacat > pw-cat > aplay > play (sox) > ffplay
var players = []player{
	// PulseAudio, or PipeWire through its pulse shim (Linux, FreeBSD)
	{PlayerPulse, "pacat", "pacat", func(rate string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=2", "--latency-msec=50", "--playback"}
	}},
	// PipeWire native
	{PlayerPipeWire, "pw-cat", "pw-cat", func(rate string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=2", "--latency=50ms", "-"}
	}},
	// ALSA (Linux)
	{PlayerALSA, "aplay", "aplay", func(rate string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", "2", "-q"}
	}},
	// SoX; the binary is "play"
	{PlayerSoX, "sox", "play", func(rate string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", rate, "-", "-d", "-q"}
	}},
	// FFplay, heavyweight fallback with probing disabled to keep latency down
	{PlayerFFplay, "ffplay", "ffplay", func(rate string) []string {
		return []string{
			"-nodisp", "-autoexit",
			"-f", "s16le", "-ac", "2", "-ar", rate,
			"-probesize", "32", "-analyzeduration", "0",
			"-i", "pipe:0", "-loglevel", "quiet",
		}
	}},
}

// DetectPlayer returns the first installed player configured for sampleRate.
// FreeBSD falls back to writing /dev/dsp directly.
func DetectPlayer(sampleRate int) (*PlayerConfig, error) {
	rate := strconv.Itoa(sampleRate)

	for _, p := range players {
		path, err := lookPath(p.bin)
		if err != nil {
			continue
		}
		return &PlayerConfig{Type: p.typ, Name: p.name, Path: path, Args: p.args(rate)}, nil
	}

	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &PlayerConfig{Type: PlayerOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
