package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output routes streamers to a playback device.
// Streamer fields may only be mutated between Lock and Unlock.
type Output interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
	SampleRate() beep.SampleRate
	Close() error
}

// Open starts the output selected by cfg.
// BackendAuto never fails: it degrades to a silent output.
func Open(cfg *Config) (Output, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if !cfg.Enabled {
		return NewSilent(rate), nil
	}

	switch cfg.Backend {
	case BackendNone:
		return NewSilent(rate), nil
	case BackendSpeaker:
		return openSpeaker(rate)
	case BackendPipe:
		return openPipe(rate)
	default:
		if out, err := openSpeaker(rate); err == nil {
			return out, nil
		}
		if out, err := openPipe(rate); err == nil {
			return out, nil
		}
		return NewSilent(rate), nil
	}
}

// speakerOutput plays through beep's speaker package.
// The speaker is process-global, so only one may be open.
type speakerOutput struct {
	rate beep.SampleRate
}

var speakerOpen atomic.Bool

func openSpeaker(rate beep.SampleRate) (Output, error) {
	if !speakerOpen.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("speaker already open")
	}
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		speakerOpen.Store(false)
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &speakerOutput{rate: rate}, nil
}

func (o *speakerOutput) Play(s beep.Streamer)        { speaker.Play(s) }
func (o *speakerOutput) Lock()                       { speaker.Lock() }
func (o *speakerOutput) Unlock()                     { speaker.Unlock() }
func (o *speakerOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *speakerOutput) Close() error {
	speaker.Clear()
	speaker.Close()
	speakerOpen.Store(false)
	return nil
}

// pipeOutput mixes streamers and writes s16le stereo frames to a CLI player.
// Writes block on the player, which paces the mix loop.
type pipeOutput struct {
	rate  beep.SampleRate
	mu    sync.Mutex
	mixer *beep.Mixer

	writer  io.Writer
	closer  io.Closer
	cmd     *exec.Cmd
	stop    chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup

	errChan chan error
}

const pipeFrames = 512

func openPipe(rate beep.SampleRate) (Output, error) {
	player, err := DetectPlayer(int(rate))
	if err != nil {
		return nil, err
	}

	o := &pipeOutput{
		rate:    rate,
		mixer:   &beep.Mixer{},
		stop:    make(chan struct{}),
		errChan: make(chan error, 1),
	}

	if player.Type == PlayerOSS {
		f, err := os.OpenFile(player.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", player.Path, err)
		}
		o.writer, o.closer = f, f
	} else {
		cmd := exec.Command(player.Path, player.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("%s stdin: %w", player.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return nil, fmt.Errorf("start %s: %w", player.Name, err)
		}
		o.cmd = cmd
		o.writer, o.closer = stdin, stdin
	}

	o.wg.Add(1)
	go o.loop()
	return o, nil
}

func (o *pipeOutput) loop() {
	defer o.wg.Done()

	buf := make([][2]float64, pipeFrames)
	out := make([]byte, pipeFrames*4)
	for {
		select {
		case <-o.stop:
			return
		default:
		}

		o.mu.Lock()
		o.mixer.Stream(buf)
		o.mu.Unlock()

		floatToBytes(buf, out)
		if _, err := o.writer.Write(out); err != nil {
			select {
			case o.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
			default:
			}
			return
		}
	}
}

func (o *pipeOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s)
	o.mu.Unlock()
}

func (o *pipeOutput) Lock()                       { o.mu.Lock() }
func (o *pipeOutput) Unlock()                     { o.mu.Unlock() }
func (o *pipeOutput) SampleRate() beep.SampleRate { return o.rate }

// Errors reports the first write failure
func (o *pipeOutput) Errors() <-chan error {
	return o.errChan
}

func (o *pipeOutput) Close() error {
	if !o.stopped.CompareAndSwap(false, true) {
		return nil
	}
	close(o.stop)
	err := o.closer.Close()
	if o.cmd != nil && o.cmd.Process != nil {
		o.cmd.Process.Kill()
		o.cmd.Wait()
	}
	o.wg.Wait()
	return err
}

// floatToBytes converts stereo float frames to interleaved int16 LE with soft limiting
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v*32767)))
		}
	}
}

// silentOutput accepts streamers and never plays them
type silentOutput struct {
	rate beep.SampleRate
	mu   sync.Mutex
}

// NewSilent returns an output that discards audio
func NewSilent(rate beep.SampleRate) Output {
	return &silentOutput{rate: rate}
}

func (o *silentOutput) Play(beep.Streamer)          {}
func (o *silentOutput) Lock()                       { o.mu.Lock() }
func (o *silentOutput) Unlock()                     { o.mu.Unlock() }
func (o *silentOutput) SampleRate() beep.SampleRate { return o.rate }
func (o *silentOutput) Close() error                { return nil }
