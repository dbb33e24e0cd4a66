package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// square is an endless square wave whose frequency may change mid-stream.
// Fields are read on the audio goroutine; writers hold the output lock.
type square struct {
	rate  beep.SampleRate
	freq  float64
	phase float64
}

func newSquare(rate beep.SampleRate, freq float64) *square {
	return &square{rate: rate, freq: freq}
}

func (s *square) Stream(samples [][2]float64) (n int, ok bool) {
	step := s.freq / float64(s.rate)
	for i := range samples {
		val := -1.0
		if s.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += step
		s.phase -= math.Floor(s.phase) // keep in [0, 1)
	}
	return len(samples), true
}

func (s *square) Err() error { return nil }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero volume is marked silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
