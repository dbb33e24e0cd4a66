package audio

// Config holds buzzer audio settings
type Config struct {
	Enabled      bool
	Backend      Backend
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}

// DefaultConfig returns the default audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		Backend:      BackendAuto,
		MasterVolume: 0.3,
		SampleRate:   44100,
	}
}
