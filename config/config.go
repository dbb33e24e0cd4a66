// Package config loads the desktop runner's settings from YAML and the environment
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/sim"
)

// Config is the full runner configuration
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	Display DisplayConfig `yaml:"display"`
	Input   InputConfig   `yaml:"input"`
	Game    GameConfig    `yaml:"game"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

type AudioConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Backend    string `yaml:"backend"`
	Volume     int    `yaml:"volume"` // 0-100
	SampleRate int    `yaml:"sample_rate"`
}

type DisplayConfig struct {
	Color string `yaml:"color"` // auto, 256, truecolor
}

type InputConfig struct {
	PollInterval time.Duration     `yaml:"poll_interval"`
	Keys         map[string]string `yaml:"keys"`
}

type GameConfig struct {
	// Growth is "filler" (append blue after each correct turn) or "random"
	Growth string `yaml:"growth"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Debug     bool   `yaml:"debug"`
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

const (
	GrowthFiller = "filler"
	GrowthRandom = "random"
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:    true,
			Backend:    "auto",
			Volume:     30,
			SampleRate: 44100,
		},
		Display: DisplayConfig{Color: "auto"},
		Input: InputConfig{
			PollInterval: time.Millisecond,
		},
		Game: GameConfig{Growth: GrowthFiller},
		Log: LogConfig{
			Dir:       "logs",
			MaxSizeMB: 10,
		},
	}
}

// Load builds a config from defaults, an optional YAML file, then environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays SIMON_* environment variables; unparsable values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SIMON_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	if v := os.Getenv("SIMON_AUDIO_BACKEND"); v != "" {
		c.Audio.Backend = v
	}

	if v := os.Getenv("SIMON_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(n, 0), 100)
		}
	}

	if v := os.Getenv("SIMON_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Audio.SampleRate = n
		}
	}

	if v := os.Getenv("SIMON_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}

	if v := os.Getenv("SIMON_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.Input.PollInterval = d
		}
	}
}

// Validate checks every field that cannot be clamped
func (c *Config) Validate() error {
	var errs []error

	if _, err := audio.ParseBackend(c.Audio.Backend); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		errs = append(errs, fmt.Errorf("audio volume %d outside 0-100", c.Audio.Volume))
	}
	if c.Audio.SampleRate < 8000 {
		errs = append(errs, fmt.Errorf("audio sample rate %d below 8000", c.Audio.SampleRate))
	}

	switch strings.ToLower(c.Display.Color) {
	case "", "auto", "256", "truecolor", "true", "24bit":
	default:
		errs = append(errs, fmt.Errorf("unknown color mode %q", c.Display.Color))
	}

	if c.Input.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("poll interval %v is negative", c.Input.PollInterval))
	}
	if len(c.Input.Keys) > 0 {
		if _, err := sim.ParseKeys(c.Input.Keys); err != nil {
			errs = append(errs, err)
		}
	}

	switch c.Game.Growth {
	case GrowthFiller, GrowthRandom:
	default:
		errs = append(errs, fmt.Errorf("unknown growth mode %q", c.Game.Growth))
	}

	if c.Log.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("log max size %d MB must be positive", c.Log.MaxSizeMB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// AudioSettings converts to the audio package config
func (c *Config) AudioSettings() *audio.Config {
	backend, _ := audio.ParseBackend(c.Audio.Backend)
	return &audio.Config{
		Enabled:      c.Audio.Enabled,
		Backend:      backend,
		MasterVolume: float64(c.Audio.Volume) / 100.0,
		SampleRate:   c.Audio.SampleRate,
	}
}

// KeyMap returns configured bindings, or the defaults when none are set
func (c *Config) KeyMap() sim.KeyMap {
	if len(c.Input.Keys) == 0 {
		return sim.DefaultKeys()
	}
	keys, err := sim.ParseKeys(c.Input.Keys)
	if err != nil {
		return sim.DefaultKeys()
	}
	return keys
}
