package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/board"
	"github.com/lixenwraith/simon/buzzer"
	"github.com/lixenwraith/simon/config"
	"github.com/lixenwraith/simon/crash"
	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/hal"
	"github.com/lixenwraith/simon/metrics"
	"github.com/lixenwraith/simon/play"
	"github.com/lixenwraith/simon/sim"
)

func run(parent context.Context, cfg *config.Config) (err error) {
	logDir = cfg.Log.Dir
	maxLogSize = int64(cfg.Log.MaxSizeMB) * 1024 * 1024
	if logFile := setupLogging(cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}
	logger := newLogger(cfg.Log.Debug)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	crash.SetReset(screen.Fini)
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			crash.Handle(r)
		}
	}()

	term := sim.New(screen, cfg.KeyMap(), resolveColorMode(cfg.Display.Color, screen))

	audioCfg := cfg.AudioSettings()
	out, err := audio.Open(audioCfg)
	if err != nil {
		logger.Warn("audio unavailable, continuing without audio", "backend", audioCfg.Backend, "error", err)
		out = audio.NewSilent(beep.SampleRate(audioCfg.SampleRate))
	}
	defer out.Close()
	if pipe, ok := out.(interface{ Errors() <-chan error }); ok {
		crash.Go(func() {
			if err, ok := <-pipe.Errors(); ok {
				logger.Warn("audio output stopped", "error", err)
			}
		})
	}

	clock := hal.SystemClock{}
	bz := buzzer.New(audio.NewPWM(out, audioCfg.MasterVolume), clock)

	var wiring board.Wiring
	for m := range game.Move(game.MoveCount) {
		wiring.LEDs[m] = term.LED(m)
		wiring.Buttons[m] = term.Button(m)
	}
	b, err := board.New(wiring, bz, clock, board.WithPollInterval(cfg.Input.PollInterval))
	if err != nil {
		return err
	}

	// One random source for the process, seeded once
	rng := game.NewXorShift(uint64(time.Now().UnixNano()))
	engine := game.New(rng)

	observers := play.Observers{term, play.NewLogObserver(logger)}

	if cfg.Metrics.Addr != "" {
		collector, srv, err := startMetrics(cfg.Metrics.Addr, logger)
		if err != nil {
			return err
		}
		defer srv.Shutdown(context.Background())
		observers = append(observers, collector)
	}

	opts := []play.Option{play.WithObserver(observers), play.WithLogger(logger)}
	if cfg.Game.Growth == config.GrowthRandom {
		opts = append(opts, play.WithGrowth(func() game.Move {
			return game.Move(rng.IntN(game.MoveCount))
		}))
	}
	loop := play.New(engine, b, opts...)

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	crash.Go(term.Run)
	crash.Go(func() {
		select {
		case <-term.Quit():
			cancel()
		case <-ctx.Done():
		}
	})

	logger.Info("simon started", "audio", audioCfg.Backend.String(), "growth", cfg.Game.Growth)
	if err := loop.Run(ctx); err != nil {
		logger.Error("play loop failed", "error", err)
		return err
	}
	logger.Info("simon stopped")
	return nil
}

func resolveColorMode(name string, screen tcell.Screen) sim.ColorMode {
	switch strings.ToLower(name) {
	case "256":
		return sim.ColorMode256
	case "truecolor", "true", "24bit":
		return sim.ColorModeTrueColor
	default:
		if screen.Colors() >= 1<<24 {
			return sim.ColorModeTrueColor
		}
		return sim.ColorMode256
	}
}

func startMetrics(addr string, logger *slog.Logger) (*metrics.Collector, *metrics.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return nil, nil, err
	}
	srv, err := metrics.Listen(addr, metrics.NewHandler(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("metrics listener: %w", err)
	}

	crash.Go(func() {
		if err := srv.Serve(); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	})
	logger.Info("metrics listening", "addr", srv.Addr())
	return collector, srv, nil
}
