package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/simon/config"
)

var rootCmd = &cobra.Command{
	Use:   "simon",
	Short: "Simon Says memory game in the terminal",
	Long: `Simon shows a growing sequence of colors and tones; repeat it with the panel keys.
The board is simulated in the terminal and the buzzer through the system audio.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to a YAML config file")
	flags.String("color", "", "Color mode: auto, truecolor, 256")
	flags.String("audio", "", "Audio backend: auto, speaker, pipe, none")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	flags.Bool("debug", false, "Write debug logs to the logs directory")
}

// loadConfig reads the config file and environment, then applies explicitly set flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("color") {
		cfg.Display.Color, _ = flags.GetString("color")
	}
	if flags.Changed("audio") {
		cfg.Audio.Backend, _ = flags.GetString("audio")
		if strings.EqualFold(cfg.Audio.Backend, "none") {
			cfg.Audio.Enabled = false
		}
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("debug") {
		cfg.Log.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
