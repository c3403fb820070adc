// handflap is a Flappy-style game steered by hand tracking: the avatar
// follows your index fingertip as seen by a webcam.
//
// Usage:
//
//	handflap play              - Play in the terminal
//	handflap simulate          - Run a recorded trace headless
//	handflap sources           - List available input sources
//	handflap config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible obstacles
//	--config <path>     - Use a custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/handflap/internal/config"

	// Import sources to register them
	_ "github.com/vovakirdan/handflap/internal/tracking"
	_ "github.com/vovakirdan/handflap/internal/tracking/camera"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "handflap",
	Short: "handflap - Flappy bird steered by your fingertip",
	Long: `handflap is a Flappy-style game for the terminal. The avatar follows
the vertical position of your index fingertip, tracked through a webcam
with MediaPipe. A keyboard pointer and recorded traces can stand in for
the camera.

Available commands:
  play      - Play interactively
  simulate  - Replay a trace without a terminal
  sources   - Show all input sources
  config    - Print the effective configuration

Examples:
  handflap play
  handflap play --input camera --device 1
  handflap simulate --trace ./testdata/hover.yaml --stop-on-game-over
  handflap config > ~/.handflap/config.yaml`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = loop.tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}
	return cfg, nil
}

// seed returns the RNG seed, time based unless --seed was given.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger creates the session logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "handflap",
		Level:           level,
	})
	return logger, nil
}
