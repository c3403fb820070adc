package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/game"
	"github.com/vovakirdan/handflap/internal/platform/tui"
	"github.com/vovakirdan/handflap/internal/registry"
)

var (
	flagInput   string
	flagDevice  int
	flagTrace   string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive session.

The avatar follows the tracked fingertip. Without a detection it keeps its
position and falls under gravity. Hitting a pipe, the top edge or the
ground ends the round.

Inputs:
  pointer  - Keyboard virtual fingertip (default)
  camera   - Webcam with MediaPipe hand tracking
  trace    - Recorded samples from --trace

Controls:
  Up/W, Down/S  - Move the virtual fingertip (pointer input)
  H             - Hide the virtual fingertip
  R             - Restart (after game over)
  P/Esc         - Pause
  Q/Ctrl+C      - Quit

Examples:
  handflap play
  handflap play --input camera
  handflap play --input camera --device 1 --log-file /tmp/handflap.log
  handflap play --input trace --trace ./hover.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagInput, "input", "pointer", "Input source (see 'handflap sources')")
	playCmd.Flags().IntVar(&flagDevice, "device", -1, "Camera device index (-1 = tracking.device from config)")
	playCmd.Flags().StringVar(&flagTrace, "trace", "", "Trace file for the trace input")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is used by the game)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	if !registry.Exists(flagInput) {
		return fmt.Errorf("unknown input %q, run 'handflap sources' to see available inputs", flagInput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDevice >= 0 {
		cfg.Tracking.Device = flagDevice
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Loop.TickRate,
		Seed:     seed(),
	}

	src, err := registry.Open(flagInput, registry.Options{
		Tracking:  cfg.Tracking,
		TracePath: flagTrace,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("closing input", "error", err)
		}
	}()

	logger.Info("session started", "input", flagInput, "seed", rt.Seed, "tick_rate", rt.TickRate)

	g := game.New(cfg, rt.Seed)
	runErr := tui.Run(g, src, tui.Options{
		Runtime:    rt,
		SourceName: flagInput,
		Logger:     logger,
	})

	logger.Info("session ended", "score", g.State().Score)
	return runErr
}
