package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handflap/internal/game"
	"github.com/vovakirdan/handflap/internal/loop"
	"github.com/vovakirdan/handflap/internal/registry"
)

var (
	flagSimInput       string
	flagSimTrace       string
	flagSimFrames      int
	flagSimRealtime    bool
	flagSimStopOnOver  bool
	flagSimAutoRestart bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a session without a terminal",
	Long: `Drive the game headless from a recorded trace (or the camera) and
print a summary. Logs go to stderr.

Trace files are YAML:

  loop: false
  samples:
    - 0.5                    # fingertip at half the frame height
    - ~                      # no detection
    - {y: 0.3, repeat: 60}   # hold for 60 frames

Examples:
  handflap simulate --trace hover.yaml
  handflap simulate --trace hover.yaml --seed 7 --stop-on-game-over
  handflap simulate --input camera --realtime --frames 600 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimInput, "input", "trace", "Input source (see 'handflap sources')")
	simulateCmd.Flags().StringVar(&flagSimTrace, "trace", "", "Trace file for the trace input")
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", 0, "Stop after this many frames (0 = until the input ends)")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames at the tick rate")
	simulateCmd.Flags().BoolVar(&flagSimStopOnOver, "stop-on-game-over", false, "Stop at the first game over")
	simulateCmd.Flags().BoolVar(&flagSimAutoRestart, "auto-restart", false, "Restart immediately after each game over")
}

func runSimulate(cmd *cobra.Command, args []string) {
	if err := simulate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func simulate() error {
	if !registry.Exists(flagSimInput) {
		return fmt.Errorf("unknown input %q, run 'handflap sources' to see available inputs", flagSimInput)
	}
	if flagSimStopOnOver && flagSimAutoRestart {
		return errors.New("--stop-on-game-over and --auto-restart are mutually exclusive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	src, err := registry.Open(flagSimInput, registry.Options{
		Tracking:  cfg.Tracking,
		TracePath: flagSimTrace,
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := seed()
	res, runErr := loop.Run(ctx, game.New(cfg, s), src, loop.Options{
		TickRate:       cfg.Loop.TickRate,
		Realtime:       flagSimRealtime,
		MaxFrames:      flagSimFrames,
		StopOnGameOver: flagSimStopOnOver,
		AutoRestart:    flagSimAutoRestart,
		Logger:         logger,
	})

	fmt.Printf("frames:     %d\n", res.Frames)
	fmt.Printf("score:      %d\n", res.Score)
	fmt.Printf("best:       %d\n", res.BestScore)
	fmt.Printf("game overs: %d\n", res.GameOvers)
	fmt.Printf("state:      %s\n", res.Final.Phase)
	fmt.Printf("stopped:    %s\n", res.Reason)
	fmt.Printf("seed:       %d\n", s)

	return runErr
}
