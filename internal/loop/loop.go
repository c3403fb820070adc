// Package loop runs a game session without a terminal: one landmark poll
// and one simulation step per frame, either paced at the tick rate or as
// fast as possible.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/game"
	"github.com/vovakirdan/handflap/internal/registry"
	"github.com/vovakirdan/handflap/internal/tracking"
)

// Reason describes why a run stopped.
type Reason int

const (
	ReasonCanceled      Reason = iota // Context canceled (quit, signal)
	ReasonFrameLimit                  // MaxFrames reached
	ReasonGameOver                    // Game over with StopOnGameOver set
	ReasonEndOfStream                 // A non-looping trace ran out
	ReasonCaptureFailed               // The source failed
)

// String returns a human-readable name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonCanceled:
		return "canceled"
	case ReasonFrameLimit:
		return "frame limit"
	case ReasonGameOver:
		return "game over"
	case ReasonEndOfStream:
		return "end of stream"
	case ReasonCaptureFailed:
		return "capture failed"
	default:
		return "unknown"
	}
}

// Options configures a run.
type Options struct {
	TickRate       int  // Frames per second; also sets the poll budget
	Realtime       bool // Pace frames with a ticker instead of running flat out
	MaxFrames      int  // 0 = unlimited
	StopOnGameOver bool
	AutoRestart    bool // Restart immediately after every game over
	Logger         *log.Logger
}

// Result summarizes a finished run.
type Result struct {
	Frames    int
	Score     int // Score of the last game
	BestScore int
	GameOvers int
	Reason    Reason
	Final     game.Snapshot
}

// Run drives g with samples from src until a stop condition is met.
// The returned error is non-nil only for capture failures; the caller
// still owns src and must close it.
func Run(ctx context.Context, g *game.Game, src registry.Source, opts Options) (Result, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	logger := opts.Logger
	budget := time.Second / time.Duration(opts.TickRate)

	var ticks <-chan time.Time
	if opts.Realtime {
		ticker := time.NewTicker(budget)
		defer ticker.Stop()
		ticks = ticker.C
	}

	var res Result
	finish := func(reason Reason) Result {
		res.Reason = reason
		res.Final = g.Snapshot()
		res.Score = res.Final.Score
		res.BestScore = max(res.BestScore, res.Score)
		return res
	}

	logger.Debug("loop started", "tick_rate", opts.TickRate, "realtime", opts.Realtime, "max_frames", opts.MaxFrames)

	for {
		if opts.MaxFrames > 0 && res.Frames >= opts.MaxFrames {
			return finish(ReasonFrameLimit), nil
		}

		if ticks != nil {
			select {
			case <-ctx.Done():
				return finish(ReasonCanceled), nil
			case <-ticks:
			}
		} else if ctx.Err() != nil {
			return finish(ReasonCanceled), nil
		}

		sample, err := poll(ctx, src, budget)
		if err != nil {
			if errors.Is(err, tracking.ErrEndOfStream) {
				logger.Info("input stream ended", "frames", res.Frames)
				return finish(ReasonEndOfStream), nil
			}
			logger.Error("capture failed", "error", err, "frames", res.Frames)
			return finish(ReasonCaptureFailed), fmt.Errorf("loop: %w", err)
		}

		in := core.NewInputFrame()
		in.Tracking = sample
		step := g.Step(in)
		res.Frames++

		if step.Scored > 0 {
			logger.Debug("obstacle passed", "score", step.State.Score, "frame", res.Frames)
		}

		if step.Ended {
			res.GameOvers++
			res.BestScore = max(res.BestScore, step.State.Score)
			logger.Info("game over", "score", step.State.Score, "frame", res.Frames)

			if opts.StopOnGameOver {
				return finish(ReasonGameOver), nil
			}
			if opts.AutoRestart {
				g.Restart()
				logger.Debug("restarted", "frame", res.Frames)
			}
		}
	}
}

// poll asks src for one sample within the frame budget.
func poll(ctx context.Context, src registry.Source, budget time.Duration) (core.Sample, error) {
	pollCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()
	return src.Sample(pollCtx)
}
