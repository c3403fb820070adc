package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/handflap/internal/config"
	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/game"
	"github.com/vovakirdan/handflap/internal/tracking"
)

func newGame() *game.Game {
	return game.New(config.DefaultConfig(), 1)
}

func steady(y float64) *tracking.Trace {
	return tracking.NewTrace([]core.Sample{core.Detected(y)}, true)
}

func nothing() *tracking.Trace {
	return tracking.NewTrace([]core.Sample{core.NoDetection}, true)
}

func TestRunFrameLimit(t *testing.T) {
	res, err := Run(context.Background(), newGame(), steady(0.5), Options{MaxFrames: 100})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != ReasonFrameLimit {
		t.Errorf("Reason = %v, expected frame limit", res.Reason)
	}
	if res.Frames != 100 || res.Final.Tick != 100 {
		t.Errorf("Frames = %d, Tick = %d, expected 100", res.Frames, res.Final.Tick)
	}
	if res.GameOvers != 0 {
		t.Errorf("GameOvers = %d, expected 0", res.GameOvers)
	}
}

func TestRunEndOfStream(t *testing.T) {
	samples := make([]core.Sample, 10)
	for i := range samples {
		samples[i] = core.Detected(0.5)
	}

	res, err := Run(context.Background(), newGame(), tracking.NewTrace(samples, false), Options{})
	if err != nil {
		t.Fatalf("end of a trace should not be an error, got %v", err)
	}
	if res.Reason != ReasonEndOfStream {
		t.Errorf("Reason = %v, expected end of stream", res.Reason)
	}
	if res.Frames != 10 {
		t.Errorf("Frames = %d, expected 10", res.Frames)
	}
}

func TestRunStopOnGameOver(t *testing.T) {
	res, err := Run(context.Background(), newGame(), nothing(), Options{MaxFrames: 1000, StopOnGameOver: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != ReasonGameOver {
		t.Fatalf("Reason = %v, expected game over", res.Reason)
	}
	if res.GameOvers != 1 || res.Final.Phase != game.GameOver {
		t.Errorf("GameOvers = %d, phase = %v", res.GameOvers, res.Final.Phase)
	}
	// Free fall from mid-screen hits the floor well before the first pipe
	if res.Frames >= 100 {
		t.Errorf("free fall took %d frames", res.Frames)
	}
}

func TestRunAutoRestart(t *testing.T) {
	res, err := Run(context.Background(), newGame(), nothing(), Options{MaxFrames: 200, AutoRestart: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.GameOvers < 3 {
		t.Errorf("GameOvers = %d, expected repeated restarts", res.GameOvers)
	}
	if res.Frames != 200 {
		t.Errorf("Frames = %d, expected 200", res.Frames)
	}
}

func TestRunWithoutRestartStaysOver(t *testing.T) {
	res, err := Run(context.Background(), newGame(), nothing(), Options{MaxFrames: 200})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.GameOvers != 1 {
		t.Errorf("GameOvers = %d, expected exactly one", res.GameOvers)
	}
	if res.Final.Phase != game.GameOver {
		t.Errorf("phase = %v, expected game over", res.Final.Phase)
	}
}

type failingSource struct {
	after  int
	polled int
}

var errUnplugged = errors.New("unplugged")

func (s *failingSource) Sample(ctx context.Context) (core.Sample, error) {
	s.polled++
	if s.polled > s.after {
		return core.NoDetection, errors.Join(tracking.ErrCaptureFailed, errUnplugged)
	}
	return core.Detected(0.5), nil
}

func (s *failingSource) Close() error { return nil }

func TestRunCaptureFailure(t *testing.T) {
	res, err := Run(context.Background(), newGame(), &failingSource{after: 5}, Options{})
	if !errors.Is(err, tracking.ErrCaptureFailed) || !errors.Is(err, errUnplugged) {
		t.Fatalf("Run() error = %v, expected wrapped capture failure", err)
	}
	if res.Reason != ReasonCaptureFailed {
		t.Errorf("Reason = %v, expected capture failed", res.Reason)
	}
	if res.Frames != 5 {
		t.Errorf("Frames = %d, expected 5", res.Frames)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, newGame(), steady(0.5), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != ReasonCanceled || res.Frames != 0 {
		t.Errorf("Reason = %v, Frames = %d", res.Reason, res.Frames)
	}
}

// slowSource never answers within the frame budget.
type slowSource struct{}

func (slowSource) Sample(ctx context.Context) (core.Sample, error) {
	<-ctx.Done()
	return core.NoDetection, nil
}

func (slowSource) Close() error { return nil }

func TestRunPollTimeoutIsNoDetection(t *testing.T) {
	res, err := Run(context.Background(), newGame(), slowSource{}, Options{TickRate: 1000, MaxFrames: 3})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Frames != 3 {
		t.Errorf("Frames = %d, expected 3", res.Frames)
	}
	// No detection means gravity only
	if res.Final.Velocity <= 0 {
		t.Errorf("avatar should be falling, velocity = %v", res.Final.Velocity)
	}
}

func TestRunRealtimePacing(t *testing.T) {
	start := time.Now()
	res, err := Run(context.Background(), newGame(), steady(0.5), Options{TickRate: 200, Realtime: true, MaxFrames: 10})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Frames != 10 {
		t.Errorf("Frames = %d, expected 10", res.Frames)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("10 frames at 200Hz took %v, expected paced run", elapsed)
	}
}

func TestReasonString(t *testing.T) {
	for r, want := range map[Reason]string{
		ReasonCanceled:      "canceled",
		ReasonFrameLimit:    "frame limit",
		ReasonGameOver:      "game over",
		ReasonEndOfStream:   "end of stream",
		ReasonCaptureFailed: "capture failed",
		Reason(99):          "unknown",
	} {
		if got := r.String(); got != want {
			t.Errorf("Reason(%d).String() = %q, expected %q", r, got, want)
		}
	}
}

func TestRunRecordedTrace(t *testing.T) {
	tr, err := tracking.LoadTrace("../../testdata/hover.yaml")
	if err != nil {
		t.Fatalf("LoadTrace() error = %v", err)
	}

	a, err := Run(context.Background(), game.New(config.DefaultConfig(), 9), tr, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a.Reason != ReasonEndOfStream && a.Reason != ReasonFrameLimit {
		t.Errorf("Reason = %v", a.Reason)
	}
	if a.Frames != tr.Len() {
		t.Errorf("Frames = %d, expected the whole trace (%d)", a.Frames, tr.Len())
	}

	// Same trace and seed replay identically
	tr2, _ := tracking.LoadTrace("../../testdata/hover.yaml")
	b, _ := Run(context.Background(), game.New(config.DefaultConfig(), 9), tr2, Options{})
	if a.Final.AvatarY != b.Final.AvatarY || a.Final.Score != b.Final.Score || a.GameOvers != b.GameOvers {
		t.Errorf("replays differ: %+v vs %+v", a.Final, b.Final)
	}
}
