package tracking

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/registry"
)

func TestSelect(t *testing.T) {
	hand := func(y float64) HandLandmarks {
		var h HandLandmarks
		h.Points[IndexTip] = Point3D{X: 0.5, Y: y}
		h.Points[Wrist] = Point3D{X: 0.5, Y: 0.9}
		return h
	}

	tests := []struct {
		name     string
		hands    []HandLandmarks
		landmark int
		want     core.Sample
	}{
		{"no hands", nil, IndexTip, core.NoDetection},
		{"index tip", []HandLandmarks{hand(0.25)}, IndexTip, core.Detected(0.25)},
		{"other landmark", []HandLandmarks{hand(0.25)}, Wrist, core.Detected(0.9)},
		{"first hand wins", []HandLandmarks{hand(0.1), hand(0.7)}, IndexTip, core.Detected(0.1)},
		{"clamped above", []HandLandmarks{hand(-0.05)}, IndexTip, core.Detected(0)},
		{"clamped below", []HandLandmarks{hand(1.2)}, IndexTip, core.Detected(1)},
		{"bad landmark", []HandLandmarks{hand(0.5)}, NumLandmarks, core.NoDetection},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Select(tc.hands, tc.landmark); got != tc.want {
				t.Errorf("Select() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestPointer(t *testing.T) {
	ctx := context.Background()
	p := NewPointer(0.1)

	if s, err := p.Sample(ctx); err != nil || s.OK {
		t.Fatalf("new pointer should be hidden, got %+v, %v", s, err)
	}

	p.Steer(core.ActionUp)
	s, err := p.Sample(ctx)
	if err != nil || !s.OK {
		t.Fatalf("pointer should be visible after moving, got %+v, %v", s, err)
	}
	if diff := s.Y - 0.4; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Y = %v, expected 0.4", s.Y)
	}

	for i := 0; i < 20; i++ {
		p.Steer(core.ActionDown)
	}
	if p.Y() != 1 {
		t.Errorf("pointer should clamp at 1, got %v", p.Y())
	}

	p.Steer(core.ActionHide)
	if s, _ := p.Sample(ctx); s.OK {
		t.Error("hidden pointer should report no detection")
	}

	p.Steer(core.ActionRestart)
	if s, _ := p.Sample(ctx); s.OK {
		t.Error("unrelated actions should not show the pointer")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := p.Sample(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Sample after Close error = %v, expected ErrClosed", err)
	}
}

func TestPointerDefaultStep(t *testing.T) {
	p := NewPointer(0)
	p.Steer(core.ActionUp)
	if p.Y() >= 0.5 {
		t.Errorf("zero step should fall back to the default, Y = %v", p.Y())
	}
}

func TestParseTrace(t *testing.T) {
	data := []byte(`
loop: false
samples:
  - 0.5
  - ~
  - 1
  - {y: 0.25, repeat: 3}
  - {y: ~, repeat: 2}
`)
	tr, err := ParseTrace(data)
	if err != nil {
		t.Fatalf("ParseTrace() error = %v", err)
	}

	want := []core.Sample{
		core.Detected(0.5),
		core.NoDetection,
		core.Detected(1),
		core.Detected(0.25), core.Detected(0.25), core.Detected(0.25),
		core.NoDetection, core.NoDetection,
	}
	if tr.Len() != len(want) {
		t.Fatalf("Len() = %d, expected %d", tr.Len(), len(want))
	}

	ctx := context.Background()
	for i, w := range want {
		got, err := tr.Sample(ctx)
		if err != nil {
			t.Fatalf("frame %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("frame %d = %+v, expected %+v", i, got, w)
		}
	}

	_, err = tr.Sample(ctx)
	if !errors.Is(err, ErrEndOfStream) {
		t.Errorf("exhausted trace error = %v, expected ErrEndOfStream", err)
	}
	if !errors.Is(err, ErrCaptureFailed) {
		t.Errorf("end of stream should also be a capture failure, got %v", err)
	}
	if msg := err.Error(); msg != "trace: capture failed: end of stream" {
		t.Errorf("Error() = %q, expected a single line", msg)
	}
}

func TestParseTraceErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "samples: [0.5"},
		{"empty", "loop: true\n"},
		{"out of range", "samples: [1.5]"},
		{"negative", "samples: [-0.1]"},
		{"text", "samples: [up]"},
		{"bad repeat", "samples: [{y: 0.5, repeat: 0}]"},
		{"float repeat", "samples: [{y: 0.5, repeat: 1.5}]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTrace([]byte(tc.data))
			if !errors.Is(err, ErrInvalidTrace) {
				t.Errorf("ParseTrace() error = %v, expected ErrInvalidTrace", err)
			}
		})
	}
}

func TestTraceLoops(t *testing.T) {
	tr := NewTrace([]core.Sample{core.Detected(0.1), core.Detected(0.2)}, true)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		s, err := tr.Sample(ctx)
		if err != nil {
			t.Fatalf("looping trace should never end, frame %d: %v", i, err)
		}
		want := []float64{0.1, 0.2}[i%2]
		if s.Y != want {
			t.Errorf("frame %d = %v, expected %v", i, s.Y, want)
		}
	}
}

func TestLoadTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.yaml")
	if err := os.WriteFile(path, []byte("samples: [0.5, ~]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := LoadTrace(path)
	if err != nil {
		t.Fatalf("LoadTrace() error = %v", err)
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", tr.Len())
	}

	if _, err := LoadTrace(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestRegisteredSources(t *testing.T) {
	for _, name := range []string{"pointer", "trace"} {
		if !registry.Exists(name) {
			t.Errorf("source %q should be registered", name)
		}
	}

	if _, err := registry.Open("trace", registry.Options{}); err == nil {
		t.Error("trace source without a path should fail to open")
	}

	src, err := registry.Open("pointer", registry.Options{})
	if err != nil {
		t.Fatalf("Open(pointer) error = %v", err)
	}
	defer src.Close()
	if _, ok := src.(registry.Steerable); !ok {
		t.Error("pointer source should be steerable")
	}
}

// fakeReader produces a fixed number of samples, then fails.
type fakeReader struct {
	samples []core.Sample
	pos     int
	failAt  int
	delay   time.Duration
	closed  atomic.Bool
}

var errCameraGone = errors.New("camera unplugged")

func (r *fakeReader) Read() (core.Sample, error) {
	time.Sleep(r.delay)
	if r.failAt >= 0 && r.pos >= r.failAt {
		return core.NoDetection, errCameraGone
	}
	s := r.samples[r.pos%len(r.samples)]
	r.pos++
	return s, nil
}

func (r *fakeReader) Close() error {
	r.closed.Store(true)
	return nil
}

func TestPollerDeliversSamples(t *testing.T) {
	r := &fakeReader{samples: []core.Sample{core.Detected(0.3)}, failAt: -1, delay: time.Millisecond}
	p := NewPoller(r)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, err := p.Sample(ctx)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if s != core.Detected(0.3) {
		t.Errorf("Sample() = %+v, expected detected 0.3", s)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !r.closed.Load() {
		t.Error("Close should close the reader")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestPollerTimeoutIsNoDetection(t *testing.T) {
	r := &fakeReader{samples: []core.Sample{core.Detected(0.3)}, failAt: -1, delay: 200 * time.Millisecond}
	p := NewPoller(r)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	s, err := p.Sample(ctx)
	if err != nil {
		t.Fatalf("timeout should not be an error, got %v", err)
	}
	if s.OK {
		t.Errorf("timeout should yield no detection, got %+v", s)
	}
}

func TestPollerPrefersPendingSample(t *testing.T) {
	r := &fakeReader{samples: []core.Sample{core.Detected(0.3)}, failAt: -1, delay: time.Millisecond}
	p := NewPoller(r)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 20; i++ {
		time.Sleep(5 * time.Millisecond)
		s, err := p.Sample(ctx)
		if err != nil {
			t.Fatalf("Sample() error = %v", err)
		}
		if !s.OK {
			t.Fatalf("call %d: expired context hid a pending sample", i)
		}
	}
}

func TestPollerReportsReaderFailure(t *testing.T) {
	r := &fakeReader{samples: []core.Sample{core.Detected(0.3)}, failAt: 0}
	p := NewPoller(r)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := p.Sample(ctx); !errors.Is(err, errCameraGone) {
		t.Fatalf("Sample() error = %v, expected reader failure", err)
	}
	// The failure is sticky
	if _, err := p.Sample(ctx); !errors.Is(err, errCameraGone) {
		t.Errorf("second Sample() error = %v, expected reader failure", err)
	}
}
