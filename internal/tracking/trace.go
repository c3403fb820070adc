package tracking

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/registry"
)

// Trace replays recorded samples, one per poll.
//
// Trace files are YAML:
//
//	loop: false
//	samples:
//	  - 0.5            # fingertip at half the frame height
//	  - ~              # no detection
//	  - {y: 0.3, repeat: 60}
//	  - {y: ~, repeat: 10}
//
// Not safe for concurrent use.
type Trace struct {
	samples []core.Sample
	loop    bool
	pos     int
	closed  bool
}

// ErrInvalidTrace is wrapped by every trace parsing failure.
var ErrInvalidTrace = errors.New("invalid trace")

type traceFile struct {
	Loop    bool  `yaml:"loop"`
	Samples []any `yaml:"samples"`
}

// NewTrace creates a trace over the given samples.
func NewTrace(samples []core.Sample, loop bool) *Trace {
	return &Trace{samples: samples, loop: loop}
}

// LoadTrace reads a trace file.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	t, err := ParseTrace(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTrace decodes a trace from YAML.
func ParseTrace(data []byte) (*Trace, error) {
	var f traceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}

	var samples []core.Sample
	for i, entry := range f.Samples {
		s, repeat, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %v", ErrInvalidTrace, i, err)
		}
		for range repeat {
			samples = append(samples, s)
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidTrace)
	}
	return NewTrace(samples, f.Loop), nil
}

func parseEntry(entry any) (core.Sample, int, error) {
	switch v := entry.(type) {
	case map[string]any:
		repeat := 1
		if r, ok := v["repeat"]; ok {
			n, ok := r.(int)
			if !ok || n < 1 {
				return core.NoDetection, 0, fmt.Errorf("repeat must be a positive integer, got %v", r)
			}
			repeat = n
		}
		s, err := parseY(v["y"])
		return s, repeat, err
	default:
		s, err := parseY(v)
		return s, 1, err
	}
}

func parseY(v any) (core.Sample, error) {
	var y float64
	switch n := v.(type) {
	case nil:
		return core.NoDetection, nil
	case int:
		y = float64(n)
	case float64:
		y = n
	default:
		return core.NoDetection, fmt.Errorf("expected a number or ~, got %v", v)
	}
	if y < 0 || y > 1 {
		return core.NoDetection, fmt.Errorf("y must be in [0, 1], got %v", y)
	}
	return core.Detected(y), nil
}

// Len returns the number of frames in one pass of the trace.
func (t *Trace) Len() int {
	return len(t.samples)
}

// Sample returns the next recorded sample. A non-looping trace reports
// ErrEndOfStream once every sample has been played.
func (t *Trace) Sample(ctx context.Context) (core.Sample, error) {
	if t.closed {
		return core.NoDetection, ErrClosed
	}
	if t.pos >= len(t.samples) {
		if !t.loop || len(t.samples) == 0 {
			return core.NoDetection, fmt.Errorf("trace: %w", ErrEndOfStream)
		}
		t.pos = 0
	}
	s := t.samples[t.pos]
	t.pos++
	return s, nil
}

// Close marks the trace unusable.
func (t *Trace) Close() error {
	t.closed = true
	return nil
}

func init() {
	registry.Register("trace", "Recorded samples from a YAML trace file (--trace)",
		func(opts registry.Options) (registry.Source, error) {
			if opts.TracePath == "" {
				return nil, errors.New("trace source requires a trace file")
			}
			t, err := LoadTrace(opts.TracePath)
			if err != nil {
				return nil, err
			}
			opts.Logger.Debug("trace loaded", "path", opts.TracePath, "frames", t.Len(), "loop", t.loop)
			return t, nil
		})
}
