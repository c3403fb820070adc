package tracking

import (
	"context"

	"github.com/vovakirdan/handflap/internal/config"
	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/registry"
)

// Pointer is a virtual fingertip steered from the keyboard.
// It starts hidden in the middle of the frame; the first move shows it.
// Not safe for concurrent use; the interactive driver steers and samples
// it from the same goroutine.
type Pointer struct {
	y       float64
	step    float64
	visible bool
	closed  bool
}

// NewPointer creates a hidden pointer that moves by step per key press.
func NewPointer(step float64) *Pointer {
	if step <= 0 {
		step = config.DefaultConfig().Tracking.PointerStep
	}
	return &Pointer{y: 0.5, step: step}
}

// Steer applies a movement action. Up and Down show the pointer,
// Hide hides it. Other actions are ignored.
func (p *Pointer) Steer(a core.Action) {
	switch a {
	case core.ActionUp:
		p.y = core.ClampF(p.y-p.step, 0, 1)
		p.visible = true
	case core.ActionDown:
		p.y = core.ClampF(p.y+p.step, 0, 1)
		p.visible = true
	case core.ActionHide:
		p.visible = false
	}
}

// Y returns the pointer position whether or not it is visible.
func (p *Pointer) Y() float64 {
	return p.y
}

// Sample reports the pointer, or no detection while it is hidden.
func (p *Pointer) Sample(ctx context.Context) (core.Sample, error) {
	if p.closed {
		return core.NoDetection, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return core.NoDetection, nil
	}
	if !p.visible {
		return core.NoDetection, nil
	}
	return core.Detected(p.y), nil
}

// Close marks the pointer unusable.
func (p *Pointer) Close() error {
	p.closed = true
	return nil
}

func init() {
	registry.Register("pointer", "Keyboard virtual fingertip (up/down to move, h to hide)",
		func(opts registry.Options) (registry.Source, error) {
			return NewPointer(opts.Tracking.PointerStep), nil
		})
}
