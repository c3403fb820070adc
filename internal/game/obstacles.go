package game

import (
	"math/rand"

	"github.com/vovakirdan/handflap/internal/config"
	"github.com/vovakirdan/handflap/internal/core"
)

// Pair is one obstacle: an upper and a lower pipe around a passable gap.
// Both rectangles always share the same horizontal span.
type Pair struct {
	Top    core.Rect
	Bottom core.Rect
}

// CenterX returns the pair's horizontal centre.
func (p Pair) CenterX() float64 {
	return p.Top.CenterX()
}

// Gap returns the vertical opening between the two pipes.
func (p Pair) Gap() float64 {
	return p.Bottom.Y - p.Top.Bottom()
}

// shift moves both pipes left by dx.
func (p Pair) shift(dx float64) Pair {
	return Pair{
		Top:    p.Top.Translate(-dx, 0),
		Bottom: p.Bottom.Translate(-dx, 0),
	}
}

// Generator produces obstacle pairs with a randomized gap midpoint.
type Generator struct {
	rng     *rand.Rand
	cfg     config.Obstacles
	screenW float64
	screenH float64
}

// NewGenerator creates a generator for the given playfield.
// The same seed always yields the same sequence of pairs.
func NewGenerator(seed int64, cfg config.Obstacles, screen config.Screen) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		cfg:     cfg,
		screenW: screen.Width,
		screenH: screen.Height,
	}
}

// Create returns a new pair centred just off the right edge of the playfield.
func (g *Generator) Create() Pair {
	span := g.cfg.MidpointMax - g.cfg.MidpointMin + 1
	mid := float64(g.cfg.MidpointMin + g.rng.Intn(span))
	return CreatePair(mid, g.screenW, g.screenH, g.cfg.Gap, g.cfg.SpawnMargin, g.cfg.PipeWidth)
}

// CreatePair builds the pair for a given gap midpoint. The upper pipe's
// bottom edge sits at mid-gap/2 and the lower pipe's top edge at mid+gap/2;
// each pipe is one playfield tall, so it runs off-screen.
func CreatePair(mid, screenW, screenH, gap, spawnMargin, pipeWidth float64) Pair {
	cx := screenW + spawnMargin
	x := cx - pipeWidth/2
	half := gap / 2
	return Pair{
		Top:    core.NewRect(x, mid-half-screenH, pipeWidth, screenH),
		Bottom: core.NewRect(x, mid+half, pipeWidth, screenH),
	}
}
