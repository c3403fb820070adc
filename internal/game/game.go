// Package game implements the hand-steered Flappy game: the avatar follows a
// smoothed fingertip position while gravity pulls it down and obstacle pairs
// scroll in from the right.
package game

import (
	"github.com/vovakirdan/handflap/internal/config"
	"github.com/vovakirdan/handflap/internal/core"
)

// Phase is the state machine's current state.
type Phase int

const (
	Running Phase = iota
	GameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Avatar is the player sprite. X never changes after construction.
type Avatar struct {
	X, Y     float64
	Velocity float64
	W, H     float64
}

// Rect returns the avatar's hitbox, centred on its position.
func (a Avatar) Rect() core.Rect {
	return core.RectCentered(a.X, a.Y, a.W, a.H)
}

// Game owns all session state. The driver creates one per session and
// mutates it only through Step and Restart.
type Game struct {
	cfg    config.Config
	avatar Avatar
	pairs  []Pair // oldest first
	score  int
	phase  Phase
	filter Filter
	gen    *Generator
	tick   uint64
}

// New creates a running game with one obstacle pair already spawned.
func New(cfg config.Config, seed int64) *Game {
	g := &Game{
		cfg:    cfg,
		pairs:  make([]Pair, 0, 4),
		gen:    NewGenerator(seed, cfg.Obstacles, cfg.Screen),
		filter: NewFilter(cfg.Smoothing.Alpha, cfg.Screen.Height/2),
	}
	g.reset()
	return g
}

// reset puts the avatar back at mid-height and spawns a fresh first pair.
// The generator keeps its sequence so each round gets new obstacles.
func (g *Game) reset() {
	g.avatar = Avatar{
		X: g.cfg.Avatar.X,
		Y: g.cfg.Screen.Height / 2,
		W: g.cfg.Avatar.Width,
		H: g.cfg.Avatar.Height,
	}
	g.filter.Reset(g.avatar.Y)
	g.pairs = append(g.pairs[:0], g.gen.Create())
	g.score = 0
	g.phase = Running
	g.tick = 0
}

// Restart begins a new round. It only has an effect after game over and
// reports whether the game was restarted.
func (g *Game) Restart() bool {
	if g.phase != GameOver {
		return false
	}
	g.reset()
	return true
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.phase == GameOver {
		// Frozen frame: nothing moves, velocity stays at zero.
		g.avatar.Velocity = 0
		return core.StepResult{State: g.State()}
	}

	g.tick++

	// Tracked input sets the position; without it the avatar keeps
	// its last position and only gravity acts.
	if in.Tracking.OK {
		g.avatar.Y = g.filter.Update(in.Tracking.Y * g.cfg.Screen.Height)
	}

	// Scroll obstacles
	for i := range g.pairs {
		g.pairs[i] = g.pairs[i].shift(g.cfg.Physics.PipeSpeed)
	}

	// Spawn behind the newest pair
	if n := len(g.pairs); n == 0 || g.pairs[n-1].CenterX() < g.cfg.Obstacles.SpawnThreshold {
		g.pairs = append(g.pairs, g.gen.Create())
	}

	// Despawn the oldest pair and score it in the same move
	scored := 0
	if len(g.pairs) > 0 && g.pairs[0].CenterX() < g.cfg.Obstacles.DespawnThreshold {
		g.pairs = g.pairs[1:]
		g.score++
		scored = 1
	}

	// Gravity, explicit Euler, uncapped
	g.avatar.Velocity += g.cfg.Physics.Gravity
	g.avatar.Y += g.avatar.Velocity

	if firstHit(g.avatar.Rect(), g.pairs) >= 0 || g.outOfBounds() {
		g.phase = GameOver
	}

	return core.StepResult{
		State:  g.State(),
		Scored: scored,
		Ended:  g.phase == GameOver,
	}
}

// outOfBounds reports whether the avatar left the top of the playfield or
// reached the floor line.
func (g *Game) outOfBounds() bool {
	floor := g.cfg.Screen.Height - g.cfg.Avatar.BottomMargin
	return g.avatar.Y < 0 || g.avatar.Y >= floor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == GameOver,
	}
}

// Phase returns the state machine's current state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.Config {
	return g.cfg
}
