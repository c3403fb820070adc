// Package config provides YAML-based game configuration loading for handflap.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables for a handflap session.
type Config struct {
	Screen    Screen    `yaml:"screen"`
	Physics   Physics   `yaml:"physics"`
	Avatar    Avatar    `yaml:"avatar"`
	Obstacles Obstacles `yaml:"obstacles"`
	Smoothing Smoothing `yaml:"smoothing"`
	Tracking  Tracking  `yaml:"tracking"`
	Loop      Loop      `yaml:"loop"`
}

// Screen is the playfield size in world units.
type Screen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines per-tick motion constants.
type Physics struct {
	Gravity   float64 `yaml:"gravity"`    // Added to vertical velocity every tick
	PipeSpeed float64 `yaml:"pipe_speed"` // Leftward shift of every pair per tick
}

// Avatar defines the player sprite's fixed column and hitbox.
type Avatar struct {
	X            float64 `yaml:"x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomMargin float64 `yaml:"bottom_margin"` // Game over once Y reaches Height-BottomMargin
}

// Obstacles defines obstacle pair geometry and the spawn/despawn lines.
type Obstacles struct {
	Gap              float64 `yaml:"gap"`
	PipeWidth        float64 `yaml:"pipe_width"`
	SpawnMargin      float64 `yaml:"spawn_margin"`      // New pairs are centred at screen width + margin
	SpawnThreshold   float64 `yaml:"spawn_threshold"`   // Spawn when newest centre is left of this
	DespawnThreshold float64 `yaml:"despawn_threshold"` // Despawn when oldest centre is left of this
	MidpointMin      int     `yaml:"midpoint_min"`
	MidpointMax      int     `yaml:"midpoint_max"`
}

// Smoothing configures the exponential filter on tracked input.
type Smoothing struct {
	Alpha float64 `yaml:"alpha"`
}

// Tracking configures the landmark sources.
type Tracking struct {
	Device                 int     `yaml:"device"`
	Landmark               int     `yaml:"landmark"`
	MaxHands               int     `yaml:"max_hands"`
	MinDetectionConfidence float64 `yaml:"min_detection_confidence"`
	MinTrackingConfidence  float64 `yaml:"min_tracking_confidence"`
	DetectorScript         string  `yaml:"detector_script"` // Empty = search default locations
	Python                 string  `yaml:"python"`          // Empty = venv or python3
	PointerStep            float64 `yaml:"pointer_step"`    // Keyboard pointer step per key press
}

// Loop configures the frame pacing.
type Loop struct {
	TickRate int `yaml:"tick_rate"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	check(c.Avatar.Width > 0 && c.Avatar.Height > 0, "avatar size must be positive")
	check(c.Obstacles.Gap > 0, "obstacles.gap must be positive, got %v", c.Obstacles.Gap)
	check(c.Obstacles.PipeWidth > 0, "obstacles.pipe_width must be positive, got %v", c.Obstacles.PipeWidth)
	check(c.Physics.PipeSpeed > 0, "physics.pipe_speed must be positive, got %v", c.Physics.PipeSpeed)
	check(c.Obstacles.MidpointMin <= c.Obstacles.MidpointMax,
		"obstacles.midpoint_min (%d) exceeds midpoint_max (%d)", c.Obstacles.MidpointMin, c.Obstacles.MidpointMax)
	half := c.Obstacles.Gap / 2
	check(float64(c.Obstacles.MidpointMin)-half >= 0,
		"obstacles.midpoint_min (%d) minus half the gap leaves the playfield", c.Obstacles.MidpointMin)
	check(float64(c.Obstacles.MidpointMax)+half <= c.Screen.Height,
		"obstacles.midpoint_max (%d) plus half the gap leaves the playfield", c.Obstacles.MidpointMax)
	check(c.Obstacles.DespawnThreshold < c.Obstacles.SpawnThreshold,
		"obstacles.despawn_threshold must be left of spawn_threshold")
	check(c.Obstacles.SpawnThreshold < c.Screen.Width+c.Obstacles.SpawnMargin,
		"obstacles.spawn_threshold (%v) must be left of the spawn point (%v)",
		c.Obstacles.SpawnThreshold, c.Screen.Width+c.Obstacles.SpawnMargin)
	check(c.Smoothing.Alpha > 0 && c.Smoothing.Alpha <= 1, "smoothing.alpha must be in (0, 1], got %v", c.Smoothing.Alpha)
	check(c.Loop.TickRate > 0, "loop.tick_rate must be positive, got %d", c.Loop.TickRate)
	check(c.Tracking.Landmark >= 0 && c.Tracking.Landmark < 21, "tracking.landmark must be 0..20, got %d", c.Tracking.Landmark)

	return errors.Join(errs...)
}
