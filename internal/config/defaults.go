package config

import (
	_ "embed"
)

//go:embed defaults/handflap.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, matching the embedded YAML.
func DefaultConfig() Config {
	return Config{
		Screen: Screen{
			Width:  640,
			Height: 480,
		},
		Physics: Physics{
			Gravity:   0.4,
			PipeSpeed: 4,
		},
		Avatar: Avatar{
			X:            120,
			Width:        60,
			Height:       45,
			BottomMargin: 20,
		},
		Obstacles: Obstacles{
			Gap:              160,
			PipeWidth:        57, // 9% of the frame width
			SpawnMargin:      40,
			SpawnThreshold:   300,
			DespawnThreshold: -100,
			MidpointMin:      170,
			MidpointMax:      330,
		},
		Smoothing: Smoothing{
			Alpha: 0.2,
		},
		Tracking: Tracking{
			Device:                 0,
			Landmark:               8, // index fingertip
			MaxHands:               1,
			MinDetectionConfidence: 0.75,
			MinTrackingConfidence:  0.7,
			PointerStep:            0.04,
		},
		Loop: Loop{
			TickRate: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
