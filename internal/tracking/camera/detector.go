package camera

import (
	"gocv.io/x/gocv"

	"github.com/vovakirdan/handflap/internal/config"
	"github.com/vovakirdan/handflap/internal/tracking"
)

// Detector finds hand landmarks in a frame.
type Detector interface {
	// Detect returns the hands found in frame, or an empty slice.
	Detect(frame *gocv.Mat) ([]tracking.HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// DetectorConfig holds the hand tracking parameters passed to MediaPipe.
type DetectorConfig struct {
	MaxHands               int
	MinDetectionConfidence float64
	MinTrackingConfidence  float64

	// Script and Python override the service location. Empty values
	// search the default locations.
	Script string
	Python string
}

// DetectorConfigFrom extracts the detector settings from the tracking config.
func DetectorConfigFrom(cfg config.Tracking) DetectorConfig {
	return DetectorConfig{
		MaxHands:               cfg.MaxHands,
		MinDetectionConfidence: cfg.MinDetectionConfidence,
		MinTrackingConfidence:  cfg.MinTrackingConfidence,
		Script:                 cfg.DetectorScript,
		Python:                 cfg.Python,
	}
}
