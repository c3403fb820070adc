package camera

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/registry"
	"github.com/vovakirdan/handflap/internal/tracking"
)

// FrameReader reads a frame, detects hands in it and reports the tracked
// landmark. It implements tracking.Reader.
type FrameReader struct {
	cam      Camera
	det      Detector
	landmark int
	logger   *log.Logger
}

// NewFrameReader combines an open camera with a detector.
// The reader owns both and closes them in Close.
func NewFrameReader(cam Camera, det Detector, landmark int, logger *log.Logger) *FrameReader {
	return &FrameReader{cam: cam, det: det, landmark: landmark, logger: logger}
}

// Read blocks for one frame. A camera failure ends the stream; a detector
// failure only costs this frame.
func (r *FrameReader) Read() (core.Sample, error) {
	frame, err := r.cam.ReadFrame()
	if err != nil {
		return core.NoDetection, fmt.Errorf("%w: %v", tracking.ErrCaptureFailed, err)
	}
	defer frame.Close()

	hands, err := r.det.Detect(frame)
	if err != nil {
		r.logger.Warn("hand detection failed", "error", err)
		return core.NoDetection, nil
	}

	return tracking.Select(hands, r.landmark), nil
}

// Close releases the detector, then the camera.
func (r *FrameReader) Close() error {
	return errors.Join(r.det.Close(), r.cam.Close())
}

// Open opens the capture device and the detector and starts polling.
// Everything opened so far is released when a later step fails.
func Open(opts registry.Options) (registry.Source, error) {
	cfg := opts.Tracking

	det, err := NewMediaPipeDetector(DetectorConfigFrom(cfg))
	if err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}

	cam := NewDevice(cfg.Device)
	if err := cam.Open(); err != nil {
		det.Close()
		return nil, err
	}

	opts.Logger.Info("camera opened",
		"device", cfg.Device,
		"landmark", cfg.Landmark,
		"max_hands", cfg.MaxHands,
		"min_detection_confidence", cfg.MinDetectionConfidence,
		"min_tracking_confidence", cfg.MinTrackingConfidence,
	)

	return tracking.NewPoller(NewFrameReader(cam, det, cfg.Landmark, opts.Logger)), nil
}

func init() {
	registry.Register("camera", "Webcam with MediaPipe hand tracking (--device)", Open)
}
