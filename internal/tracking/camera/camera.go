// Package camera provides the webcam landmark source: frames are captured
// with GoCV (OpenCV) and passed to a MediaPipe hand tracking subprocess.
package camera

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Capture settings
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPS    = 30
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Camera is a frame grabber.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
}

// device captures from a local video device.
type device struct {
	id      int
	capture *gocv.VideoCapture
	mu      sync.Mutex
}

// NewDevice creates a camera for the given device index. Open must be
// called before reading.
func NewDevice(id int) Camera {
	return &device{id: id}
}

// Open opens the device at 640x480.
func (d *device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.capture != nil {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(d.id)
	if err != nil {
		return fmt.Errorf("open device %d: %w", d.id, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("open device %d: not available", d.id)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
	capture.Set(gocv.VideoCaptureFPS, DefaultFPS)

	d.capture = capture
	return nil
}

// Close releases the device.
func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.capture == nil {
		return nil
	}

	err := d.capture.Close()
	d.capture = nil
	return err
}

// ReadFrame blocks for the next frame. The caller closes the returned Mat.
func (d *device) ReadFrame() (*gocv.Mat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := d.capture.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// IsOpen reports whether the device is open.
func (d *device) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.capture != nil
}
