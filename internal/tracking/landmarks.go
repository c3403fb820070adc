package tracking

import "github.com/vovakirdan/handflap/internal/core"

// Hand landmark indices following MediaPipe convention.
const (
	Wrist        = 0
	ThumbTip     = 4
	IndexMCP     = 5
	IndexTip     = 8
	MiddleMCP    = 9
	MiddleTip    = 12
	RingTip      = 16
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark in normalized image coordinates.
// X and Y are fractions of the frame size; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Select turns a detection result into a sample. The first hand wins;
// the detector is configured for one hand anyway. The landmark's Y is
// clamped into [0,1] since MediaPipe reports points slightly outside the
// frame near its edges.
func Select(hands []HandLandmarks, landmark int) core.Sample {
	if len(hands) == 0 || landmark < 0 || landmark >= NumLandmarks {
		return core.NoDetection
	}
	return core.Detected(core.ClampF(hands[0].Points[landmark].Y, 0, 1))
}
