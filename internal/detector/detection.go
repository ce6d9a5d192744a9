// Package detector is the boundary to the external hand landmark model.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels reported by the model.
const (
	LabelLeft  = "Left"
	LabelRight = "Right"
)

// Point is a landmark in normalized image coordinates. X and Y are in [0,1]
// relative to the frame width and height; Z is relative depth and unused by
// the pose encoder.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Detection is one hand found in a frame: its 21 landmarks and the
// classifier's handedness label ("Left" or "Right").
type Detection struct {
	Points     [NumLandmarks]Point `json:"points"`
	Handedness string              `json:"handedness"`
	Score      float64             `json:"score"`
}
