package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands  []Detection
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Detection) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	return m.closed
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// FistDetection returns a right hand held upright with the back of the hand
// to the camera and every finger, thumb included, folded.
func FistDetection() Detection {
	d := Detection{Handedness: LabelRight, Score: 0.95}

	d.Points[Wrist] = Point{X: 0.50, Y: 0.80}

	// Thumb folded across the palm, tip to the left of its knuckle.
	d.Points[ThumbCMC] = Point{X: 0.44, Y: 0.75}
	d.Points[ThumbMCP] = Point{X: 0.42, Y: 0.70}
	d.Points[ThumbIP] = Point{X: 0.46, Y: 0.66}
	d.Points[ThumbTip] = Point{X: 0.50, Y: 0.65}

	// Fingers curled: tips below the PIP joints.
	d.Points[IndexMCP] = Point{X: 0.45, Y: 0.62}
	d.Points[IndexPIP] = Point{X: 0.45, Y: 0.55}
	d.Points[IndexDIP] = Point{X: 0.46, Y: 0.60}
	d.Points[IndexTip] = Point{X: 0.46, Y: 0.64}

	d.Points[MiddleMCP] = Point{X: 0.50, Y: 0.61}
	d.Points[MiddlePIP] = Point{X: 0.50, Y: 0.54}
	d.Points[MiddleDIP] = Point{X: 0.50, Y: 0.59}
	d.Points[MiddleTip] = Point{X: 0.50, Y: 0.63}

	d.Points[RingMCP] = Point{X: 0.55, Y: 0.62}
	d.Points[RingPIP] = Point{X: 0.55, Y: 0.56}
	d.Points[RingDIP] = Point{X: 0.55, Y: 0.60}
	d.Points[RingTip] = Point{X: 0.55, Y: 0.64}

	d.Points[PinkyMCP] = Point{X: 0.59, Y: 0.64}
	d.Points[PinkyPIP] = Point{X: 0.59, Y: 0.59}
	d.Points[PinkyDIP] = Point{X: 0.59, Y: 0.62}
	d.Points[PinkyTip] = Point{X: 0.60, Y: 0.65}

	return d
}

// OpenPalmDetection returns a right hand held upright, palm toward the camera,
// with every finger extended.
func OpenPalmDetection() Detection {
	d := Detection{Handedness: LabelRight, Score: 0.95}

	d.Points[Wrist] = Point{X: 0.50, Y: 0.80}

	// Thumb extended to the right, away from the palm.
	d.Points[ThumbCMC] = Point{X: 0.55, Y: 0.75}
	d.Points[ThumbMCP] = Point{X: 0.60, Y: 0.70}
	d.Points[ThumbIP] = Point{X: 0.65, Y: 0.65}
	d.Points[ThumbTip] = Point{X: 0.70, Y: 0.60}

	d.Points[IndexMCP] = Point{X: 0.55, Y: 0.62}
	d.Points[IndexPIP] = Point{X: 0.56, Y: 0.52}
	d.Points[IndexDIP] = Point{X: 0.57, Y: 0.45}
	d.Points[IndexTip] = Point{X: 0.58, Y: 0.38}

	d.Points[MiddleMCP] = Point{X: 0.50, Y: 0.60}
	d.Points[MiddlePIP] = Point{X: 0.50, Y: 0.48}
	d.Points[MiddleDIP] = Point{X: 0.50, Y: 0.40}
	d.Points[MiddleTip] = Point{X: 0.50, Y: 0.32}

	d.Points[RingMCP] = Point{X: 0.45, Y: 0.62}
	d.Points[RingPIP] = Point{X: 0.44, Y: 0.52}
	d.Points[RingDIP] = Point{X: 0.43, Y: 0.45}
	d.Points[RingTip] = Point{X: 0.42, Y: 0.39}

	d.Points[PinkyMCP] = Point{X: 0.41, Y: 0.65}
	d.Points[PinkyPIP] = Point{X: 0.39, Y: 0.58}
	d.Points[PinkyDIP] = Point{X: 0.38, Y: 0.52}
	d.Points[PinkyTip] = Point{X: 0.37, Y: 0.47}

	return d
}

// Mirrored returns d reflected about the vertical center line with the
// handedness label swapped, as seen when the other hand makes the same pose.
func Mirrored(d Detection) Detection {
	m := d
	for i := range m.Points {
		m.Points[i].X = 1 - m.Points[i].X
	}
	switch d.Handedness {
	case LabelRight:
		m.Handedness = LabelLeft
	case LabelLeft:
		m.Handedness = LabelRight
	}
	return m
}
