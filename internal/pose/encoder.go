package pose

import (
	"github.com/ayusman/mudra/internal/hand"
)

// factors are the running sign multipliers that undo mirroring and
// inversion. x applies to horizontal comparisons, y to vertical ones.
type factors struct {
	x int
	y int
}

// Encode classifies a hand. Each step reads the factors left by the one
// before it, so the order below is significant. Ties in every comparison
// resolve to Zero.
func Encode(h hand.Hand) Signature {
	var s Signature
	f := factors{y: 1}

	s.Handedness, f = handedness(h, f)
	s.Orientation, f = orientation(h, f)
	s.Palm, f = palm(h, f)
	s.Thumb = thumb(h, f)
	s.Fingers = fingers(h, f)

	return s
}

func handedness(h hand.Hand, f factors) (Bit, factors) {
	if h.Handedness == hand.Right {
		f.x = -1
		return One, f
	}
	f.x = 1
	return Zero, f
}

// orientation compares the index fingertip with the wrist. A hand pointing
// down is visually inverted, which also mirrors it horizontally.
func orientation(h hand.Hand, f factors) (Bit, factors) {
	if h.Tip(hand.Index).Y > h.Points[0].Y {
		f.y = -1
		f.x = -f.x
		return One, f
	}
	f.y = 1
	return Zero, f
}

func palm(h hand.Hand, f factors) (Bit, factors) {
	thumbTip := h.Tip(hand.Thumb).X * f.x
	pinkyTip := h.Tip(hand.Pinky).X * f.x
	if thumbTip < pinkyTip {
		f.x = -f.x
		return One, f
	}
	return Zero, f
}

// thumb folds horizontally, so it is judged on x against its second landmark.
func thumb(h hand.Hand, f factors) Bit {
	group := h.Finger(hand.Thumb)
	return bit(group[3].X*f.x < group[1].X*f.x)
}

func fingers(h hand.Hand, f factors) [4]Bit {
	var bits [4]Bit
	for i, finger := range []hand.Finger{hand.Index, hand.Middle, hand.Ring, hand.Pinky} {
		group := h.Finger(finger)
		bits[i] = bit(group[3].Y*f.y > group[1].Y*f.y)
	}
	return bits
}
