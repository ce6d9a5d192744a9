// Package hand turns raw detector output into pixel-space hands and groups
// their landmarks by finger.
package hand

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// ErrNoHand is returned by Construct when the detector found no hands in the frame.
var ErrNoHand = errors.New("no hand detected")

// ErrUnknownHandedness is returned when a detection carries a label other than Left or Right.
var ErrUnknownHandedness = errors.New("unknown handedness")

// Handedness is which hand the detector believes it saw.
type Handedness int

const (
	Left Handedness = iota
	Right
)

func (h Handedness) String() string {
	if h == Right {
		return detector.LabelRight
	}
	return detector.LabelLeft
}

// ParseHandedness converts a detector label into a Handedness.
func ParseHandedness(label string) (Handedness, error) {
	switch label {
	case detector.LabelLeft:
		return Left, nil
	case detector.LabelRight:
		return Right, nil
	}
	return Left, fmt.Errorf("%w: %q", ErrUnknownHandedness, label)
}

// Landmark is a hand keypoint in pixel coordinates. Y grows downward.
type Landmark struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Hand is the 21 landmarks of one detected hand plus its handedness.
type Hand struct {
	Points     [detector.NumLandmarks]Landmark
	Handedness Handedness
}

// Construct scales every detection to a width x height frame and pairs it
// with its handedness. Hands are returned in detector order.
func Construct(dets []detector.Detection, width, height int) ([]Hand, error) {
	if len(dets) == 0 {
		return nil, ErrNoHand
	}

	hands := make([]Hand, 0, len(dets))
	for i, d := range dets {
		handedness, err := ParseHandedness(d.Handedness)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i, err)
		}

		h := Hand{Handedness: handedness}
		for j, p := range d.Points {
			h.Points[j] = Landmark{
				X: int(math.Round(p.X * float64(width))),
				Y: int(math.Round(p.Y * float64(height))),
			}
		}
		hands = append(hands, h)
	}
	return hands, nil
}
